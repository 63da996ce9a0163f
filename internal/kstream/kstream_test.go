package kstream

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialstack/internal/model"
)

type fakeReader struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		if r.err != nil {
			return kafka.Message{}, r.err
		}
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

type fakeWriter struct {
	msgs []kafka.Message
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func encode(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestConsumeCatalogUpdates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{msgs: []kafka.Message{
		{Value: encode(t, model.CatalogUpdate{Catalog: "proxy", Items: []model.CatalogItem{{ID: "p1"}}})},
		{Value: []byte("{broken")},
		{Key: []byte("rdp"), Value: encode(t, model.CatalogUpdate{Items: []model.CatalogItem{{ID: "r1"}}})},
		{Value: encode(t, model.CatalogUpdate{})},
	}}

	var got []string
	handle := func(ctx context.Context, u model.CatalogUpdate) error {
		got = append(got, u.Catalog+":"+u.Items[0].ID)
		if len(got) == 2 {
			cancel()
		}
		return errors.New("ignored")
	}

	require.NoError(t, ConsumeCatalogUpdates(ctx, reader, handle))
	assert.Equal(t, []string{"proxy:p1", "rdp:r1"}, got)
	assert.True(t, reader.closed)
}

func TestConsumeCatalogUpdates_ReaderError(t *testing.T) {
	reader := &fakeReader{err: errors.New("broker gone")}

	err := ConsumeCatalogUpdates(context.Background(), reader, func(context.Context, model.CatalogUpdate) error { return nil })

	require.EqualError(t, err, "broker gone")
}

func TestKafkaPublisher(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{w: w}
	ctx := context.Background()

	order := model.Order{ID: "o-1", ItemID: "1001", TotalUSD: decimal.RequireFromString("5.80")}
	require.NoError(t, p.PublishOrder(ctx, model.OrderPlaced{Order: order, SessionID: "s"}))
	require.NoError(t, p.PublishCatalogUpdate(ctx, model.CatalogUpdate{Catalog: "smm"}))

	require.Len(t, w.msgs, 2)
	assert.Equal(t, TopicOrdersPlaced, w.msgs[0].Topic)
	assert.Equal(t, "o-1", string(w.msgs[0].Key))
	assert.Equal(t, TopicCatalogIngest, w.msgs[1].Topic)
	assert.Equal(t, "smm", string(w.msgs[1].Key))

	var evt model.OrderPlaced
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &evt))
	assert.Equal(t, "s", evt.SessionID)
	assert.True(t, evt.Order.TotalUSD.Equal(order.TotalUSD))
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishOrder(context.Background(), model.OrderPlaced{}))
	assert.NoError(t, p.Close())
}
