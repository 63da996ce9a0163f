package kstream

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"socialstack/internal/model"
)

// Topics used by the storefront.
const (
	TopicOrdersPlaced  = "orders.placed"
	TopicCatalogIngest = "catalog.ingest"
)

// Publisher hands storefront events to downstream consumers (billing,
// the catalog ingest pipeline).
type Publisher interface {
	PublishOrder(ctx context.Context, evt model.OrderPlaced) error
	PublishCatalogUpdate(ctx context.Context, update model.CatalogUpdate) error
	Close() error
}

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaWriter constructs a Kafka producer using segmentio/kafka-go library.
// The topic is set per message so one writer serves every topic.
func kafkaWriter(broker string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Balancer:     &kafka.Hash{}, // same key, same partition
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		BatchBytes:   16 << 20,
	}
}

// KafkaPublisher publishes JSON events to Kafka.
type KafkaPublisher struct {
	w messageWriter
}

// NewKafkaPublisher connects a publisher to broker.
func NewKafkaPublisher(broker string) *KafkaPublisher {
	return &KafkaPublisher{w: kafkaWriter(broker)}
}

// PublishOrder sends a placed order to orders.placed keyed by order ID.
func (p *KafkaPublisher) PublishOrder(ctx context.Context, evt model.OrderPlaced) error {
	return p.publish(ctx, TopicOrdersPlaced, evt.Order.ID, evt)
}

// PublishCatalogUpdate sends a catalog replacement to catalog.ingest keyed
// by catalog name, so updates of one catalog stay ordered.
func (p *KafkaPublisher) PublishCatalogUpdate(ctx context.Context, update model.CatalogUpdate) error {
	return p.publish(ctx, TopicCatalogIngest, update.Catalog, update)
}

func (p *KafkaPublisher) publish(ctx context.Context, topic, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *KafkaPublisher) Close() error { return p.w.Close() }

// NopPublisher drops every event. It is used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishOrder(context.Context, model.OrderPlaced) error           { return nil }
func (NopPublisher) PublishCatalogUpdate(context.Context, model.CatalogUpdate) error { return nil }
func (NopPublisher) Close() error                                                  { return nil }
