package rejections

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialstack/internal/schemagate"
)

func TestStore_WriteAllAppendsJSONL(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "rejections"))
	s.now = func() time.Time { return time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC) }

	ctx := context.Background()
	require.NoError(t, s.WriteAll(ctx, "file:smm.jsonl", []schemagate.Rejection{
		{Catalog: "smm", Scope: "item:1", Reason: "item.name missing"},
		{Catalog: "smm", Scope: "item:2", Reason: "duplicate item.id"},
	}))
	require.NoError(t, s.WriteRejection(ctx, "kafka:catalog.ingest", schemagate.Rejection{Catalog: "otp", Scope: "item:x", Reason: "item.per must be gte 1"}))

	f, err := os.Open(filepath.Join(s.Dir(), "rejections_2026-05-04.jsonl"))
	require.NoError(t, err)
	defer f.Close()

	var records []map[string]string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]string
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, sc.Err())

	require.Len(t, records, 3)
	assert.Equal(t, "item:1", records[0]["scope"])
	assert.Equal(t, "file:smm.jsonl", records[1]["source"])
	assert.Equal(t, "otp", records[2]["catalog"])
	assert.Equal(t, "2026-05-04T10:00:00Z", records[2]["timestamp"])
}

func TestStore_WriteAllEmptyIsNoop(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never")
	s := NewStore(dir)

	require.NoError(t, s.WriteAll(context.Background(), "file:x", nil))

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
