package curated

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialstack/internal/catalog"
	"socialstack/internal/jsonl"
)

func TestWriteCatalog_RoundTripsThroughLoader(t *testing.T) {
	dir := t.TempDir()
	items := catalog.Seed()[catalog.Proxy]

	require.NoError(t, WriteCatalog(context.Background(), dir, "proxy", items))

	got, err := jsonl.NewLoader(dir).LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got["proxy"], len(items))
	for i := range items {
		assert.Equal(t, items[i].ID, got["proxy"][i].ID)
		assert.True(t, items[i].Price.Equal(got["proxy"][i].Price), items[i].ID)
		assert.Equal(t, items[i].Kind, got["proxy"][i].Kind)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file left behind")
	assert.Equal(t, "proxy.jsonl", entries[0].Name())
}

func TestWriteCatalog_ReplacesPreviousFile(t *testing.T) {
	dir := t.TempDir()
	seed := catalog.Seed()[catalog.RDP]

	require.NoError(t, WriteCatalog(context.Background(), dir, "rdp", seed))
	require.NoError(t, WriteCatalog(context.Background(), dir, "rdp", seed[:1]))

	items, _, err := jsonl.NewLoader(dir).LoadFile(context.Background(), filepath.Join(dir, "rdp.jsonl"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, seed[0].ID, items[0].ID)
}

func TestWriteCatalog_EmptyDirIsNoop(t *testing.T) {
	assert.NoError(t, WriteCatalog(context.Background(), "", "smm", catalog.Seed()[catalog.SMM]))
}

func TestWriteCatalog_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WriteCatalog(ctx, dir, "otp", catalog.Seed()[catalog.OTP])
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(filepath.Join(dir, "otp.jsonl"))
	assert.True(t, os.IsNotExist(statErr))
}
