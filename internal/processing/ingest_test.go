package processing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialstack/internal/catalog"
	"socialstack/internal/jsonl"
	"socialstack/internal/model"
	"socialstack/internal/rejections"
)

type projectorMock struct {
	mock.Mock
}

func (m *projectorMock) Project(ctx context.Context, catalogName string, prev, next *catalog.Index) error {
	args := m.Called(ctx, catalogName, prev, next)
	return args.Error(0)
}

func rdp(id, price string) model.CatalogItem {
	return model.CatalogItem{
		ID: id, Name: "Plan " + id, Group: "Linux", Category: "Shared", Type: "Starter",
		Kind: model.PricingFlat, Price: decimal.RequireFromString(price), Per: 1,
	}
}

func newIngestor(t *testing.T, p Projector) (*Ingestor, string) {
	t.Helper()
	dir := t.TempDir()
	return &Ingestor{
		Registry:   catalog.NewRegistry(catalog.Seed()),
		Rejections: rejections.NewStore(filepath.Join(dir, "rejections")),
		CatalogDir: filepath.Join(dir, "catalogs"),
		Projector:  p,
	}, dir
}

func TestIngest_ReplacesCatalog(t *testing.T) {
	proj := new(projectorMock)
	in, dir := newIngestor(t, proj)
	prev, _ := in.Registry.Get(catalog.RDP)

	bad := rdp("", "1")
	proj.On("Project", mock.Anything, catalog.RDP, prev, mock.AnythingOfType("*catalog.Index")).Return(nil).Once()

	stats, err := in.Ingest(context.Background(), "http", model.CatalogUpdate{
		Catalog: catalog.RDP,
		Items:   []model.CatalogItem{rdp("a", "5"), bad, rdp("b", "7"), rdp("a", "9")},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Accepted)
	assert.Equal(t, 2, stats.Rejected)
	proj.AssertExpectations(t)

	idx, ok := in.Registry.Get(catalog.RDP)
	require.True(t, ok)
	assert.Equal(t, 2, idx.Len())
	got, ok := idx.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "5", got.Price.String())

	reloaded, err := jsonl.NewLoader(in.CatalogDir).LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, reloaded[catalog.RDP], 2)

	entries, err := os.ReadDir(filepath.Join(dir, "rejections"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestIngest_AllRejectedKeepsCurrentCatalog(t *testing.T) {
	in, _ := newIngestor(t, nil)
	before, _ := in.Registry.Get(catalog.RDP)

	stats, err := in.Ingest(context.Background(), "http", model.CatalogUpdate{
		Catalog: catalog.RDP,
		Items:   []model.CatalogItem{rdp("", "1")},
	})
	require.NoError(t, err)
	assert.Zero(t, stats.Accepted)

	after, _ := in.Registry.Get(catalog.RDP)
	assert.Same(t, before, after)
}

func TestIngest_ProjectionFailureIsNotFatal(t *testing.T) {
	proj := new(projectorMock)
	proj.On("Project", mock.Anything, "fresh", (*catalog.Index)(nil), mock.Anything).Return(errors.New("redis down"))
	in, _ := newIngestor(t, proj)

	stats, err := in.Ingest(context.Background(), "kafka", model.CatalogUpdate{
		Catalog: "fresh",
		Items:   []model.CatalogItem{rdp("x", "3")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Accepted)

	_, ok := in.Registry.Get("fresh")
	assert.True(t, ok)
}
