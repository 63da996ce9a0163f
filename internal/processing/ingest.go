package processing

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"socialstack/internal/catalog"
	"socialstack/internal/curated"
	"socialstack/internal/model"
	"socialstack/internal/rejections"
	"socialstack/internal/schemagate"
)

// Projector refreshes read models after a catalog swap.
type Projector interface {
	Project(ctx context.Context, catalogName string, prev, next *catalog.Index) error
}

// IngestStats is returned to the caller so we can see what was accepted.
type IngestStats struct {
	Catalog  string `json:"catalog"`
	Accepted int    `json:"accepted"`
	Rejected int    `json:"rejected"`
	// DurationMillis is the end-to-end processing time for this update.
	DurationMillis int64 `json:"duration_ms"`
}

// Ingestor runs catalog updates through the validation gate and installs
// the accepted items in the registry.
type Ingestor struct {
	Registry   *catalog.Registry
	Rejections *rejections.Store
	// CatalogDir, when set, receives the accepted catalog as JSONL.
	CatalogDir string
	// Projector is optional.
	Projector Projector
}

// Ingest validates update, records rejections, swaps the catalog in and
// projects it. A catalog whose every item is rejected is not installed.
func (in *Ingestor) Ingest(ctx context.Context, source string, update model.CatalogUpdate) (*IngestStats, error) {
	start := time.Now()

	accepted, rejected := schemagate.ProcessCatalog(ctx, update.Catalog, update.Items)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if in.Rejections != nil {
		if err := in.Rejections.WriteAll(ctx, source, rejected); err != nil {
			log.Error().Err(err).Str("catalog", update.Catalog).Msg("Ingest: failed to write rejections")
		}
	}

	stats := &IngestStats{Catalog: update.Catalog, Accepted: len(accepted), Rejected: len(rejected)}
	if len(accepted) == 0 && len(update.Items) > 0 {
		log.Warn().Str("catalog", update.Catalog).Int("rejected", len(rejected)).Msg("Ingest: nothing accepted, keeping current catalog")
		stats.DurationMillis = time.Since(start).Milliseconds()
		return stats, nil
	}

	if err := curated.WriteCatalog(ctx, in.CatalogDir, update.Catalog, accepted); err != nil {
		return nil, err
	}

	prev, _ := in.Registry.Get(update.Catalog)
	next := in.Registry.Replace(update.Catalog, accepted)

	if in.Projector != nil {
		if err := in.Projector.Project(ctx, update.Catalog, prev, next); err != nil {
			log.Error().Err(err).Str("catalog", update.Catalog).Msg("Ingest: projection failed")
		}
	}

	stats.DurationMillis = time.Since(start).Milliseconds()
	log.Info().
		Str("catalog", update.Catalog).
		Str("source", source).
		Int("accepted", stats.Accepted).
		Int("rejected", stats.Rejected).
		Int64("duration_ms", stats.DurationMillis).
		Msg("Ingest: catalog replaced")
	return stats, nil
}
