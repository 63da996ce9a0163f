package projections

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"socialstack/internal/catalog"
)

// Projector refreshes the Redis read models whenever a catalog is
// replaced in the registry.
type Projector struct {
	rdb *redis.Client
	now func() time.Time
}

// NewProjector wraps a Redis client.
func NewProjector(rdb *redis.Client) *Projector {
	return &Projector{rdb: rdb, now: time.Now}
}

// Project runs the index, shard and delta projectors for one catalog swap.
// Failures are logged and the first one is returned; later projectors
// still run.
func (p *Projector) Project(ctx context.Context, catalogName string, prev, next *catalog.Index) error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}

	if err := ProjectIndex(ctx, p.rdb, catalogName, prev, next); err != nil {
		log.Error().Err(err).Str("catalog", catalogName).Msg("Index Projector error")
		keep(err)
	}
	if err := ProjectShards(ctx, p.rdb, catalogName, next); err != nil {
		log.Error().Err(err).Str("catalog", catalogName).Msg("Shard Projector error")
		keep(err)
	}
	if err := UpdateDelta(ctx, p.rdb, Diff(catalogName, prev, next, p.now())); err != nil {
		log.Error().Err(err).Str("catalog", catalogName).Msg("Delta Projector error")
		keep(err)
	}
	return first
}

// ProjectAll projects every catalog of the registry from scratch.
func (p *Projector) ProjectAll(ctx context.Context, reg *catalog.Registry) error {
	for _, name := range reg.Names() {
		idx, _ := reg.Get(name)
		if err := p.Project(ctx, name, nil, idx); err != nil {
			return err
		}
	}
	return nil
}
