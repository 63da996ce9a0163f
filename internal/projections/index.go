package projections

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"socialstack/internal/catalog"
	"socialstack/internal/model"
)

// IndexKey is the set of item IDs in one group/category of a catalog.
func IndexKey(catalogName, group, category string) string {
	return fmt.Sprintf("idx:%s:%s:%s", catalogName, group, category)
}

// PriceKey is the sorted set of item IDs of a category scored by USD price.
func PriceKey(catalogName, category string) string {
	return fmt.Sprintf("price:%s:%s", catalogName, category)
}

// ProjectIndex rewrites the Redis index (group:category → item IDs) and the
// per-category price ranking for a catalog. Keys derived from prev are
// removed first so categories that disappeared do not linger.
func ProjectIndex(ctx context.Context, rdb *redis.Client, catalogName string, prev, next *catalog.Index) error {
	stale := map[string]struct{}{}
	for _, k := range indexKeys(catalogName, prev) {
		stale[k] = struct{}{}
	}
	for _, k := range indexKeys(catalogName, next) {
		stale[k] = struct{}{}
	}

	// redis/go-redis/v9: TxPipelined wraps the rewrite in MULTI/EXEC so
	// readers never observe a half-projected catalog.
	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k := range stale {
			pipe.Del(ctx, k)
		}
		if next == nil {
			return nil
		}
		for _, it := range next.Items() {
			pipe.SAdd(ctx, IndexKey(catalogName, it.Group, it.Category), it.ID)
			pipe.ZAdd(ctx, PriceKey(catalogName, it.Category), redis.Z{Score: it.Price.InexactFloat64(), Member: it.ID})
		}
		return nil
	})
	if err != nil {
		return err
	}

	n := 0
	if next != nil {
		n = next.Len()
	}
	log.Debug().Str("catalog", catalogName).Int("items", n).Msg("Index Projector: updated")
	return nil
}

func indexKeys(catalogName string, idx *catalog.Index) []string {
	if idx == nil {
		return nil
	}
	var keys []string
	for _, g := range idx.Groups() {
		for _, c := range idx.Categories(g) {
			keys = append(keys, IndexKey(catalogName, g, c), PriceKey(catalogName, c))
		}
	}
	return keys
}

// Members returns the item IDs indexed under group/category.
func Members(ctx context.Context, rdb *redis.Client, catalogName, group, category string) ([]string, error) {
	return rdb.SMembers(ctx, IndexKey(catalogName, group, category)).Result()
}

// Cheapest returns up to n item IDs of a category in ascending price order.
func Cheapest(ctx context.Context, rdb *redis.Client, catalogName, category string, n int64) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}
	return rdb.ZRange(ctx, PriceKey(catalogName, category), 0, n-1).Result()
}

func itemIDs(items []model.CatalogItem) map[string]model.CatalogItem {
	out := make(map[string]model.CatalogItem, len(items))
	for _, it := range items {
		out[it.ID] = it
	}
	return out
}
