package projections

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"socialstack/internal/catalog"
	"socialstack/internal/model"
)

// ShardKey holds the ready-to-send item list of one catalog category.
func ShardKey(catalogName, category string) string {
	return fmt.Sprintf("shard:%s:cat:%s", catalogName, category)
}

// ProjectShards stores, per category, the category's items as JSON so a
// storefront edge can serve a category page with one GET.
func ProjectShards(ctx context.Context, rdb *redis.Client, catalogName string, idx *catalog.Index) error {
	if idx == nil {
		return nil
	}
	byCategory := map[string][]model.CatalogItem{}
	order := []string{}
	for _, it := range idx.Items() {
		if _, ok := byCategory[it.Category]; !ok {
			order = append(order, it.Category)
		}
		byCategory[it.Category] = append(byCategory[it.Category], it)
	}

	pipe := rdb.Pipeline()
	for _, cat := range order {
		data, err := json.Marshal(byCategory[cat])
		if err != nil {
			return err
		}
		// TTL=0 means no expiration; the next projection overwrites it.
		pipe.Set(ctx, ShardKey(catalogName, cat), data, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	log.Debug().Str("catalog", catalogName).Int("shards", len(order)).Msg("Shard Projector: updated")
	return nil
}

// Shard reads back one category shard.
func Shard(ctx context.Context, rdb *redis.Client, catalogName, category string) ([]model.CatalogItem, error) {
	data, err := rdb.Get(ctx, ShardKey(catalogName, category)).Bytes()
	if err != nil {
		return nil, err
	}
	var items []model.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
