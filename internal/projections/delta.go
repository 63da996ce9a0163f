package projections

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"socialstack/internal/catalog"
)

const deltaTTL = 5 * time.Minute

// Delta lists the item IDs that changed between two versions of a catalog.
type Delta struct {
	Catalog   string   `json:"catalog"`
	Added     []string `json:"added"`
	Removed   []string `json:"removed"`
	Repriced  []string `json:"repriced"`
	Timestamp string   `json:"timestamp"`
}

// Empty reports whether nothing changed.
func (d Delta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Repriced) == 0
}

// Diff compares prev and next by item ID and price.
func Diff(catalogName string, prev, next *catalog.Index, now time.Time) Delta {
	d := Delta{Catalog: catalogName, Added: []string{}, Removed: []string{}, Repriced: []string{}, Timestamp: now.UTC().Format(time.RFC3339)}
	before := itemIDs(nil)
	if prev != nil {
		before = itemIDs(prev.Items())
	}
	after := itemIDs(nil)
	if next != nil {
		after = itemIDs(next.Items())
	}
	for id, it := range after {
		old, ok := before[id]
		switch {
		case !ok:
			d.Added = append(d.Added, id)
		case !old.Price.Equal(it.Price):
			d.Repriced = append(d.Repriced, id)
		}
	}
	for id := range before {
		if _, ok := after[id]; !ok {
			d.Removed = append(d.Removed, id)
		}
	}
	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	sort.Strings(d.Repriced)
	return d
}

// DeltaKey is where a delta is stored.
func DeltaKey(catalogName, timestamp string) string {
	return fmt.Sprintf("delta:%s:%s", catalogName, timestamp)
}

// UpdateDelta stores d with a short TTL. An empty delta is skipped; the
// shards remain the fallback.
func UpdateDelta(ctx context.Context, rdb *redis.Client, d Delta) error {
	if d.Empty() {
		return nil
	}
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	key := DeltaKey(d.Catalog, d.Timestamp)
	if err := rdb.Set(ctx, key, data, deltaTTL).Err(); err != nil {
		return err
	}
	log.Debug().Str("key", key).Dur("ttl", deltaTTL).Msg("Delta Projector: updated")
	return nil
}
