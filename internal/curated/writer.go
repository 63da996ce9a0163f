package curated

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"socialstack/internal/model"
)

// WriteCatalog persists an accepted catalog as <dir>/<name>.jsonl, one item
// per line, so the catalog survives a restart. The file is written to a
// temporary sibling and renamed into place.
func WriteCatalog(ctx context.Context, dir, name string, items []model.CatalogItem) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	for _, it := range items {
		if err := ctx.Err(); err != nil {
			tmp.Close()
			return err
		}
		if err := enc.Encode(it); err != nil {
			tmp.Close()
			return fmt.Errorf("encode item %s: %w", it.ID, err)
		}
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	dst := filepath.Join(dir, name+".jsonl")
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return err
	}
	log.Debug().Str("catalog", name).Int("items", len(items)).Str("file", dst).Msg("Curated Writer: catalog written")
	return nil
}
