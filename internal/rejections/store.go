package rejections

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"socialstack/internal/schemagate"
)

// Store appends rejection records to daily JSONL files under dir.
type Store struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

// NewStore returns a store writing under dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Dir is the directory rejection files are written to.
func (s *Store) Dir() string { return s.dir }

// WriteRejection appends one rejection record. source names where the
// catalog came from ("file:smm.jsonl", "kafka:catalog.ingest").
func (s *Store) WriteRejection(ctx context.Context, source string, rejection schemagate.Rejection) error {
	return s.WriteAll(ctx, source, []schemagate.Rejection{rejection})
}

// WriteAll appends every rejection in a single open of the day's file.
func (s *Store) WriteAll(ctx context.Context, source string, list []schemagate.Rejection) error {
	if len(list) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	now := s.now().UTC()
	fpath := filepath.Join(s.dir, fmt.Sprintf("rejections_%s.jsonl", now.Format("2006-01-02")))
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, rej := range list {
		record := map[string]any{
			"catalog":   rej.Catalog,
			"scope":     rej.Scope,
			"reason":    rej.Reason,
			"source":    source,
			"timestamp": now.Format(time.RFC3339Nano),
		}
		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		if _, err := f.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}
