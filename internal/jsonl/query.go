package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"socialstack/internal/model"
	"socialstack/internal/pricing"
)

// maxLine bounds a single catalog record.
const maxLine = 1 << 20

// Loader reads catalogs stored as JSONL files, one CatalogItem per line.
// The file name without extension is the catalog name.
type Loader struct {
	dataDir string
}

// NewLoader creates a loader for dataDir.
func NewLoader(dataDir string) *Loader {
	return &Loader{dataDir: dataDir}
}

// FileStats describes one catalog file.
type FileStats struct {
	Catalog string `json:"catalog"`
	File    string `json:"file"`
	Items   int    `json:"items"`
	Skipped int    `json:"skipped"`
}

// LoadAll reads every *.jsonl file in the data directory. A missing
// directory yields no catalogs, not an error.
func (l *Loader) LoadAll(ctx context.Context) (map[string][]model.CatalogItem, error) {
	files, err := l.files()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]model.CatalogItem, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items, _, err := l.LoadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		out[catalogName(file)] = items
	}
	return out, nil
}

// LoadFile parses one catalog file. Lines that are blank are ignored; lines
// that fail to decode are counted as skipped and logged. Items without a
// kind get one inferred from their shape.
func (l *Loader) LoadFile(ctx context.Context, file string) ([]model.CatalogItem, int, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, 0, fmt.Errorf("open catalog %s: %w", file, err)
	}
	defer f.Close()

	items := []model.CatalogItem{}
	skipped := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var it model.CatalogItem
		if err := json.Unmarshal([]byte(line), &it); err != nil {
			skipped++
			log.Warn().Err(err).Str("file", filepath.Base(file)).Int("line", lineNo).Msg("Catalog loader: skipping malformed line")
			continue
		}
		if it.Kind == "" {
			it.Kind = pricing.InferKind(it)
		}
		if it.Per == 0 {
			it.Per = 1
		}
		items = append(items, it)
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read catalog %s: %w", file, err)
	}
	return items, skipped, nil
}

// Stats summarizes every catalog file without keeping the items.
func (l *Loader) Stats(ctx context.Context) ([]FileStats, error) {
	files, err := l.files()
	if err != nil {
		return nil, err
	}
	stats := make([]FileStats, 0, len(files))
	for _, file := range files {
		items, skipped, err := l.LoadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		stats = append(stats, FileStats{
			Catalog: catalogName(file),
			File:    filepath.Base(file),
			Items:   len(items),
			Skipped: skipped,
		})
	}
	return stats, nil
}

func (l *Loader) files() ([]string, error) {
	if l.dataDir == "" {
		return nil, nil
	}
	files, err := filepath.Glob(filepath.Join(l.dataDir, "*.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func catalogName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}
