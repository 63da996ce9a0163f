package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"socialstack/internal/filter"
	"socialstack/internal/kstream"
	"socialstack/internal/model"
	"socialstack/internal/pricing"
)

// PricingRow is one line of the admin margin table.
type PricingRow struct {
	Catalog string        `json:"catalog"`
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Cost    pricing.Money `json:"cost"`
	Sell    pricing.Money `json:"sell"`
	Profit  pricing.Money `json:"profit"`
	Margin  string        `json:"margin"`
	Tier    pricing.Tier  `json:"tier"`
}

// adminPricingHandler lists cost, sell, profit, margin and tier per item.
// Rows are sorted within each catalog, catalogs in name order. ?catalog=
// restricts the table to one catalog; sort defaults to margin descending.
func (s *Server) adminPricingHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	key := filter.SortMargin
	if v := q.Get("sort"); v != "" {
		k, err := filter.ParseSortKey(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error(), nil)
			return
		}
		key = k
	}
	order := filter.Desc
	if v := q.Get("order"); v != "" {
		o, err := filter.ParseSortOrder(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error(), nil)
			return
		}
		order = o
	}

	names := s.Registry.Names()
	if c := strings.TrimSpace(q.Get("catalog")); c != "" {
		if _, ok := s.Registry.Get(c); !ok {
			writeError(w, r, http.StatusNotFound, "catalog not found", map[string]any{"catalog": c})
			return
		}
		names = []string{c}
	}

	code := s.currency(r)
	rows := []PricingRow{}
	for _, name := range names {
		idx, _ := s.Registry.Get(name)
		for _, it := range filter.Sort(idx.Items(), key, order) {
			a := pricing.Analyze(it)
			rows = append(rows, PricingRow{
				Catalog: name,
				ID:      it.ID,
				Name:    it.Name,
				Cost:    pricing.Convert(a.Cost, code, s.Currencies),
				Sell:    pricing.Convert(a.Sell, code, s.Currencies),
				Profit:  pricing.Convert(a.Profit, code, s.Currencies),
				Margin:  pricing.FormatMargin(a.Margin),
				Tier:    a.Tier,
			})
		}
	}
	writeJSON(w, r, http.StatusOK, rows)
}

// ingestHandler replaces a catalog. With Kafka enabled the update is
// published to catalog.ingest and applied by the consumer; otherwise it
// is applied inline.
func (s *Server) ingestHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	var raw json.RawMessage
	if !readJSON(w, r, &raw) {
		return
	}
	items, err := uploadItems(raw)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "body must be an array of catalog items or {\"items\": [...]}", nil)
		return
	}
	update := model.CatalogUpdate{Catalog: name, Items: items}

	if s.IngestViaKafka {
		if err := s.Publisher.PublishCatalogUpdate(r.Context(), update); err != nil {
			log.Error().Err(err).Str("catalog", name).Msg("Edge: failed to publish to Kafka")
			writeError(w, r, http.StatusBadGateway, "catalog update not queued", nil)
			return
		}
		writeJSON(w, r, http.StatusAccepted, map[string]any{"catalog": name, "queued": len(update.Items), "topic": kstream.TopicCatalogIngest})
		return
	}

	if s.Ingestor == nil {
		writeError(w, r, http.StatusServiceUnavailable, "catalog ingest disabled", nil)
		return
	}
	stats, err := s.Ingestor.Ingest(r.Context(), "http", update)
	if err != nil {
		log.Error().Err(err).Str("catalog", name).Msg("Ingest: failed")
		writeError(w, r, http.StatusInternalServerError, "ingest failed", nil)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

// uploadItems accepts a catalog upload as a plain item array or as an
// object with an items field. The catalog name always comes from the route.
func uploadItems(raw json.RawMessage) ([]model.CatalogItem, error) {
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		var items []model.CatalogItem
		err := json.Unmarshal(trimmed, &items)
		return items, err
	}
	var body struct {
		Items []model.CatalogItem `json:"items"`
	}
	err := json.Unmarshal(raw, &body)
	return body.Items, err
}
