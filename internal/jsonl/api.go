package jsonl

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// RegisterRoutes exposes catalog file stats under /api/data.
func RegisterRoutes(r *mux.Router, l *Loader) {
	api := r.PathPrefix("/api/data").Subrouter()
	api.HandleFunc("/stats", l.GetStatsHandler).Methods(http.MethodGet)
}

// GetStatsHandler handles GET /api/data/stats
func (l *Loader) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	stats, err := l.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Catalog loader: stats failed")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    stats,
	})
}
