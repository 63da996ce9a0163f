package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"socialstack/internal/filter"
	"socialstack/internal/store"
)

func muxVar(r *http.Request, key string) string { return mux.Vars(r)[key] }

func filtersKey(sessionID, catalogName string) string {
	return "filters:" + sessionID + ":" + catalogName
}

func (s *Server) getFiltersHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.loadFilters(r, muxVar(r, "id"), muxVar(r, "catalog"))
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "no saved filters", nil)
	case err != nil:
		log.Error().Err(err).Msg("Sessions: failed to load filters")
		writeError(w, r, http.StatusInternalServerError, "filters unavailable", nil)
	default:
		writeJSON(w, r, http.StatusOK, st)
	}
}

// putFiltersHandler saves a filter state. Missing selectors fall back to
// the default browsing state.
func (s *Server) putFiltersHandler(w http.ResponseWriter, r *http.Request) {
	catalogName := muxVar(r, "catalog")
	if _, ok := s.Registry.Get(catalogName); !ok {
		writeError(w, r, http.StatusNotFound, "catalog not found", map[string]any{"catalog": catalogName})
		return
	}

	st := filter.NewState()
	if !decodeBody(w, r, &st) {
		return
	}
	st.SetGroup(st.ActiveGroup)
	st.SetType(st.ActiveType)
	st.SetRegions(st.Regions)
	if err := st.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	data, err := json.Marshal(st)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "encode failed", nil)
		return
	}
	if err := s.Store.Set(r.Context(), filtersKey(muxVar(r, "id"), catalogName), data); err != nil {
		log.Error().Err(err).Msg("Sessions: failed to save filters")
		writeError(w, r, http.StatusInternalServerError, "filters not saved", nil)
		return
	}
	writeJSON(w, r, http.StatusOK, st)
}

func (s *Server) deleteFiltersHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Remove(r.Context(), filtersKey(muxVar(r, "id"), muxVar(r, "catalog"))); err != nil {
		log.Error().Err(err).Msg("Sessions: failed to delete filters")
		writeError(w, r, http.StatusInternalServerError, "filters not deleted", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
