package httpapi

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"socialstack/internal/catalog"
	"socialstack/internal/content"
	"socialstack/internal/kstream"
	"socialstack/internal/pricing"
	"socialstack/internal/processing"
	"socialstack/internal/store"
)

// go-playground/validator/v10: struct validator for request bodies.
var validate = validator.New()

// maxBody bounds every request body, catalog uploads included.
const maxBody = 8 << 20

// SessionHeader carries the caller's session for persisted filters and
// order history.
const SessionHeader = "X-Session-ID"

// Deps are the collaborators of the API.
type Deps struct {
	Registry   *catalog.Registry
	Store      store.Store
	Publisher  kstream.Publisher
	Ingestor   *processing.Ingestor
	Content    content.Provider
	Currencies pricing.CurrencyTable
	// DefaultCurrency is used when a request names none.
	DefaultCurrency string
	// IngestViaKafka routes catalog uploads through catalog.ingest instead
	// of applying them inline.
	IngestViaKafka bool
}

// Server holds the HTTP handlers.
type Server struct {
	Deps
	now func() time.Time
}

// NewServer fills unset optional collaborators with their defaults.
func NewServer(d Deps) *Server {
	if d.Store == nil {
		d.Store = store.NewMemoryStore()
	}
	if d.Publisher == nil {
		d.Publisher = kstream.NopPublisher{}
	}
	if d.Content == nil {
		d.Content = content.MockProvider{}
	}
	if d.Currencies == nil {
		d.Currencies = pricing.DefaultCurrencies()
	}
	if d.DefaultCurrency == "" {
		d.DefaultCurrency = pricing.BaseCurrency
	}
	return &Server{Deps: d, now: time.Now}
}

// RegisterRoutes wires HTTP routes.
// gorilla/mux: Router provides method-based routing and URL pattern matching.
func (s *Server) RegisterRoutes(r *mux.Router) {
	r.Use(logRequests)

	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/currencies", s.currenciesHandler).Methods(http.MethodGet)

	r.HandleFunc("/catalogs", s.catalogsHandler).Methods(http.MethodGet)
	r.HandleFunc("/catalogs/{name}/items", s.itemsHandler).Methods(http.MethodGet)
	r.HandleFunc("/catalogs/{name}/facets", s.facetsHandler).Methods(http.MethodGet)
	r.HandleFunc("/catalogs/{name}/quote", s.quoteHandler).Methods(http.MethodPost)
	r.HandleFunc("/catalogs/{name}/orders", s.orderHandler).Methods(http.MethodPost)

	r.HandleFunc("/admin/pricing", s.adminPricingHandler).Methods(http.MethodGet)
	r.HandleFunc("/admin/catalogs/{name}", s.ingestHandler).Methods(http.MethodPut)

	r.HandleFunc("/sessions/{id}/filters/{catalog}", s.getFiltersHandler).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/filters/{catalog}", s.putFiltersHandler).Methods(http.MethodPut)
	r.HandleFunc("/sessions/{id}/filters/{catalog}", s.deleteFiltersHandler).Methods(http.MethodDelete)
	r.HandleFunc("/sessions/{id}/summary", s.summaryHandler).Methods(http.MethodGet)

	r.HandleFunc("/content/caption", s.captionHandler).Methods(http.MethodPost)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string, details map[string]any) {
	writeJSON(w, r, status, errorBody{Error: msg, Details: details})
}

// writeJSON encodes v, gzip-compressed when the client accepts it.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Add("Vary", "Accept-Encoding")

	if !acceptsGzip(r) {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
		return
	}

	w.Header().Set("Content-Encoding", "gzip")
	w.WriteHeader(status)
	gw := gzip.NewWriter(w)
	defer gw.Close()
	_ = json.NewEncoder(gw).Encode(v)
}

func acceptsGzip(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		if strings.EqualFold(strings.TrimSpace(strings.SplitN(enc, ";", 2)[0]), "gzip") {
			return true
		}
	}
	return false
}

// decodeBody reads a JSON body, gzip-compressed or not, and validates it
// against its struct tags.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !readJSON(w, r, dst) {
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := map[string]any{}
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			writeError(w, r, http.StatusBadRequest, "validation failed", fields)
			return false
		}
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
		return false
	}
	return true
}

// readJSON decodes a JSON body, gzip-compressed or not, without validation.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	reader := io.Reader(http.MaxBytesReader(w, r.Body, maxBody))
	if enc := r.Header.Get("Content-Encoding"); strings.EqualFold(enc, "gzip") {
		gr, err := gzip.NewReader(reader)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "failed to decompress gzip body", nil)
			return false
		}
		defer gr.Close()
		reader = gr
	}

	if err := json.NewDecoder(reader).Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body", nil)
		return false
	}
	return true
}

// currency resolves the display currency of a request: the currency query
// parameter, then the server default. Unknown codes resolve to USD.
func (s *Server) currency(r *http.Request) string {
	code := s.DefaultCurrency
	if c := strings.TrimSpace(r.URL.Query().Get("currency")); c != "" {
		code = c
	}
	c, _ := s.Currencies.Lookup(code)
	return c.Code
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) (string, *catalog.Index, bool) {
	name := mux.Vars(r)["name"]
	idx, ok := s.Registry.Get(name)
	if !ok {
		writeError(w, r, http.StatusNotFound, "catalog not found", map[string]any{"catalog": name})
		return name, nil, false
	}
	return name, idx, true
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}
