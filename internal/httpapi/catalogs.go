package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/shopspring/decimal"

	"socialstack/internal/filter"
	"socialstack/internal/model"
	"socialstack/internal/pricing"
	"socialstack/internal/store"
)

// filterParams are the query parameters that make up a filter state.
var filterParams = []string{"q", "group", "category", "type", "region", "min", "max", "sort", "order"}

// ItemView is a catalog item as shown on a storefront card.
type ItemView struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Group     string            `json:"group"`
	Category  string            `json:"category"`
	Type      string            `json:"type,omitempty"`
	Region    string            `json:"region,omitempty"`
	Kind      model.PricingKind `json:"kind"`
	Countries []string          `json:"countries,omitempty"`
	Note      string            `json:"note,omitempty"`
	PriceUSD  decimal.Decimal   `json:"price_usd"`
	Per       int64             `json:"per"`
	Min       int64             `json:"min,omitempty"`
	Max       int64             `json:"max,omitempty"`
	Price     pricing.Money     `json:"price"`
}

// BucketView is one labelled display group.
type BucketView struct {
	Label string     `json:"label"`
	Items []ItemView `json:"items"`
}

// ItemsResponse is the body of GET /catalogs/{name}/items.
type ItemsResponse struct {
	Catalog  string       `json:"catalog"`
	State    filter.State `json:"state"`
	Currency string       `json:"currency"`
	Total    int          `json:"total"`
	Buckets  []BucketView `json:"buckets"`
}

func (s *Server) itemView(it model.CatalogItem, code string) ItemView {
	return ItemView{
		ID:        it.ID,
		Name:      it.Name,
		Group:     it.Group,
		Category:  it.Category,
		Type:      it.Type,
		Region:    it.Region,
		Kind:      it.Kind,
		Countries: it.Countries,
		Note:      it.Note,
		PriceUSD:  it.Price,
		Per:       it.Per,
		Min:       it.Min,
		Max:       it.Max,
		Price:     pricing.Convert(it.Price, code, s.Currencies),
	}
}

func (s *Server) catalogsHandler(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Name  string `json:"name"`
		Items int    `json:"items"`
	}
	out := []entry{}
	for _, name := range s.Registry.Names() {
		idx, _ := s.Registry.Get(name)
		out = append(out, entry{Name: name, Items: idx.Len()})
	}
	writeJSON(w, r, http.StatusOK, out)
}

// requestState parses the filter state of a request. Without any filter
// parameter, a state saved for the caller's session is used instead.
func (s *Server) requestState(r *http.Request, catalogName string) (filter.State, error) {
	q := r.URL.Query()
	explicit := false
	for _, p := range filterParams {
		if q.Has(p) {
			explicit = true
			break
		}
	}
	if !explicit {
		if id := r.Header.Get(SessionHeader); id != "" {
			st, err := s.loadFilters(r, id, catalogName)
			if err == nil {
				return st, nil
			}
			if !errors.Is(err, store.ErrNotFound) {
				return filter.State{}, err
			}
		}
	}
	return filter.ParseState(q)
}

func (s *Server) itemsHandler(w http.ResponseWriter, r *http.Request) {
	name, idx, ok := s.index(w, r)
	if !ok {
		return
	}
	st, err := s.requestState(r, name)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	code := s.currency(r)
	view := filter.Run(idx.Items(), st)

	resp := ItemsResponse{
		Catalog:  name,
		State:    view.State,
		Currency: code,
		Total:    view.Total,
		Buckets:  make([]BucketView, 0, len(view.Buckets)),
	}
	for _, b := range view.Buckets {
		bv := BucketView{Label: b.Label, Items: make([]ItemView, 0, len(b.Items))}
		for _, it := range b.Items {
			bv.Items = append(bv.Items, s.itemView(it, code))
		}
		resp.Buckets = append(resp.Buckets, bv)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) facetsHandler(w http.ResponseWriter, r *http.Request) {
	name, idx, ok := s.index(w, r)
	if !ok {
		return
	}
	st, err := s.requestState(r, name)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}
	writeJSON(w, r, http.StatusOK, filter.FacetsFor(idx, st))
}

func (s *Server) currenciesHandler(w http.ResponseWriter, r *http.Request) {
	out := make([]pricing.Currency, 0, len(s.Currencies))
	for _, c := range s.Currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	writeJSON(w, r, http.StatusOK, map[string]any{
		"default":    s.DefaultCurrency,
		"currencies": out,
	})
}

func (s *Server) loadFilters(r *http.Request, sessionID, catalogName string) (filter.State, error) {
	data, err := s.Store.Get(r.Context(), filtersKey(sessionID, catalogName))
	if err != nil {
		return filter.State{}, err
	}
	var st filter.State
	if err := json.Unmarshal(data, &st); err != nil {
		return filter.State{}, err
	}
	return st, st.Validate()
}
