package filter

import (
	"github.com/shopspring/decimal"

	"socialstack/internal/catalog"
	"socialstack/internal/model"
)

// Facets lists the selector values valid for a state.
type Facets struct {
	Groups     []string         `json:"groups"`
	Categories []string         `json:"categories"`
	Types      []string         `json:"types"`
	Countries  []string         `json:"countries"`
	PriceMin   *decimal.Decimal `json:"price_min,omitempty"`
	PriceMax   *decimal.Decimal `json:"price_max,omitempty"`
}

// FacetsFor computes selector values for st against idx. Types are scoped
// to the normalized category; the price span covers the active group.
func FacetsFor(idx *catalog.Index, st State) Facets {
	items := idx.Items()
	st = Normalize(items, st)

	f := Facets{
		Groups:     append([]string{model.All}, idx.Groups()...),
		Categories: idx.Categories(st.ActiveGroup),
		Types:      []string{model.All},
		Countries:  idx.Countries(),
	}

	seenType := map[string]bool{}
	for _, it := range items {
		if !inGroup(it, st.ActiveGroup) {
			continue
		}
		if f.PriceMin == nil || it.Price.LessThan(*f.PriceMin) {
			p := it.Price
			f.PriceMin = &p
		}
		if f.PriceMax == nil || it.Price.GreaterThan(*f.PriceMax) {
			p := it.Price
			f.PriceMax = &p
		}
		if st.ActiveCategory != "" && st.ActiveCategory != model.All && it.Category != st.ActiveCategory {
			continue
		}
		if label := it.TypeOrOther(); !seenType[label] {
			seenType[label] = true
			f.Types = append(f.Types, label)
		}
	}
	return f
}
