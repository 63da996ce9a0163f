// Package filter is the storefront's filter, sort and grouping pipeline.
// Every function is pure: inputs are never mutated and no I/O happens here.
package filter

import (
	"strings"

	"socialstack/internal/model"
)

// Predicate reports whether an item passes one facet of a State.
type Predicate func(model.CatalogItem) bool

// Normalize reconciles st with the catalog it will be applied to. A
// category that no longer exists in the active group falls back to the
// group's first category in catalog order, and the type facet is reset.
func Normalize(items []model.CatalogItem, st State) State {
	if st.ActiveGroup == "" {
		st.ActiveGroup = model.All
	}
	if st.ActiveType == "" {
		st.ActiveType = model.All
	}
	if st.ActiveCategory == "" || st.ActiveCategory == model.All {
		return st
	}

	first := ""
	for _, it := range items {
		if !inGroup(it, st.ActiveGroup) {
			continue
		}
		if it.Category == st.ActiveCategory {
			return st
		}
		if first == "" {
			first = it.Category
		}
	}
	if first != "" {
		st.ActiveCategory = first
		st.ActiveType = model.All
	}
	return st
}

// Predicates returns the AND-combined facets of an already normalized
// state. Their evaluation order does not matter.
func Predicates(st State) []Predicate {
	return []Predicate{
		matchSearch(st.SearchQuery),
		matchGroupCategory(st.ActiveGroup, st.ActiveCategory),
		matchType(st.ActiveType),
		matchRegions(st.Regions),
		matchPrice(st.PriceRange),
	}
}

// Apply normalizes st against items and returns the items passing every
// predicate, in input order. No match yields an empty, non-nil slice.
func Apply(items []model.CatalogItem, st State) []model.CatalogItem {
	return ApplyWith(items, Predicates(Normalize(items, st)))
}

// ApplyWith keeps the items passing all of preds.
func ApplyWith(items []model.CatalogItem, preds []Predicate) []model.CatalogItem {
	out := make([]model.CatalogItem, 0, len(items))
next:
	for _, it := range items {
		for _, p := range preds {
			if !p(it) {
				continue next
			}
		}
		out = append(out, it)
	}
	return out
}

func inGroup(it model.CatalogItem, group string) bool {
	return group == "" || group == model.All || it.Group == group
}

func matchSearch(query string) Predicate {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(it model.CatalogItem) bool {
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(it.Name), q) ||
			strings.Contains(strings.ToLower(it.ID), q)
	}
}

func matchGroupCategory(group, category string) Predicate {
	return func(it model.CatalogItem) bool {
		if !inGroup(it, group) {
			return false
		}
		return category == "" || category == model.All || it.Category == category
	}
}

func matchType(typ string) Predicate {
	return func(it model.CatalogItem) bool {
		return typ == "" || typ == model.All || it.TypeOrOther() == typ
	}
}

func matchRegions(regions []string) Predicate {
	set := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		set[r] = struct{}{}
	}
	return func(it model.CatalogItem) bool {
		if len(set) == 0 {
			return true
		}
		for _, f := range it.Facets() {
			if f == model.Global {
				return true
			}
			if _, ok := set[f]; ok {
				return true
			}
		}
		return false
	}
}

func matchPrice(r *PriceRange) Predicate {
	return func(it model.CatalogItem) bool {
		return r == nil || r.Contains(it.Price)
	}
}
