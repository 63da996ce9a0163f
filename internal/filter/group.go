package filter

import (
	"strings"

	"socialstack/internal/model"
)

// SearchResults labels the single bucket shown while searching.
const SearchResults = "Search Results"

// Bucket is one display group.
type Bucket struct {
	Label string              `json:"label"`
	Items []model.CatalogItem `json:"items"`
}

// SearchMode reports whether st narrows the view explicitly (free text,
// a type, or a region set). Browsing groups by type; searching does not.
func SearchMode(st State) bool {
	return strings.TrimSpace(st.SearchQuery) != "" ||
		(st.ActiveType != "" && st.ActiveType != model.All) ||
		len(st.Regions) > 0
}

// Group buckets items by type in first-seen order, or into one
// SearchResults bucket in search mode.
func Group(items []model.CatalogItem, st State) []Bucket {
	if len(items) == 0 {
		return []Bucket{}
	}
	if SearchMode(st) {
		return []Bucket{{Label: SearchResults, Items: append([]model.CatalogItem(nil), items...)}}
	}

	var buckets []Bucket
	pos := map[string]int{}
	for _, it := range items {
		label := it.TypeOrOther()
		i, ok := pos[label]
		if !ok {
			i = len(buckets)
			pos[label] = i
			buckets = append(buckets, Bucket{Label: label})
		}
		buckets[i].Items = append(buckets[i].Items, it)
	}
	return buckets
}

// View is the full pipeline output for one request.
type View struct {
	State   State               `json:"state"`
	Items   []model.CatalogItem `json:"-"`
	Buckets []Bucket            `json:"buckets"`
	Total   int                 `json:"total"`
}

// Run normalizes, filters, sorts and groups in one pass.
func Run(items []model.CatalogItem, st State) View {
	st = Normalize(items, st)
	filtered := ApplyWith(items, Predicates(st))
	sorted := Sort(filtered, st.Sort.Key, st.Sort.Order)
	return View{
		State:   st,
		Items:   sorted,
		Buckets: Group(sorted, st),
		Total:   len(sorted),
	}
}
