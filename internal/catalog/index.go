package catalog

import (
	"sort"

	"socialstack/internal/model"
)

// Index is a read-only view over one catalog, grouped by group and category.
// Slices inside the maps keep the catalog's natural order.
type Index struct {
	items      []model.CatalogItem
	byID       map[string]int
	byGroup    map[string][]model.CatalogItem
	byCategory map[string][]model.CatalogItem
	groups     []string
	categories map[string][]string // group -> categories in first-seen order
	allCats    []string
	countries  []string
}

// Build indexes items. The input slice is copied; an empty input yields an
// empty index.
func Build(items []model.CatalogItem) *Index {
	idx := &Index{
		items:      append([]model.CatalogItem(nil), items...),
		byID:       make(map[string]int, len(items)),
		byGroup:    map[string][]model.CatalogItem{},
		byCategory: map[string][]model.CatalogItem{},
		categories: map[string][]string{},
	}

	seenCat := map[string]bool{}
	seenGroupCat := map[string]bool{}
	countrySet := map[string]struct{}{}

	for i, it := range idx.items {
		idx.byID[it.ID] = i

		if _, ok := idx.byGroup[it.Group]; !ok {
			idx.groups = append(idx.groups, it.Group)
		}
		idx.byGroup[it.Group] = append(idx.byGroup[it.Group], it)
		idx.byCategory[it.Category] = append(idx.byCategory[it.Category], it)

		if gc := it.Group + "\x00" + it.Category; !seenGroupCat[gc] {
			seenGroupCat[gc] = true
			idx.categories[it.Group] = append(idx.categories[it.Group], it.Category)
		}
		if !seenCat[it.Category] {
			seenCat[it.Category] = true
			idx.allCats = append(idx.allCats, it.Category)
		}

		for _, c := range it.Facets() {
			if c != "" && c != model.Global {
				countrySet[c] = struct{}{}
			}
		}
	}

	idx.countries = make([]string, 0, len(countrySet))
	for c := range countrySet {
		idx.countries = append(idx.countries, c)
	}
	sort.Strings(idx.countries)

	return idx
}

// Items returns the catalog in natural order.
func (x *Index) Items() []model.CatalogItem {
	return append([]model.CatalogItem(nil), x.items...)
}

// Len is the number of indexed items.
func (x *Index) Len() int { return len(x.items) }

// Lookup finds an item by ID.
func (x *Index) Lookup(id string) (model.CatalogItem, bool) {
	i, ok := x.byID[id]
	if !ok {
		return model.CatalogItem{}, false
	}
	return x.items[i], true
}

// ByGroup returns the items of group in natural order.
func (x *Index) ByGroup(group string) []model.CatalogItem {
	return append([]model.CatalogItem(nil), x.byGroup[group]...)
}

// ByCategory returns the items of category in natural order.
func (x *Index) ByCategory(category string) []model.CatalogItem {
	return append([]model.CatalogItem(nil), x.byCategory[category]...)
}

// Groups lists groups in first-seen order.
func (x *Index) Groups() []string {
	return append([]string(nil), x.groups...)
}

// Categories lists the categories of group in first-seen order. model.All
// or an empty group lists every category.
func (x *Index) Categories(group string) []string {
	if group == "" || group == model.All {
		return append([]string(nil), x.allCats...)
	}
	return append([]string(nil), x.categories[group]...)
}

// Countries is the lexicographically sorted set of delivery regions, without
// the Global sentinel.
func (x *Index) Countries() []string {
	return append([]string(nil), x.countries...)
}
