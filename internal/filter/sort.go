package filter

import (
	"sort"
	"strings"

	"socialstack/internal/model"
	"socialstack/internal/pricing"
)

// Sort returns a sorted copy of items. Items with equal keys keep their
// input order in both directions.
func Sort(items []model.CatalogItem, key SortKey, order SortOrder) []model.CatalogItem {
	out := append([]model.CatalogItem(nil), items...)
	cmp := comparator(key)
	if order == Desc {
		sort.SliceStable(out, func(i, j int) bool { return cmp(out[i], out[j]) > 0 })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return cmp(out[i], out[j]) < 0 })
	}
	return out
}

func comparator(key SortKey) func(a, b model.CatalogItem) int {
	switch key {
	case SortPrice:
		return func(a, b model.CatalogItem) int { return a.Price.Cmp(b.Price) }
	case SortProfit:
		return func(a, b model.CatalogItem) int {
			return pricing.Profit(a.Cost, a.Price).Cmp(pricing.Profit(b.Cost, b.Price))
		}
	case SortMargin:
		return func(a, b model.CatalogItem) int {
			return cmpFloat(pricing.Margin(a.Cost, a.Price), pricing.Margin(b.Cost, b.Price))
		}
	default:
		return func(a, b model.CatalogItem) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
