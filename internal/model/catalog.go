package model

import "github.com/shopspring/decimal"

// Facet sentinels shared by the catalog, filter and API layers.
const (
	All    = "All"
	Global = "Global"
	Other  = "Other"
)

// PricingKind tags the pricing variant of a CatalogItem.
type PricingKind string

const (
	// PricingRate items cost Price per Per units, bounded by [Min, Max].
	PricingRate PricingKind = "rate"
	// PricingFlat items cost Price once (a proxy plan, an RDP instance).
	PricingFlat PricingKind = "flat"
	// PricingRegional items cost Price once but the buyer must pick one of Countries.
	PricingRegional PricingKind = "regional"
)

// CatalogItem is a priced, purchasable unit. Items are created at load time
// and never mutated afterwards.
type CatalogItem struct {
	ID        string          `json:"id" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Group     string          `json:"group" validate:"required"`
	Category  string          `json:"category" validate:"required"`
	Type      string          `json:"type,omitempty"`
	Region    string          `json:"region,omitempty"`
	Kind      PricingKind     `json:"kind" validate:"required,oneof=rate flat regional"`
	Price     decimal.Decimal `json:"price"`
	Per       int64           `json:"per" validate:"gte=1"`
	Min       int64           `json:"min,omitempty" validate:"gte=0"`
	Max       int64           `json:"max,omitempty" validate:"gte=0"`
	Countries []string        `json:"countries,omitempty" validate:"dive,required"`
	Cost      decimal.Decimal `json:"cost"`
	Note      string          `json:"note,omitempty"`
}

// HasBounds reports whether both quantity bounds are present.
func (it CatalogItem) HasBounds() bool {
	return it.Min > 0 && it.Max > 0
}

// Facets returns every region value the item can be delivered to.
func (it CatalogItem) Facets() []string {
	out := make([]string, 0, len(it.Countries)+1)
	if it.Region != "" {
		out = append(out, it.Region)
	}
	return append(out, it.Countries...)
}

// TypeOrOther is the grouping label used for display buckets.
func (it CatalogItem) TypeOrOther() string {
	if it.Type == "" {
		return Other
	}
	return it.Type
}
