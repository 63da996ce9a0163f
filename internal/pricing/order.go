package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"socialstack/internal/model"
)

var (
	ErrQuantityOutOfBounds = errors.New("quantity out of bounds")
	ErrRegionRequired      = errors.New("a delivery country must be selected")
	ErrRegionUnavailable   = errors.New("item is not available in the selected country")
	ErrUnknownPricingKind  = errors.New("unknown pricing kind")
)

// QuantityError carries the bounds a rejected quantity violated.
type QuantityError struct {
	Quantity int64
	Min      int64
	Max      int64
}

func (e *QuantityError) Error() string {
	return fmt.Sprintf("%s: %d not in [%d, %d]", ErrQuantityOutOfBounds, e.Quantity, e.Min, e.Max)
}

func (e *QuantityError) Unwrap() error { return ErrQuantityOutOfBounds }

// Quote is the USD price of one order line.
type Quote struct {
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TotalUSD  decimal.Decimal `json:"total_usd"`
}

// InferKind derives the pricing variant for items loaded without one:
// items with countries are regional, items priced per more than one unit
// are rate priced, everything else is flat.
func InferKind(it model.CatalogItem) model.PricingKind {
	switch {
	case len(it.Countries) > 0:
		return model.PricingRegional
	case it.Per > 1:
		return model.PricingRate
	default:
		return model.PricingFlat
	}
}

// ComputeOrderTotal prices quantity units of item. Rate items cost
// price/per per unit and reject quantities outside [min, max]; flat and
// regional items cost their price and ignore quantity.
func ComputeOrderTotal(item model.CatalogItem, quantity int64) (Quote, error) {
	switch item.Kind {
	case model.PricingRate:
		if err := checkBounds(item, quantity); err != nil {
			return Quote{}, err
		}
		per := item.Per
		if per < 1 {
			per = 1
		}
		unit := item.Price.Div(decimal.NewFromInt(per))
		return Quote{
			Quantity:  quantity,
			UnitPrice: unit,
			TotalUSD:  unit.Mul(decimal.NewFromInt(quantity)),
		}, nil
	case model.PricingFlat, model.PricingRegional:
		return Quote{Quantity: 1, UnitPrice: item.Price, TotalUSD: item.Price}, nil
	default:
		return Quote{}, fmt.Errorf("%w: %q", ErrUnknownPricingKind, item.Kind)
	}
}

func checkBounds(item model.CatalogItem, quantity int64) error {
	low := item.Min
	if low < 1 {
		low = 1
	}
	if quantity < low || (item.Max > 0 && quantity > item.Max) {
		return &QuantityError{Quantity: quantity, Min: item.Min, Max: item.Max}
	}
	return nil
}

// PlaceOrder validates req against item, prices it and renders the total in
// the requested display currency.
func PlaceOrder(catalogName string, item model.CatalogItem, req model.OrderRequest, table CurrencyTable, now time.Time) (model.Order, error) {
	country := ""
	switch item.Kind {
	case model.PricingRegional:
		if req.Country == "" {
			return model.Order{}, ErrRegionRequired
		}
		if !contains(item.Countries, req.Country) {
			return model.Order{}, fmt.Errorf("%w: %s", ErrRegionUnavailable, req.Country)
		}
		country = req.Country
	case model.PricingFlat:
		country = item.Region
	}

	q, err := ComputeOrderTotal(item, req.Quantity)
	if err != nil {
		return model.Order{}, err
	}

	var qty int64
	if item.Kind == model.PricingRate {
		qty = q.Quantity
	}

	m := Convert(q.TotalUSD, req.Currency, table)
	return model.Order{
		ID:                     uuid.NewString(),
		Catalog:                catalogName,
		ItemID:                 item.ID,
		ItemName:               item.Name,
		Quantity:               qty,
		Country:                country,
		UnitPriceUSD:           q.UnitPrice,
		TotalUSD:               q.TotalUSD,
		DisplayCurrency:        m.Code,
		TotalInDisplayCurrency: m.Amount,
		Formatted:              m.Formatted,
		CreatedAt:              now.UTC(),
	}, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
