package pricing

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"socialstack/internal/model"
)

// Tier buckets a margin for the admin pricing table.
type Tier string

const (
	TierUltra  Tier = "ULTRA"
	TierHigh   Tier = "HIGH"
	TierMedium Tier = "MEDIUM"
	TierLow    Tier = "LOW"
	TierLoss   Tier = "LOSS"
)

// Profit is sell minus cost.
func Profit(cost, sell decimal.Decimal) decimal.Decimal {
	return sell.Sub(cost)
}

// Margin is profit over cost, in percent. A zero cost yields +Inf when
// sell is positive and 0 when sell is zero.
func Margin(cost, sell decimal.Decimal) float64 {
	if cost.IsZero() {
		if sell.IsPositive() {
			return math.Inf(1)
		}
		return 0
	}
	m, _ := Profit(cost, sell).Div(cost).Mul(decimal.NewFromInt(100)).Float64()
	return m
}

// TierFor maps a margin percentage to its tier.
func TierFor(margin float64) Tier {
	switch {
	case margin > 100:
		return TierUltra
	case margin > 50:
		return TierHigh
	case margin > 20:
		return TierMedium
	case margin >= 0:
		return TierLow
	default:
		return TierLoss
	}
}

// FormatMargin renders a margin with one decimal; +Inf renders as "∞".
func FormatMargin(margin float64) string {
	if math.IsInf(margin, 1) {
		return "∞"
	}
	return strconv.FormatFloat(margin, 'f', 1, 64)
}

// Analysis is the admin view of one catalog item.
type Analysis struct {
	Cost   decimal.Decimal
	Sell   decimal.Decimal
	Profit decimal.Decimal
	Margin float64
	Tier   Tier
}

// Analyze computes profit, margin and tier for an item, selling at its
// catalog price.
func Analyze(it model.CatalogItem) Analysis {
	m := Margin(it.Cost, it.Price)
	return Analysis{
		Cost:   it.Cost,
		Sell:   it.Price,
		Profit: Profit(it.Cost, it.Price),
		Margin: m,
		Tier:   TierFor(m),
	}
}
