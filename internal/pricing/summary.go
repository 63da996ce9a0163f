package pricing

import (
	"github.com/shopspring/decimal"

	"socialstack/internal/model"
)

// Summary feeds the dashboard spend card.
type Summary struct {
	Orders       int   `json:"orders"`
	TotalSpend   Money `json:"total_spend"`
	AverageOrder Money `json:"average_order"`
}

// Summarize aggregates orders in USD and renders the spend at KPI precision
// and the average at order precision.
func Summarize(orders []model.Order, code string, table CurrencyTable) Summary {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.TotalUSD)
	}
	avg := decimal.Zero
	if n := len(orders); n > 0 {
		avg = total.Div(decimal.NewFromInt(int64(n)))
	}
	return Summary{
		Orders:       len(orders),
		TotalSpend:   ConvertAggregate(total, code, table),
		AverageOrder: Convert(avg, code, table),
	}
}
