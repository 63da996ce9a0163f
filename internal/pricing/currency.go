package pricing

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// BaseCurrency is the denomination of every catalog price.
const BaseCurrency = "USD"

// Currency is one row of the display currency table.
type Currency struct {
	Code   string          `json:"code"`
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Rate   decimal.Decimal `json:"rate"` // units per 1 USD
}

// CurrencyTable maps an ISO code to its display data. It is built once at
// startup and only read afterwards.
type CurrencyTable map[string]Currency

var usdFallback = Currency{Code: BaseCurrency, Symbol: "$", Name: "US Dollar", Rate: decimal.NewFromInt(1)}

// DefaultCurrencies is the static table shipped with the dashboard.
func DefaultCurrencies() CurrencyTable {
	row := func(code, symbol, name, rate string) Currency {
		return Currency{Code: code, Symbol: symbol, Name: name, Rate: decimal.RequireFromString(rate)}
	}
	return CurrencyTable{
		"USD": usdFallback,
		"EUR": row("EUR", "€", "Euro", "0.92"),
		"GBP": row("GBP", "£", "British Pound", "0.79"),
		"INR": row("INR", "₹", "Indian Rupee", "83.12"),
		"NGN": row("NGN", "₦", "Nigerian Naira", "1550.00"),
		"BRL": row("BRL", "R$", "Brazilian Real", "5.05"),
		"JPY": row("JPY", "¥", "Japanese Yen", "151.40"),
		"AED": row("AED", "AED ", "UAE Dirham", "3.67"),
	}
}

// Lookup resolves code, falling back to USD for unknown codes. The bool
// reports whether code itself was found.
func (t CurrencyTable) Lookup(code string) (Currency, bool) {
	if c, ok := t[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return c, true
	}
	if c, ok := t[BaseCurrency]; ok {
		return c, false
	}
	return usdFallback, false
}

// Money is an amount rendered in a display currency.
type Money struct {
	Code      string          `json:"code"`
	Symbol    string          `json:"symbol"`
	Amount    decimal.Decimal `json:"amount"`
	Formatted string          `json:"formatted"`
}

// Convert renders a USD amount in code at order-total precision (2
// decimals). Unknown codes silently render in USD.
func Convert(amountUSD decimal.Decimal, code string, table CurrencyTable) Money {
	c, _ := table.Lookup(code)
	amount := amountUSD.Mul(c.Rate).Round(2)
	return Money{
		Code:      c.Code,
		Symbol:    c.Symbol,
		Amount:    amount,
		Formatted: c.Symbol + amount.StringFixed(2),
	}
}

// ConvertAggregate renders a USD amount at KPI precision: rounded to a
// whole unit, with thousands separators.
func ConvertAggregate(amountUSD decimal.Decimal, code string, table CurrencyTable) Money {
	c, _ := table.Lookup(code)
	amount := amountUSD.Mul(c.Rate).Round(0)
	return Money{
		Code:      c.Code,
		Symbol:    c.Symbol,
		Amount:    amount,
		Formatted: c.Symbol + humanize.Comma(amount.IntPart()),
	}
}
