package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRequest is what a buyer submits from a storefront panel.
type OrderRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int64  `json:"quantity" validate:"gte=0"`
	Country  string `json:"country,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// Order is handed to the billing collaborator once a purchase is committed.
type Order struct {
	ID                     string          `json:"id"`
	Catalog                string          `json:"catalog"`
	ItemID                 string          `json:"item_id"`
	ItemName               string          `json:"item_name"`
	Quantity               int64           `json:"quantity,omitempty"`
	Country                string          `json:"country,omitempty"`
	UnitPriceUSD           decimal.Decimal `json:"unit_price_usd"`
	TotalUSD               decimal.Decimal `json:"total_usd"`
	DisplayCurrency        string          `json:"display_currency"`
	TotalInDisplayCurrency decimal.Decimal `json:"total_in_display_currency"`
	Formatted              string          `json:"formatted"`
	CreatedAt              time.Time       `json:"created_at"`
}

// OrderPlaced is the event published on topic orders.placed.
type OrderPlaced struct {
	Order     Order  `json:"order"`
	SessionID string `json:"session_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

// CatalogUpdate is the payload consumed from topic catalog.ingest.
type CatalogUpdate struct {
	Catalog string        `json:"catalog" validate:"required"`
	Items   []CatalogItem `json:"items"`
}
