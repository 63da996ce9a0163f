package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"socialstack/internal/model"
	"socialstack/internal/pricing"
)

// maxHistory caps the orders kept per session.
const maxHistory = 500

// QuoteResponse is the body of POST /catalogs/{name}/quote.
type QuoteResponse struct {
	ItemID       string          `json:"item_id"`
	Quantity     int64           `json:"quantity,omitempty"`
	Country      string          `json:"country,omitempty"`
	UnitPriceUSD decimal.Decimal `json:"unit_price_usd"`
	TotalUSD     decimal.Decimal `json:"total_usd"`
	Total        pricing.Money   `json:"total"`
}

// priceRequest decodes an order request and prices it against the catalog
// named in the route. It writes the error response itself.
func (s *Server) priceRequest(w http.ResponseWriter, r *http.Request) (model.Order, bool) {
	name, idx, ok := s.index(w, r)
	if !ok {
		return model.Order{}, false
	}
	var req model.OrderRequest
	if !decodeBody(w, r, &req) {
		return model.Order{}, false
	}
	if req.Currency == "" {
		req.Currency = s.currency(r)
	}

	item, found := idx.Lookup(req.ItemID)
	if !found {
		writeError(w, r, http.StatusNotFound, "item not found", map[string]any{"item_id": req.ItemID})
		return model.Order{}, false
	}

	order, err := pricing.PlaceOrder(name, item, req, s.Currencies, s.now())
	if err != nil {
		writePricingError(w, r, err)
		return model.Order{}, false
	}
	return order, true
}

func writePricingError(w http.ResponseWriter, r *http.Request, err error) {
	var qe *pricing.QuantityError
	switch {
	case errors.As(err, &qe):
		writeError(w, r, http.StatusUnprocessableEntity, pricing.ErrQuantityOutOfBounds.Error(), map[string]any{
			"quantity": qe.Quantity,
			"min":      qe.Min,
			"max":      qe.Max,
		})
	case errors.Is(err, pricing.ErrRegionRequired), errors.Is(err, pricing.ErrRegionUnavailable):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error(), nil)
	default:
		log.Error().Err(err).Msg("Pricing: unexpected error")
		writeError(w, r, http.StatusInternalServerError, "pricing failed", nil)
	}
}

func (s *Server) quoteHandler(w http.ResponseWriter, r *http.Request) {
	order, ok := s.priceRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, QuoteResponse{
		ItemID:       order.ItemID,
		Quantity:     order.Quantity,
		Country:      order.Country,
		UnitPriceUSD: order.UnitPriceUSD,
		TotalUSD:     order.TotalUSD,
		Total: pricing.Money{
			Code:      order.DisplayCurrency,
			Symbol:    s.symbol(order.DisplayCurrency),
			Amount:    order.TotalInDisplayCurrency,
			Formatted: order.Formatted,
		},
	})
}

func (s *Server) symbol(code string) string {
	c, _ := s.Currencies.Lookup(code)
	return c.Symbol
}

func (s *Server) orderHandler(w http.ResponseWriter, r *http.Request) {
	order, ok := s.priceRequest(w, r)
	if !ok {
		return
	}
	sessionID := r.Header.Get(SessionHeader)

	evt := model.OrderPlaced{
		Order:     order,
		SessionID: sessionID,
		Timestamp: order.CreatedAt.Format(time.RFC3339Nano),
	}
	if err := s.Publisher.PublishOrder(r.Context(), evt); err != nil {
		log.Error().Err(err).Str("order", order.ID).Msg("Orders: failed to publish")
		writeError(w, r, http.StatusBadGateway, "order could not be handed to billing", nil)
		return
	}

	if sessionID != "" {
		if err := s.appendHistory(r, sessionID, order); err != nil {
			log.Error().Err(err).Str("session", sessionID).Msg("Orders: failed to record history")
		}
	}

	log.Info().Str("order", order.ID).Str("catalog", order.Catalog).Str("item", order.ItemID).Str("total_usd", order.TotalUSD.StringFixed(2)).Msg("Orders: placed")
	writeJSON(w, r, http.StatusCreated, order)
}

func historyKey(sessionID string) string { return "orders:" + sessionID }

func (s *Server) loadHistory(r *http.Request, sessionID string) ([]model.Order, error) {
	entries, err := s.Store.List(r.Context(), historyKey(sessionID))
	if err != nil {
		return nil, err
	}
	orders := make([]model.Order, 0, len(entries))
	for _, e := range entries {
		var o model.Order
		if err := json.Unmarshal(e, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (s *Server) appendHistory(r *http.Request, sessionID string, order model.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return s.Store.Append(r.Context(), historyKey(sessionID), data, maxHistory)
}

func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := muxVar(r, "id")
	orders, err := s.loadHistory(r, sessionID)
	if err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("Orders: failed to load history")
		writeError(w, r, http.StatusInternalServerError, "history unavailable", nil)
		return
	}
	writeJSON(w, r, http.StatusOK, pricing.Summarize(orders, s.currency(r), s.Currencies))
}
