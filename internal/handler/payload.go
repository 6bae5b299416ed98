package handler // declare the package name; contains HTTP handlers

import (
	"github.com/labstack/echo/v4" // echo is the web framework used for this project

	"github.com/opernhaus/ticket-booking/internal/cart" // cart holds the selection and order logic
)

// seatItem is the JSON shape of a single selected seat in cart responses.
//
// Fields:
//   - ID: qualified seat identifier, e.g. "Parterre-A12".
//   - Section: display name of the section the seat belongs to.
//   - PriceCents: seat price in euro cents.
//   - Price: formatted euro amount for display, e.g. "150.00".
type seatItem struct {
	ID         string `json:"id"`
	Section    string `json:"section"`
	PriceCents uint64 `json:"price_cents"`
	Price      string `json:"price"`
}

// orderPayload is the JSON shape of the running order totals.
//
// Fields:
//   - SubtotalCents / ServiceFeeCents / TotalCents: exact amounts in cents.
//   - Subtotal / ServiceFee / Total: formatted euro amounts for display.
type orderPayload struct {
	SubtotalCents   uint64 `json:"subtotal_cents"`
	ServiceFeeCents uint64 `json:"service_fee_cents"`
	TotalCents      uint64 `json:"total_cents"`
	Subtotal        string `json:"subtotal"`
	ServiceFee      string `json:"service_fee"`
	Total           string `json:"total"`
}

// newOrderPayload converts order totals into their response shape,
// attaching formatted euro strings alongside the raw cent amounts.
func newOrderPayload(o cart.Order) orderPayload {
	return orderPayload{
		SubtotalCents:   o.SubtotalCents,
		ServiceFeeCents: o.ServiceFeeCents,
		TotalCents:      o.TotalCents,
		Subtotal:        cart.FormatEuros(o.SubtotalCents),
		ServiceFee:      cart.FormatEuros(o.ServiceFeeCents),
		Total:           cart.FormatEuros(o.TotalCents),
	}
}

// newSeatItems converts selected seats into their response shape.
func newSeatItems(seats []cart.SelectedSeat) []seatItem {
	items := make([]seatItem, 0, len(seats))
	for _, s := range seats {
		items = append(items, seatItem{
			ID:         s.QualifiedID,
			Section:    s.Section,
			PriceCents: uint64(s.PriceCents),
			Price:      cart.FormatEuros(uint64(s.PriceCents)),
		})
	}
	return items
}

// cartResponse builds the full cart payload returned by every cart
// mutation and by GET /v1/cart, so clients always see the same shape.
func cartResponse(ct *cart.Cart) echo.Map {
	return echo.Map{
		"show_id": ct.ShowID(),
		"seats":   newSeatItems(ct.SelectedSeats()),
		"order":   newOrderPayload(ct.Order()),
	}
}
