// Package checkout turns a cart snapshot into a booking confirmation.
// Payment details are presentation-only pass-through: nothing is
// charged, validated against a gateway, or stored.  The confirmation
// record exists so the client can render a success screen and so the
// booking.confirmed event carries a stable reference.
package checkout

import (
	"fmt"
	"time"

	"github.com/opernhaus/ticket-booking/internal/cart"
)

// refPrefix identifies the venue on printed booking references.
const refPrefix = "VSO"

// Buyer carries the customer details collected by the checkout form.
// Only the name flows into the confirmation; contact fields are echoed
// back to the client and card fields never leave the handler.
type Buyer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Confirmation is the record produced by a completed checkout.  It is
// purely presentational: it is returned to the client and published as
// an event, never persisted, and it does not mark seats as reserved in
// the chart data.
//
// Fields:
//  BookingRef   – venue-prefixed reference shown to the customer.
//  CustomerName – buyer's full name as entered on the form.
//  ShowID       – show the booking is for.
//  Seats        – the snapshot's selection, in sidebar order.
//  Order        – the snapshot's price breakdown.
//  ConfirmedAt  – when the confirmation was produced (UTC).
type Confirmation struct {
	BookingRef   string
	CustomerName string
	ShowID       string
	Seats        []cart.SelectedSeat
	Order        cart.Order
	ConfirmedAt  time.Time
}

// Confirm builds the confirmation for a checkout snapshot.  The caller
// supplies the clock so confirmations are reproducible in tests.
func Confirm(snap cart.Snapshot, buyer Buyer, now time.Time) Confirmation {
	return Confirmation{
		BookingRef:   NewBookingRef(now),
		CustomerName: buyer.FirstName + " " + buyer.LastName,
		ShowID:       snap.ShowID,
		Seats:        snap.Seats,
		Order:        snap.Order,
		ConfirmedAt:  now,
	}
}

// NewBookingRef derives a reference like "VSO-58214907" from the last
// eight digits of the confirmation's millisecond timestamp.
func NewBookingRef(t time.Time) string {
	return fmt.Sprintf("%s-%08d", refPrefix, t.UnixMilli()%100000000)
}
