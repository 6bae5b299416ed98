package handler // declare the package name; contains HTTP handlers

import (
	"context"  // timeout context for the fire-and-forget publish
	"errors"   // for errors.Is on the empty-cart sentinel
	"net/http" // HTTP status codes
	"time"     // timestamps and publish timeout

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/opernhaus/ticket-booking/internal/cart"     // cart holds the selection and order logic
	"github.com/opernhaus/ticket-booking/internal/catalog"  // catalog holds the embedded shows and seating charts
	"github.com/opernhaus/ticket-booking/internal/checkout" // checkout turns snapshots into confirmations
	"github.com/opernhaus/ticket-booking/internal/queue"    // queue defines the booking.confirmed payload
	queue_publisher "github.com/opernhaus/ticket-booking/internal/service"
)

// publishTimeout bounds the broker round-trip so a slow or absent
// broker cannot pile up goroutines indefinitely.
const publishTimeout = 5 * time.Second

// CheckoutHandler serves the two-step checkout: a snapshot of the cart
// for the review screen, then a confirmation that produces the booking
// reference, publishes the booking.confirmed event and closes the
// session.  Nothing is persisted and no payment is processed; card
// fields are accepted and discarded.
//
// Fields:
//   - Catalog: show lookups for enriching the published event.
//   - Carts: session store; the session is deleted after confirmation.
type CheckoutHandler struct {
	Catalog *catalog.Catalog
	Carts   *cart.Store
}

// NewCheckoutHandler constructs a CheckoutHandler.  Both dependencies
// must be non-nil.
func NewCheckoutHandler(cat *catalog.Catalog, carts *cart.Store) *CheckoutHandler {
	if cat == nil || carts == nil {
		panic("nil dependency passed to NewCheckoutHandler")
	}
	return &CheckoutHandler{Catalog: cat, Carts: carts}
}

// Snapshot handles POST /v1/checkout.  It freezes the current cart into
// an immutable snapshot for the review screen: later cart mutations do
// not alter a snapshot already handed out.  An empty cart cannot enter
// checkout and yields 409.
func (h *CheckoutHandler) Snapshot(c echo.Context) error {
	ct, ok, err := h.sessionCart(c)
	if !ok {
		return err
	}
	snap, err := ct.Checkout()
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "cart is empty"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to snapshot cart"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"show_id": snap.ShowID,
		"seats":   newSeatItems(snap.Seats),
		"order":   newOrderPayload(snap.Order),
	})
}

// Confirm handles POST /v1/checkout/confirm.  The request body carries
// the buyer details from the checkout form; first name, last name and
// email are required, phone and card fields are optional and the card
// fields are never read.  On success the session is deleted, a
// booking.confirmed event is published best-effort, and the response is
// 201 with the confirmation payload.
func (h *CheckoutHandler) Confirm(c echo.Context) error {
	ct, ok, err := h.sessionCart(c)
	if !ok {
		return err
	}
	var body struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.FirstName == "" || body.LastName == "" || body.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name, last_name and email are required"})
	}

	snap, err := ct.Checkout()
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "cart is empty"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to snapshot cart"})
	}

	buyer := checkout.Buyer{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Phone:     body.Phone,
	}
	conf := checkout.Confirm(snap, buyer, time.Now().UTC())

	// Publish best-effort off the request path; the publisher logs its
	// own failures and the confirmation succeeds regardless.
	event := h.buildEvent(conf)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		_ = queue_publisher.PublishBookingConfirmed(ctx, event)
	}()

	// The session is single-use: a confirmed booking closes it.
	if id, okID := c.Get("session_id").(string); okID {
		h.Carts.Delete(id)
	}

	return c.JSON(http.StatusCreated, echo.Map{"item": echo.Map{
		"booking_ref":   conf.BookingRef,
		"customer_name": conf.CustomerName,
		"email":         body.Email,
		"show_id":       conf.ShowID,
		"seats":         newSeatItems(conf.Seats),
		"order":         newOrderPayload(conf.Order),
		"confirmed_at":  conf.ConfirmedAt.Format(time.RFC3339),
	}})
}

// buildEvent flattens a confirmation into the broker payload, enriching
// it with show metadata when the show is still present in the catalog.
func (h *CheckoutHandler) buildEvent(conf checkout.Confirmation) queue.BookingConfirmedEvent {
	seats := make([]string, 0, len(conf.Seats))
	for _, s := range conf.Seats {
		seats = append(seats, s.QualifiedID)
	}
	event := queue.BookingConfirmedEvent{
		BookingRef:      conf.BookingRef,
		CustomerName:    conf.CustomerName,
		ShowID:          conf.ShowID,
		Seats:           seats,
		SubtotalCents:   conf.Order.SubtotalCents,
		ServiceFeeCents: conf.Order.ServiceFeeCents,
		TotalCents:      conf.Order.TotalCents,
		ConfirmedAt:     conf.ConfirmedAt.Format(time.RFC3339),
	}
	if show, err := h.Catalog.LookupShow(conf.ShowID); err == nil {
		event.ShowTitle = show.Title
		event.ShowDate = show.Date
		event.ShowTime = show.Time
	}
	return event
}

// sessionCart resolves the caller's cart the same way the cart handler
// does, writing the 401 response itself when the session is gone.
func (h *CheckoutHandler) sessionCart(c echo.Context) (*cart.Cart, bool, error) {
	id, _ := c.Get("session_id").(string)
	if id == "" {
		return nil, false, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ct, ok := h.Carts.Get(id)
	if !ok {
		return nil, false, c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
	}
	return ct, true, nil
}
