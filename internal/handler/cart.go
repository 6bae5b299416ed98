package handler // declare the package name; contains HTTP handlers

import (
	"errors"   // for errors.As on seat validation failures
	"net/http" // HTTP status codes
	"net/url"  // decoding qualified seat ids from path parameters
	"time"     // session token lifetime

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/opernhaus/ticket-booking/internal/cart"    // cart holds the selection and order logic
	"github.com/opernhaus/ticket-booking/internal/catalog" // catalog holds the embedded shows and seating charts
	"github.com/opernhaus/ticket-booking/internal/utils"   // utils issues and parses session tokens
)

// CartHandler groups the dependencies required to open booking sessions
// and mutate the seat selection inside them.  All cart methods assume
// the session middleware has already verified the bearer token and
// placed the session id on the request context; an expired session that
// passes token verification but is gone from the store yields 401.
//
// Fields:
//   - Catalog: embedded show and seating chart data loaded at startup.
//   - Carts: in-memory session store keyed by session id.
//   - Secret: HMAC secret used to sign session tokens.
//   - TTL: session token lifetime; the store uses the same value.
type CartHandler struct {
	Catalog *catalog.Catalog
	Carts   *cart.Store
	Secret  string
	TTL     time.Duration
}

// NewCartHandler constructs a CartHandler.  All dependencies must be
// non-nil; the secret must match the one given to the session middleware.
func NewCartHandler(cat *catalog.Catalog, carts *cart.Store, secret string, ttl time.Duration) *CartHandler {
	if cat == nil || carts == nil {
		panic("nil dependency passed to NewCartHandler")
	}
	return &CartHandler{Catalog: cat, Carts: carts, Secret: secret, TTL: ttl}
}

// CreateSession handles POST /v1/shows/:id/session.  It opens a fresh
// booking session for the show: an empty cart bound to the show's
// seating chart, addressed by a signed bearer token the client sends on
// every subsequent cart and checkout call.  Returns 201 with the token
// and its expiry, or 404 when the show or its chart is unknown.
func (h *CartHandler) CreateSession(c echo.Context) error {
	showID := c.Param("id")
	chart, err := h.Catalog.Chart(showID)
	if err != nil {
		if errors.Is(err, catalog.ErrShowNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		if errors.Is(err, catalog.ErrChartNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seating chart not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seating chart"})
	}

	sessionID := h.Carts.Create(cart.New(chart))
	token, err := utils.NewSessionToken(h.Secret, sessionID, showID, h.TTL)
	if err != nil {
		h.Carts.Delete(sessionID)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue session token"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"session_token": token.Token,
		"expires_at":    token.Exp,
	})
}

// ToggleSeat handles POST /v1/cart/toggle.  The request body names a
// section id and a local seat label; an available seat is added to the
// cart, an already selected one is removed, and a reserved seat leaves
// the cart unchanged.  The response is always the full cart payload so
// the client can re-render selection and totals in one step.
func (h *CartHandler) ToggleSeat(c echo.Context) error {
	ct, ok, err := h.sessionCart(c)
	if !ok {
		return err
	}
	var body struct {
		Section string `json:"section"`
		Seat    string `json:"seat"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Section == "" || body.Seat == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "section and seat are required"})
	}
	if err := ct.ToggleSeat(body.Section, body.Seat); err != nil {
		var invalid *cart.InvalidSeatError
		if errors.As(err, &invalid) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": invalid.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to toggle seat"})
	}
	return c.JSON(http.StatusOK, cartResponse(ct))
}

// RemoveSeat handles DELETE /v1/cart/seats/:id, where :id is the
// qualified seat id (URL-encoded, e.g. "Parterre-A12").  Removal is
// idempotent: deleting a seat that is not in the cart still returns the
// current cart payload.
func (h *CartHandler) RemoveSeat(c echo.Context) error {
	ct, ok, err := h.sessionCart(c)
	if !ok {
		return err
	}
	id := c.Param("id")
	if dec, err := url.PathUnescape(id); err == nil {
		id = dec
	}
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat id is required"})
	}
	ct.RemoveSeat(id)
	return c.JSON(http.StatusOK, cartResponse(ct))
}

// GetCart handles GET /v1/cart and returns the current selection and
// running totals for the caller's session.
func (h *CartHandler) GetCart(c echo.Context) error {
	ct, ok, err := h.sessionCart(c)
	if !ok {
		return err
	}
	return c.JSON(http.StatusOK, cartResponse(ct))
}

// sessionCart resolves the caller's cart from the session id placed on
// the context by the session middleware, writing a 401 response itself
// when the session is missing or has expired out of the store.  The
// second return value reports whether a cart was found; on false the
// caller must return the error unchanged.
func (h *CartHandler) sessionCart(c echo.Context) (*cart.Cart, bool, error) {
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
