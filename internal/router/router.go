package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/opernhaus/ticket-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/opernhaus/ticket-booking/internal/middleware" // import middleware for session tokens, caching and rate limiting
)

// RegisterRoutes registers routes that do not require a session on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated browse endpoints: the
// show listing, show details and the seat map.  The static listing and
// detail endpoints sit behind the Redis response cache; the seat map is
// never cached because its output varies per session, but it accepts an
// optional session token so the caller's own selection can be overlaid.
// All three share the rate limiter.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, sessionSecret string, limitMW, cacheMW echo.MiddlewareFunc) {
	// List all shows in the season programme.
	e.GET("/v1/shows", p.ListShows, limitMW, cacheMW)
	// Show details by show id.
	e.GET("/v1/shows/:id", p.GetShow, limitMW, cacheMW)
	// Seat map with per-seat status.  OptionalSession makes the caller's
	// selection visible without requiring a token.
	e.GET("/v1/shows/:id/seatmap", p.GetSeatMap, limitMW, middleware.OptionalSession(sessionSecret))
}

// RegisterBooking registers the session, cart and checkout endpoints.
// Opening a session is the only unauthenticated operation; everything
// else lives in a group guarded by the session middleware, which
// verifies the bearer token and places the session id on the context.
func RegisterBooking(e *echo.Echo, cartH *handler.CartHandler, checkoutH *handler.CheckoutHandler, sessionSecret string, limitMW echo.MiddlewareFunc) {
	// Open a booking session for a show; returns the bearer token used
	// by every route below.
	e.POST("/v1/shows/:id/session", cartH.CreateSession, limitMW)

	// All cart and checkout routes require a valid session token.
	g := e.Group("/v1", limitMW, middleware.SessionAuth(sessionSecret))
	// Toggle a seat in or out of the cart.
	g.POST("/cart/toggle", cartH.ToggleSeat)
	// Remove a specific seat by its qualified id.
	g.DELETE("/cart/seats/:id", cartH.RemoveSeat)
	// Inspect the current selection and totals.
	g.GET("/cart", cartH.GetCart)
	// Freeze the cart into a checkout snapshot for the review screen.
	g.POST("/checkout", checkoutH.Snapshot)
	// Confirm the booking: produces the reference, publishes the event
	// and closes the session.
	g.POST("/checkout/confirm", checkoutH.Confirm)
}
