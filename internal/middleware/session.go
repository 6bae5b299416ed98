package middleware // middleware provides reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/opernhaus/ticket-booking/internal/utils"
)

// SessionAuth returns an Echo middleware that validates a Bearer
// session token and injects the session id and show id claims into the
// request context under "session_id" and "show_id".  Cart and checkout
// handlers read those keys to locate the caller's cart.  The provided
// secret must match the one used when issuing tokens.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseSessionToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session token"})
			}
			c.Set("session_id", claims.SessionID)
			c.Set("show_id", claims.ShowID)
			return next(c)
		}
	}
}

// OptionalSession extracts session claims when a valid Bearer token is
// present and silently proceeds without them otherwise.  The public
// seat map uses it to overlay the caller's selection while remaining
// reachable for guests without a session.
func OptionalSession(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				raw := strings.TrimPrefix(auth, "Bearer ")
				if claims, err := utils.ParseSessionToken(secret, raw); err == nil {
					c.Set("session_id", claims.SessionID)
					c.Set("show_id", claims.ShowID)
				}
			}
			return next(c)
		}
	}
}
