package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opernhaus/ticket-booking/internal/cart"
	"github.com/opernhaus/ticket-booking/internal/catalog"
	"github.com/opernhaus/ticket-booking/internal/config"
	"github.com/opernhaus/ticket-booking/internal/handler"
	"github.com/opernhaus/ticket-booking/internal/middleware"
	"github.com/opernhaus/ticket-booking/internal/router"
)

const testSecret = "test-secret"

// newTestServer wires the real catalog, store, handlers and routes the
// same way main does, with the Redis-backed middleware degraded to
// pass-through by the nil client.
func newTestServer(t *testing.T) (*echo.Echo, *cart.Store) {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	carts := cart.NewStore(30 * time.Minute)

	cacheMW := middleware.NewRedisCache(config.CacheConfig{}, nil)
	limitMW := middleware.NewTokenBucket(config.RateLimitConfig{}, nil)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPublic(e, handler.NewPublicHandler(cat, carts), testSecret, limitMW, cacheMW)
	router.RegisterBooking(e,
		handler.NewCartHandler(cat, carts, testSecret, 30*time.Minute),
		handler.NewCheckoutHandler(cat, carts),
		testSecret, limitMW)
	return e, carts
}

func doJSON(e *echo.Echo, method, target, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		bs, _ := json.Marshal(body)
		reader = bytes.NewReader(bs)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// openSession opens a booking session for a show and returns the token.
func openSession(t *testing.T, e *echo.Echo, showID string) string {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/v1/shows/"+showID+"/session", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	token, _ := body["session_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	e, _ := newTestServer(t)
	rec := doJSON(e, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestListShows(t *testing.T) {
	e, _ := newTestServer(t)
	rec := doJSON(e, http.MethodGet, "/v1/shows", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	items, ok := body["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 3)

	first, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "zauberfloete", first["id"])
	assert.Equal(t, "Die Zauberflöte", first["title"])
	// Listings omit the long description.
	assert.NotContains(t, first, "description")
}

func TestGetShow(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/v1/shows/la-traviata", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	item, ok := body["item"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "La Traviata", item["title"])
	assert.NotEmpty(t, item["description"])

	rec = doJSON(e, http.MethodGet, "/v1/shows/tosca", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "show not found", decodeBody(t, rec)["error"])
}

func TestSeatMapStatuses(t *testing.T) {
	e, _ := newTestServer(t)
	token := openSession(t, e, "zauberfloete")

	rec := doJSON(e, http.MethodPost, "/v1/cart/toggle", token,
		map[string]string{"section": "parterre", "seat": "A1"})
	require.Equal(t, http.StatusOK, rec.Code)

	// Without a token the seat reads available; reserved stays reserved.
	statuses := seatMapStatuses(t, e, "zauberfloete", "")
	assert.Equal(t, "available", statuses["parterre"]["A1"])
	assert.Equal(t, "reserved", statuses["parterre"]["A3"])

	// With the session token the caller's own selection is overlaid.
	statuses = seatMapStatuses(t, e, "zauberfloete", token)
	assert.Equal(t, "selected", statuses["parterre"]["A1"])
	assert.Equal(t, "reserved", statuses["parterre"]["A3"])
	assert.Equal(t, "available", statuses["parterre"]["A2"])

	// A session for one show never leaks into another show's map: A1 is
	// selected in the zauberfloete cart but reserved in la-traviata's
	// own chart data, and that static status wins.
	statuses = seatMapStatuses(t, e, "la-traviata", token)
	assert.Equal(t, "reserved", statuses["parterre"]["A1"])
	assert.Equal(t, "available", statuses["parterre"]["A3"])
}

// seatMapStatuses fetches a seat map and flattens it into
// sectionID -> label -> status for assertions.
func seatMapStatuses(t *testing.T, e *echo.Echo, showID, token string) map[string]map[string]string {
	t.Helper()
	rec := doJSON(e, http.MethodGet, "/v1/shows/"+showID+"/seatmap", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Sections []struct {
			ID   string `json:"id"`
			Rows []struct {
				Seats []struct {
					Label  string `json:"label"`
					Status string `json:"status"`
				} `json:"seats"`
			} `json:"rows"`
			Boxes []struct {
				Seats []struct {
					Label  string `json:"label"`
					Status string `json:"status"`
				} `json:"seats"`
			} `json:"boxes"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	out := make(map[string]map[string]string)
	for _, sec := range body.Sections {
		m := make(map[string]string)
		for _, row := range sec.Rows {
			for _, seat := range row.Seats {
				m[seat.Label] = seat.Status
			}
		}
		for _, box := range sec.Boxes {
			for _, seat := range box.Seats {
				m[seat.Label] = seat.Status
			}
		}
		out[sec.ID] = m
	}
	return out
}

func TestCartRequiresSession(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/v1/cart", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing bearer token", decodeBody(t, rec)["error"])

	rec = doJSON(e, http.MethodGet, "/v1/cart", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid session token", decodeBody(t, rec)["error"])
}

func TestToggleSeatValidation(t *testing.T) {
	e, _ := newTestServer(t)
	token := openSession(t, e, "zauberfloete")

	rec := doJSON(e, http.MethodPost, "/v1/cart/toggle", token,
		map[string]string{"section": "orchestra", "seat": "A1"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPost, "/v1/cart/toggle", token,
		map[string]string{"section": "parterre", "seat": "Z99"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPost, "/v1/cart/toggle", token,
		map[string]string{"section": "parterre"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Reserved seats are a silent no-op, not an error.
	rec = doJSON(e, http.MethodPost, "/v1/cart/toggle", token,
		map[string]string{"section": "parterre", "seat": "A3"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Empty(t, body["seats"])
}

func TestSessionForUnknownShow(t *testing.T) {
	e, _ := newTestServer(t)
	rec := doJSON(e, http.MethodPost, "/v1/shows/tosca/session", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckoutEmptyCart(t *testing.T) {
	e, _ := newTestServer(t)
	token := openSession(t, e, "zauberfloete")

	rec := doJSON(e, http.MethodPost, "/v1/checkout", token, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "cart is empty", decodeBody(t, rec)["error"])
}

func TestConfirmRequiresBuyerDetails(t *testing.T) {
	e, _ := newTestServer(t)
	token := openSession(t, e, "zauberfloete")

	rec := doJSON(e, http.MethodPost, "/v1/cart/toggle", token,
		map[string]string{"section": "parterre", "seat": "A1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/v1/checkout/confirm", token,
		map[string]string{"first_name": "Anna"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingFlow(t *testing.T) {
	e, carts := newTestServer(t)
	token := openSession(t, e, "zauberfloete")
	require.Equal(t, 1, carts.Len())

	// Select a Parterre seat (€150) and a Loge box seat (€200).
	rec := doJSON(e, http.MethodPost, "/v1/cart/toggle", token,
		map[string]string{"section": "parterre", "seat": "A1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/v1/cart/toggle", token,
		map[string]string{"section": "loge-left", "seat": "Box2-Seat1"})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	order, ok := body["order"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(35000), order["subtotal_cents"])
	assert.Equal(t, float64(1750), order["service_fee_cents"])
	assert.Equal(t, float64(36750), order["total_cents"])
	assert.Equal(t, "367.50", order["total"])

	// Remove the box seat by its qualified id from the sidebar.
	rec = doJSON(e, http.MethodDelete,
		"/v1/cart/seats/"+url.PathEscape("Loge Links-Box2-Seat1"), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	seats, ok := body["seats"].([]any)
	require.True(t, ok)
	require.Len(t, seats, 1)

	// Review screen: the snapshot carries the remaining seat.
	rec = doJSON(e, http.MethodPost, "/v1/checkout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	order = body["order"].(map[string]any)
	assert.Equal(t, float64(15750), order["total_cents"])

	// Confirm the booking.  Card fields are accepted and ignored.
	rec = doJSON(e, http.MethodPost, "/v1/checkout/confirm", token, map[string]string{
		"first_name": "Anna",
		"last_name":  "Gruber",
		"email":      "anna@example.at",
		"phone":      "+43 1 514440",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body = decodeBody(t, rec)
	item, ok := body["item"].(map[string]any)
	require.True(t, ok)
	ref, _ := item["booking_ref"].(string)
	assert.True(t, strings.HasPrefix(ref, "VSO-"))
	assert.Len(t, ref, len("VSO-")+8)
	assert.Equal(t, "Anna Gruber", item["customer_name"])
	assert.Equal(t, "zauberfloete", item["show_id"])

	// The session is single-use: the cart is gone after confirmation.
	require.Equal(t, 0, carts.Len())
	rec = doJSON(e, http.MethodGet, "/v1/cart", token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "session expired", decodeBody(t, rec)["error"])
}
