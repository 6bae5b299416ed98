package handler // declare the package name; contains HTTP handlers

import (
	"errors"   // errors is used to match sentinel lookup errors
	"net/http" // net/http provides status codes and response helpers

	"github.com/labstack/echo/v4" // echo is the web framework used for this project

	"github.com/opernhaus/ticket-booking/internal/cart"    // cart holds the selection and order logic
	"github.com/opernhaus/ticket-booking/internal/catalog" // catalog holds the embedded shows and seating charts
)

// PublicHandler serves the unauthenticated browsing endpoints: the show
// listing, show details and the seat map.  The seat map optionally
// overlays the caller's own selection when a valid session token is
// presented, which is why it also needs access to the session store.
//
// Fields:
//   - Catalog: embedded show and seating chart data loaded at startup.
//   - Carts: session store used to overlay "selected" onto the seat map.
type PublicHandler struct {
	Catalog *catalog.Catalog
	Carts   *cart.Store
}

// NewPublicHandler wires the browsing endpoints to the catalog and the
// session store.
func NewPublicHandler(cat *catalog.Catalog, carts *cart.Store) *PublicHandler {
	return &PublicHandler{Catalog: cat, Carts: carts}
}

// showSummary is the JSON shape of one entry in the show listing.
// It omits the long description so the listing stays compact.
type showSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Composer string `json:"composer"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration string `json:"duration"`
	Language string `json:"language"`
	Image    string `json:"image"`
}

// seatView is one seat on the seat map: its local label plus its
// current status ("available", "selected" or "reserved").
type seatView struct {
	Label  string `json:"label"`
	Status string `json:"status"`
}

// rowView groups the seats of one lettered row.
type rowView struct {
	Row   string     `json:"row"`
	Seats []seatView `json:"seats"`
}

// boxView groups the seats of one numbered box.
type boxView struct {
	Box   string     `json:"box"`
	Seats []seatView `json:"seats"`
}

// sectionView is one section of the seat map with its pricing and
// either rows or boxes, mirroring the layout shape of the chart data.
type sectionView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PriceCents uint32    `json:"price_cents"`
	Price      string    `json:"price"`
	Rows       []rowView `json:"rows,omitempty"`
	Boxes      []boxView `json:"boxes,omitempty"`
}

// ListShows handles GET /v1/shows.  It returns the catalog as a list of
// show summaries; the catalog is static, so this never fails.
func (h *PublicHandler) ListShows(c echo.Context) error {
	shows := h.Catalog.Shows()
	items := make([]showSummary, 0, len(shows))
	for _, s := range shows {
		items = append(items, showSummary{
			ID:       s.ID,
			Title:    s.Title,
			Composer: s.Composer,
			Date:     s.Date,
			Time:     s.Time,
			Duration: s.Duration,
			Language: s.Language,
			Image:    s.Image,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetShow handles GET /v1/shows/:id and returns the full show record,
// including the description, or 404 when the id is unknown.
func (h *PublicHandler) GetShow(c echo.Context) error {
	show, err := h.Catalog.LookupShow(c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrShowNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load show"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": show})
}

// GetSeatMap handles GET /v1/shows/:id/seatmap.  Every seat is reported
// with a status; when the caller presents a valid session token for the
// same show, the seats held in that session's cart come back as
// "selected" instead of "available".
func (h *PublicHandler) GetSeatMap(c echo.Context) error {
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

	ct := h.sessionCart(c, showID)

	sections := make([]sectionView, 0, len(chart.Sections))
	for i := range chart.Sections {
		sec := &chart.Sections[i]
		view := sectionView{
			ID:         sec.ID,
			Name:       sec.Name,
			PriceCents: sec.PriceCents,
			Price:      cart.FormatEuros(uint64(sec.PriceCents)),
		}
		for _, row := range sec.Rows {
			rv := rowView{Row: row.Row, Seats: make([]seatView, 0, row.Seats)}
			for n := 1; n <= row.Seats; n++ {
				label := catalog.RowSeatLabel(row.Row, n)
				rv.Seats = append(rv.Seats, seatView{Label: label, Status: h.seatStatus(ct, sec, label)})
			}
			view.Rows = append(view.Rows, rv)
		}
		for _, box := range sec.Boxes {
			bv := boxView{Box: box.Box, Seats: make([]seatView, 0, box.Seats)}
			for n := 1; n <= box.Seats; n++ {
				label := catalog.BoxSeatLabel(box.Box, n)
				bv.Seats = append(bv.Seats, seatView{Label: label, Status: h.seatStatus(ct, sec, label)})
			}
			view.Boxes = append(view.Boxes, bv)
		}
		sections = append(sections, view)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"show_id":  showID,
		"sections": sections,
	})
}

// sessionCart returns the caller's cart when the optional session
// middleware verified a token for this show, or nil otherwise.
func (h *PublicHandler) sessionCart(c echo.Context, showID string) *cart.Cart {
	id, _ := c.Get("session_id").(string)
	if id == "" {
		return nil
	}
	ct, ok := h.Carts.Get(id)
	if !ok || ct.ShowID() != showID {
		return nil
	}
	return ct
}

// seatStatus resolves one seat's status, consulting the cart when the
// caller has one for this show and falling back to the static chart.
func (h *PublicHandler) seatStatus(ct *cart.Cart, sec *catalog.Section, label string) string {
	if ct != nil {
		return string(ct.SeatStatus(sec, label))
	}
	if sec.IsReserved(label) {
		return string(cart.StatusReserved)
	}
	return string(cart.StatusAvailable)
}
