// Package catalog provides read-only access to the show catalog and the
// per-show seating charts.  All data is static JSON embedded in the
// binary; there is no database and nothing in this package mutates
// after Load returns.  Charts are validated at load time so that the
// rest of the application can rely on their invariants: exactly one
// layout form per section, no "-" in section names (the qualified seat
// id separator), and reserved labels that actually exist in the layout.
package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

//go:embed data/shows.json data/seats/*.json
var dataFS embed.FS

// ErrShowNotFound indicates that no show with the requested id exists
// in the catalog.
var ErrShowNotFound = errors.New("show not found")

// ErrChartNotFound indicates that no seating chart is bundled for the
// requested show.
var ErrChartNotFound = errors.New("seating chart not found")

// Catalog holds the loaded shows and seating charts.  It is safe for
// concurrent use: all state is immutable after Load.
type Catalog struct {
	shows  []Show
	byID   map[string]int
	charts map[string]*SeatingChart
}

// jsonSection mirrors the authored JSON shape of a section.  Prices
// are authored in whole euros and converted to cents on load.
type jsonSection struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Price    uint32     `json:"price"`
	Rows     []RowBlock `json:"rows,omitempty"`
	Boxes    []BoxBlock `json:"boxes,omitempty"`
	Reserved []string   `json:"reserved"`
}

// jsonChart mirrors the authored JSON shape of a per-show chart file.
type jsonChart struct {
	ShowID   string        `json:"showId"`
	Sections []jsonSection `json:"sections"`
}

// Load parses and validates the embedded catalog data.  It returns an
// error describing the first violation found; a catalog that loads is
// guaranteed to satisfy every invariant documented on its types.
func Load() (*Catalog, error) {
	raw, err := dataFS.ReadFile("data/shows.json")
	if err != nil {
		return nil, fmt.Errorf("read shows: %w", err)
	}
	var shows []Show
	if err := json.Unmarshal(raw, &shows); err != nil {
		return nil, fmt.Errorf("parse shows: %w", err)
	}

	c := &Catalog{
		shows:  shows,
		byID:   make(map[string]int, len(shows)),
		charts: make(map[string]*SeatingChart, len(shows)),
	}
	for i, s := range shows {
		if s.ID == "" || s.Title == "" {
			return nil, fmt.Errorf("show %d: id and title are required", i)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate show id %q", s.ID)
		}
		c.byID[s.ID] = i
	}

	entries, err := dataFS.ReadDir("data/seats")
	if err != nil {
		return nil, fmt.Errorf("read charts: %w", err)
	}
	for _, e := range entries {
		raw, err := dataFS.ReadFile("data/seats/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read chart %s: %w", e.Name(), err)
		}
		var jc jsonChart
		if err := json.Unmarshal(raw, &jc); err != nil {
			return nil, fmt.Errorf("parse chart %s: %w", e.Name(), err)
		}
		chart, err := buildChart(jc)
		if err != nil {
			return nil, fmt.Errorf("chart %s: %w", e.Name(), err)
		}
		if _, ok := c.byID[chart.ShowID]; !ok {
			return nil, fmt.Errorf("chart %s: no show with id %q", e.Name(), chart.ShowID)
		}
		if _, dup := c.charts[chart.ShowID]; dup {
			return nil, fmt.Errorf("duplicate chart for show %q", chart.ShowID)
		}
		c.charts[chart.ShowID] = chart
	}
	return c, nil
}

// buildChart converts the authored JSON into a validated SeatingChart.
func buildChart(jc jsonChart) (*SeatingChart, error) {
	if jc.ShowID == "" {
		return nil, errors.New("missing showId")
	}
	chart := &SeatingChart{
		ShowID:   jc.ShowID,
		Sections: make([]Section, 0, len(jc.Sections)),
		byID:     make(map[string]*Section, len(jc.Sections)),
		byName:   make(map[string]*Section, len(jc.Sections)),
	}
	for _, js := range jc.Sections {
		sec, err := buildSection(js)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", js.ID, err)
		}
		if _, dup := chart.byID[sec.ID]; dup {
			return nil, fmt.Errorf("duplicate section id %q", sec.ID)
		}
		if _, dup := chart.byName[sec.Name]; dup {
			return nil, fmt.Errorf("duplicate section name %q", sec.Name)
		}
		chart.Sections = append(chart.Sections, sec)
	}
	// Index after the slice stops growing so the pointers stay valid.
	for i := range chart.Sections {
		sec := &chart.Sections[i]
		chart.byID[sec.ID] = sec
		chart.byName[sec.Name] = sec
	}
	return chart, nil
}

// buildSection validates one section and enumerates its seat labels.
func buildSection(js jsonSection) (Section, error) {
	if js.ID == "" || js.Name == "" {
		return Section{}, errors.New("id and name are required")
	}
	// Section names prefix qualified seat ids; a "-" in the name would
	// make the qualified id ambiguous to split.
	if strings.Contains(js.Name, "-") {
		return Section{}, fmt.Errorf("name %q contains the seat id separator", js.Name)
	}
	if js.Price == 0 {
		return Section{}, errors.New("price is required")
	}
	hasRows := len(js.Rows) > 0
	hasBoxes := len(js.Boxes) > 0
	if hasRows == hasBoxes {
		return Section{}, errors.New("exactly one of rows or boxes must be declared")
	}
	for _, r := range js.Rows {
		if r.Row == "" || r.Seats <= 0 {
			return Section{}, fmt.Errorf("row %q must declare a label and a positive seat count", r.Row)
		}
	}
	for _, b := range js.Boxes {
		if b.Box == "" || b.Seats <= 0 {
			return Section{}, fmt.Errorf("box %q must declare a label and a positive seat count", b.Box)
		}
	}
	sec := Section{
		ID:         js.ID,
		Name:       js.Name,
		PriceCents: js.Price * 100,
		Rows:       js.Rows,
		Boxes:      js.Boxes,
		reserved:   make(map[string]struct{}, len(js.Reserved)),
	}
	sec.buildLabels()
	for _, label := range js.Reserved {
		if !sec.HasSeat(label) {
			return Section{}, fmt.Errorf("reserved label %q does not exist in the layout", label)
		}
		sec.reserved[label] = struct{}{}
	}
	return sec, nil
}

// Shows returns all shows in authored order.
func (c *Catalog) Shows() []Show {
	out := make([]Show, len(c.shows))
	copy(out, c.shows)
	return out
}

// LookupShow returns the show with the given id.  It returns
// ErrShowNotFound when no such show exists.
func (c *Catalog) LookupShow(id string) (Show, error) {
	i, ok := c.byID[id]
	if !ok {
		return Show{}, ErrShowNotFound
	}
	return c.shows[i], nil
}

// Chart returns the seating chart for the given show.  It returns
// ErrChartNotFound when the show has no bundled chart.
func (c *Catalog) Chart(showID string) (*SeatingChart, error) {
	chart, ok := c.charts[showID]
	if !ok {
		return nil, ErrChartNotFound
	}
	return chart, nil
}
