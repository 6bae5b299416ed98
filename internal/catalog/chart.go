package catalog

import "strconv"

// RowBlock declares one row of seats within a section laid out as
// rows.  Local seat labels are formed as row letter + seat number,
// counting from 1 (row "A" with 12 seats yields A1 … A12).
type RowBlock struct {
	Row   string `json:"row"`   // row letter, e.g. "A"
	Seats int    `json:"seats"` // number of seats in the row
}

// BoxBlock declares one box within a section laid out as boxes.
// Local seat labels are formed as "Box" + box label + "-Seat" + seat
// number, counting from 1 (box "3" with 4 seats yields Box3-Seat1 …
// Box3-Seat4).
type BoxBlock struct {
	Box   string `json:"box"`   // box label, e.g. "3"
	Seats int    `json:"seats"` // number of seats in the box
}

// Section is a named, uniformly priced sub-area of a seating chart.
// Exactly one of Rows or Boxes is populated.  The reserved set is
// fixed at data-authoring time and never updated by bookings placed
// through this system.
//
// Fields:
//  ID         – stable identifier used by clients when toggling seats.
//  Name       – display name; also the prefix of qualified seat ids,
//               so it must not contain the "-" separator.
//  PriceCents – price per seat in euro cents, uniform across the section.
//  Rows       – row layout (nil when Boxes is set).
//  Boxes      – box layout (nil when Rows is set).
type Section struct {
	ID         string
	Name       string
	PriceCents uint32
	Rows       []RowBlock
	Boxes      []BoxBlock

	reserved map[string]struct{} // local labels pre-marked reserved
	labels   map[string]struct{} // every valid local label in the layout
	ordered  []string            // labels in declaration order
}

// SeatLabels returns every local seat label declared by the section's
// layout, in rendering order.
func (s *Section) SeatLabels() []string {
	out := make([]string, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// HasSeat reports whether the local label names a seat that exists in
// the section's declared layout.
func (s *Section) HasSeat(label string) bool {
	_, ok := s.labels[label]
	return ok
}

// IsReserved reports whether the local label is pre-marked reserved.
// Reserved labels are input data; selection attempts on them are
// refused by the cart.
func (s *Section) IsReserved(label string) bool {
	_, ok := s.reserved[label]
	return ok
}

// RowSeatLabel builds the local label of the n-th seat in a row,
// e.g. RowSeatLabel("A", 12) == "A12".
func RowSeatLabel(row string, n int) string {
	return row + strconv.Itoa(n)
}

// BoxSeatLabel builds the local label of the n-th seat in a box,
// e.g. BoxSeatLabel("3", 2) == "Box3-Seat2".
func BoxSeatLabel(box string, n int) string {
	return "Box" + box + "-Seat" + strconv.Itoa(n)
}

// buildLabels enumerates the layout into the label set the same way
// the seat map renders it: rows produce "A1"…"An", boxes produce
// "Box3-Seat1"…"Box3-Seatn".
func (s *Section) buildLabels() {
	s.labels = make(map[string]struct{})
	for _, r := range s.Rows {
		for i := 1; i <= r.Seats; i++ {
			label := RowSeatLabel(r.Row, i)
			s.labels[label] = struct{}{}
			s.ordered = append(s.ordered, label)
		}
	}
	for _, b := range s.Boxes {
		for i := 1; i <= b.Seats; i++ {
			label := BoxSeatLabel(b.Box, i)
			s.labels[label] = struct{}{}
			s.ordered = append(s.ordered, label)
		}
	}
}

// SeatingChart is the per-show static seating layout: an ordered list
// of sections with index lookups by id and by display name.
type SeatingChart struct {
	ShowID   string
	Sections []Section

	byID   map[string]*Section
	byName map[string]*Section
}

// SectionByID returns the section with the given identifier, or nil.
func (c *SeatingChart) SectionByID(id string) *Section {
	return c.byID[id]
}

// SectionByName returns the section with the given display name, or nil.
// Qualified seat ids embed the section name, so this is the lookup used
// when resolving a qualified id back to its section.
func (c *SeatingChart) SectionByName(name string) *Section {
	return c.byName[name]
}
