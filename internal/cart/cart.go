// Package cart implements the booking cart: the per-session owner of
// all non-presentational state while a visitor browses one show's
// seating chart.  The cart tracks which seats are selected, derives
// per-seat status for the seat map, and computes the order totals
// consumed by the sidebar and the checkout flow.  It performs no I/O;
// the seating chart is read-only input and is never mutated.
package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/opernhaus/ticket-booking/internal/catalog"
)

// ErrEmptyCart is returned by Checkout when no seats are selected.
var ErrEmptyCart = errors.New("cart is empty")

// InvalidSeatError reports a toggle request naming a section or seat
// label that does not exist in the active chart's declared layout.
// Reserved seats are not invalid; toggling them is a defined no-op.
type InvalidSeatError struct {
	Section string // section id or name as given by the caller
	Label   string // local seat label as given by the caller
}

func (e *InvalidSeatError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("invalid seat: unknown section %q", e.Section)
	}
	return fmt.Sprintf("invalid seat: no seat %q in section %q", e.Label, e.Section)
}

// Cart owns the selected-seat collection for one show-viewing session.
// A cart is constructed against a specific show's seating chart and
// discarded when the session ends; the "currently viewed show" is an
// explicit constructor parameter, not ambient state.
//
// All methods are safe for concurrent use, though a session has a
// single logical actor driving it.
type Cart struct {
	mu    sync.Mutex
	chart *catalog.SeatingChart
	seats []SelectedSeat
}

// New creates an empty cart bound to the given seating chart.
func New(chart *catalog.SeatingChart) *Cart {
	return &Cart{chart: chart}
}

// ShowID returns the id of the show this cart was constructed for.
func (c *Cart) ShowID() string {
	return c.chart.ShowID
}

// Chart returns the read-only seating chart the cart is bound to.
func (c *Cart) Chart() *catalog.SeatingChart {
	return c.chart
}

// ToggleSeat selects or deselects the seat identified by a section id
// and a section-local label.  Labels outside the section's declared
// layout fail with an InvalidSeatError.  Toggling a reserved seat is a
// silent no-op, mirroring a disabled control.  Otherwise a selected
// seat is deselected and an unselected seat is appended, so two
// consecutive toggles of the same seat restore the prior state.
func (c *Cart) ToggleSeat(sectionID, localLabel string) error {
	sec := c.chart.SectionByID(sectionID)
	if sec == nil {
		return &InvalidSeatError{Section: sectionID}
	}
	if !sec.HasSeat(localLabel) {
		return &InvalidSeatError{Section: sectionID, Label: localLabel}
	}
	if sec.IsReserved(localLabel) {
		return nil
	}
	qid := Qualify(sec.Name, localLabel)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.removeLocked(qid) {
		return nil
	}
	c.seats = append(c.seats, SelectedSeat{
		QualifiedID: qid,
		Section:     sec.Name,
		PriceCents:  sec.PriceCents,
	})
	return nil
}

// RemoveSeat deletes the entry with the given qualified id if present.
// It is a no-op when the id is absent, so the sidebar can deselect
// without section context and without error handling.
func (c *Cart) RemoveSeat(qualifiedID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(qualifiedID)
}

// removeLocked removes the entry with the given id, reporting whether
// an entry was removed.  Callers must hold c.mu.
func (c *Cart) removeLocked(qualifiedID string) bool {
	for i, s := range c.seats {
		if s.QualifiedID == qualifiedID {
			c.seats = append(c.seats[:i], c.seats[i+1:]...)
			return true
		}
	}
	return false
}

// SeatStatus derives the status of one seat for the seat map renderer.
// Selection is checked first: a seat can never be both reserved and
// selected because ToggleSeat refuses reserved seats.
func (c *Cart) SeatStatus(sec *catalog.Section, localLabel string) Status {
	qid := Qualify(sec.Name, localLabel)
	c.mu.Lock()
	selected := c.containsLocked(qid)
	c.mu.Unlock()
	if selected {
		return StatusSelected
	}
	if sec.IsReserved(localLabel) {
		return StatusReserved
	}
	return StatusAvailable
}

func (c *Cart) containsLocked(qualifiedID string) bool {
	for _, s := range c.seats {
		if s.QualifiedID == qualifiedID {
			return true
		}
	}
	return false
}

// SelectedSeats returns a copy of the selection in insertion order.
func (c *Cart) SelectedSeats() []SelectedSeat {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]SelectedSeat, len(c.seats))
	copy(out, c.seats)
	return out
}

// Order computes the price breakdown for the current selection.  The
// result is derived fresh on every call; calling it twice without an
// intervening mutation yields identical values.
func (c *Cart) Order() Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return computeOrder(c.seats)
}

// Snapshot is the immutable handoff from the cart to the checkout
// collaborator: the show identity, the ordered selection, and the
// order computed at snapshot time.  Later cart mutations do not affect
// a snapshot.
type Snapshot struct {
	ShowID string
	Seats  []SelectedSeat
	Order  Order
}

// Checkout produces a snapshot of the current state for the checkout
// flow.  It returns ErrEmptyCart when nothing is selected; the cart
// itself performs no payment handling of any kind.
func (c *Cart) Checkout() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.seats) == 0 {
		return Snapshot{}, ErrEmptyCart
	}
	seats := make([]SelectedSeat, len(c.seats))
	copy(seats, c.seats)
	return Snapshot{
		ShowID: c.chart.ShowID,
		Seats:  seats,
		Order:  computeOrder(seats),
	}, nil
}
