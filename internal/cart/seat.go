package cart

import "strings"

// Separator joins a section name and a section-local seat label into a
// qualified seat id.  Section names must not contain it; the catalog
// rejects charts that violate this at load time.
const Separator = "-"

// Status is the derived state of a seat for the current session.  It is
// never stored: selected wins over reserved membership checks because a
// reserved seat can never be selected in the first place.
type Status string

const (
	StatusAvailable Status = "available"
	StatusSelected  Status = "selected"
	StatusReserved  Status = "reserved"
)

// Qualify builds the chart-wide unique seat id from a section name and
// a section-local label, e.g. ("Parterre", "A12") -> "Parterre-A12".
func Qualify(sectionName, localLabel string) string {
	return sectionName + Separator + localLabel
}

// Unqualify splits a qualified seat id back into its section name and
// local label.  The split happens on the first separator occurrence so
// local labels may themselves contain the separator ("Loge Links" +
// "Box3-Seat2" round-trips).  ok is false when the id has no separator
// or an empty part.
func Unqualify(qualifiedID string) (sectionName, localLabel string, ok bool) {
	i := strings.Index(qualifiedID, Separator)
	if i <= 0 || i == len(qualifiedID)-1 {
		return "", "", false
	}
	return qualifiedID[:i], qualifiedID[i+1:], true
}

// SelectedSeat is one entry in the booking cart.  Entries are unique by
// qualified id; insertion order defines the sidebar display order.
//
// Fields:
//  QualifiedID – section name + "-" + local label, unique per chart.
//  Section     – display name of the section the seat belongs to.
//  PriceCents  – the section's per-seat price in euro cents.
type SelectedSeat struct {
	QualifiedID string `json:"id"`
	Section     string `json:"section"`
	PriceCents  uint32 `json:"price_cents"`
}
