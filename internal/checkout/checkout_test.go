package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opernhaus/ticket-booking/internal/cart"
)

func TestNewBookingRef(t *testing.T) {
	at := time.Date(2026, 10, 3, 19, 42, 7, 123e6, time.UTC)
	ref := NewBookingRef(at)

	assert.Regexp(t, `^VSO-\d{8}$`, ref)
	// The digits are the last eight of the millisecond timestamp.
	assert.Equal(t, ref, NewBookingRef(at))
	assert.NotEqual(t, ref, NewBookingRef(at.Add(time.Second)))
}

func TestConfirm(t *testing.T) {
	snap := cart.Snapshot{
		ShowID: "zauberfloete",
		Seats: []cart.SelectedSeat{
			{QualifiedID: "Parterre-A1", Section: "Parterre", PriceCents: 15000},
			{QualifiedID: "Galerie-B3", Section: "Galerie", PriceCents: 4500},
		},
		Order: cart.Order{SubtotalCents: 19500, ServiceFeeCents: 975, TotalCents: 20475},
	}
	buyer := Buyer{FirstName: "Anna", LastName: "Gruber", Email: "anna@example.at"}
	at := time.Date(2026, 10, 3, 19, 42, 7, 0, time.UTC)

	conf := Confirm(snap, buyer, at)

	assert.Equal(t, NewBookingRef(at), conf.BookingRef)
	assert.Equal(t, "Anna Gruber", conf.CustomerName)
	assert.Equal(t, "zauberfloete", conf.ShowID)
	require.Len(t, conf.Seats, 2)
	assert.Equal(t, "Parterre-A1", conf.Seats[0].QualifiedID)
	assert.Equal(t, snap.Order, conf.Order)
	assert.Equal(t, at, conf.ConfirmedAt)
}
