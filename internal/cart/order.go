package cart

import "fmt"

// serviceFeePercent is the flat surcharge applied to the subtotal.
const serviceFeePercent = 5

// Order is the derived price breakdown for the current selection.  It
// is recomputed from scratch on every call and never cached.  All
// amounts are integer euro cents; rounding to the cent happens once,
// when the fee is derived, and display formatting happens only at the
// presentation edge via FormatEuros.
type Order struct {
	SubtotalCents   uint64 `json:"subtotal_cents"`
	ServiceFeeCents uint64 `json:"service_fee_cents"`
	TotalCents      uint64 `json:"total_cents"`
}

// computeOrder sums the selected seat prices and applies the service
// fee.  The fee is 5% of the subtotal rounded half-up to the cent.
func computeOrder(seats []SelectedSeat) Order {
	var subtotal uint64
	for _, s := range seats {
		subtotal += uint64(s.PriceCents)
	}
	fee := (subtotal*serviceFeePercent + 50) / 100
	return Order{
		SubtotalCents:   subtotal,
		ServiceFeeCents: fee,
		TotalCents:      subtotal + fee,
	}
}

// FormatEuros renders an amount of euro cents as a two-decimal string,
// e.g. 15750 -> "157.50".
func FormatEuros(cents uint64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
