// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a checkout completes.  It
// carries enough information for downstream consumers to log or notify
// without access to the in-process catalog.
type BookingConfirmedEvent struct {
	BookingRef      string   `json:"booking_ref"`
	CustomerName    string   `json:"customer_name"`
	ShowID          string   `json:"show_id"`
	ShowTitle       string   `json:"show_title"`
	ShowDate        string   `json:"show_date"`
	ShowTime        string   `json:"show_time"`
	Seats           []string `json:"seats"`
	SubtotalCents   uint64   `json:"subtotal_cents"`
	ServiceFeeCents uint64   `json:"service_fee_cents"`
	TotalCents      uint64   `json:"total_cents"`
	ConfirmedAt     string   `json:"confirmed_at"`
}
