// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a checkout completes with a
// successful payment.  It carries enough information for downstream
// consumers to log, notify, or feed analytics without querying the
// primary database.
type BookingConfirmedEvent struct {
	BookingID        uint64   `json:"booking_id"`
	UserID           uint64   `json:"user_id"`
	ShowtimeID       uint64   `json:"showtime_id"`
	MovieTitle       string   `json:"movie_title"`
	TheaterName      string   `json:"theater_name"`
	RoomName         string   `json:"room_name"`
	StartsAt         string   `json:"starts_at"`
	SeatLabels       []string `json:"seats"`
	TotalAmountCents int64    `json:"total_amount_cents"`
	PaymentRef       string   `json:"payment_ref"`
	ConfirmedAt      string   `json:"confirmed_at"`
}
