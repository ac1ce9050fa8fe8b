package model

import "time"

// Booking statuses.  PENDING bookings exist only while a payment call is
// outstanding; they become CONFIRMED or CANCELLED when it resolves.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// Booking records one user's purchase for a showtime.  It groups the
// seats bought in a single checkout and tracks the payment outcome.
//
// Fields:
//  ID               – primary key identifier.
//  UserID           – user who made the booking.
//  ShowtimeID       – showtime being booked.
//  Status           – PENDING, CONFIRMED or CANCELLED.
//  TotalAmountCents – total price for all seats in cents.
//  PaymentMethod    – method chosen at checkout (e.g. card, wallet).
//  PaymentRef       – reference returned by the payment processor, if any.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Booking struct {
	ID               uint64    // bookings.id
	UserID           uint64    // bookings.user_id
	ShowtimeID       uint64    // bookings.showtime_id
	Status           string    // bookings.status
	TotalAmountCents int64     // bookings.total_amount_cents
	PaymentMethod    string    // bookings.payment_method
	PaymentRef       *string   // bookings.payment_ref (nullable)
	CreatedAt        time.Time // bookings.created_at
	UpdatedAt        time.Time // bookings.updated_at
}

// BookingSeat is one seat purchased under a booking.  The seat label is
// the seat-map id (row letter plus 1-based number, e.g. "F7"); the type
// and price are frozen at purchase time so later layout changes do not
// rewrite history.
//
// Fields:
//  ID         – primary key identifier.
//  BookingID  – booking this seat belongs to.
//  ShowtimeID – showtime in which the seat is taken.
//  SeatLabel  – seat-map id of the seat.
//  SeatType   – REGULAR, VIP or COUPLE at purchase time.
//  PriceCents – price paid for this seat in cents.
//  CreatedAt  – creation timestamp.
type BookingSeat struct {
	ID         uint64    // booking_seats.id
	BookingID  uint64    // booking_seats.booking_id
	ShowtimeID uint64    // booking_seats.showtime_id
	SeatLabel  string    // booking_seats.seat_label
	SeatType   string    // booking_seats.seat_type
	PriceCents int64     // booking_seats.price_cents
	CreatedAt  time.Time // booking_seats.created_at
}
