package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"cinebook/internal/model"
)

// BookingRepo provides CRUD operations for bookings and their seats.  A
// booking groups the seats purchased in one checkout; booking_seats rows
// freeze the seat label, type and price at purchase time.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for transaction control.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a booking within an existing transaction and populates
// the generated ID.  The caller must commit or roll back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, showtime_id, status, total_amount_cents, payment_method)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.UserID, b.ShowtimeID, b.Status, b.TotalAmountCents, b.PaymentMethod)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// CreateSeatsBulkTx inserts the booking_seats rows for one booking in a
// single statement.  Passing an empty slice has no effect.
func (r *BookingRepo) CreateSeatsBulkTx(ctx context.Context, tx *sql.Tx, seats []model.BookingSeat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO booking_seats (booking_id, showtime_id, seat_label, seat_type, price_cents) VALUES `
	args := make([]interface{}, 0, len(seats)*5)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, s.BookingID, s.ShowtimeID, s.SeatLabel, s.SeatType, s.PriceCents)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// SetOutcome resolves a PENDING booking after the payment call: status
// becomes CONFIRMED or CANCELLED and the payment reference is stored.
func (r *BookingRepo) SetOutcome(ctx context.Context, bookingID uint64, status string, paymentRef string) error {
	const q = `UPDATE bookings SET status = ?, payment_ref = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	var ref interface{}
	if paymentRef != "" {
		ref = paymentRef
	}
	res, err := r.db.ExecContext(ctx, q, status, ref, bookingID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// ConfirmedSeatLabels returns the occupied-seat set for a showtime: every
// seat label on a CONFIRMED booking mapped to an opaque occupant marker
// derived from the booking id.  PENDING and CANCELLED bookings do not
// occupy seats.
func (r *BookingRepo) ConfirmedSeatLabels(ctx context.Context, showtimeID uint64) (map[string]string, error) {
	const q = `SELECT bs.seat_label, bs.booking_id
	           FROM booking_seats bs
	           JOIN bookings b ON b.id = bs.booking_id
	           WHERE bs.showtime_id = ? AND b.status = 'CONFIRMED'
	           ORDER BY bs.seat_label`
	rows, err := r.db.QueryContext(ctx, q, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	occupied := make(map[string]string)
	for rows.Next() {
		var label string
		var bookingID uint64
		if err := rows.Scan(&label, &bookingID); err != nil {
			return nil, err
		}
		occupied[label] = "booking-" + strconv.FormatUint(bookingID, 10)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return occupied, nil
}

// SeatConflictsTx reports which of the given seat labels are already on a
// CONFIRMED booking for the showtime.  It is used for the confirm-time
// re-check inside the booking transaction.
func (r *BookingRepo) SeatConflictsTx(ctx context.Context, tx *sql.Tx, showtimeID uint64, labels []string) ([]string, error) {
	if len(labels) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(labels))
	args := make([]interface{}, 0, len(labels)+1)
	args = append(args, showtimeID)
	for i, l := range labels {
		placeholders[i] = "?"
		args = append(args, l)
	}
	query := `SELECT bs.seat_label
	          FROM booking_seats bs
	          JOIN bookings b ON b.id = bs.booking_id
	          WHERE bs.showtime_id = ? AND b.status = 'CONFIRMED'
	            AND bs.seat_label IN (` + strings.Join(placeholders, ",") + `)`
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conflicts []string
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, err
		}
		conflicts = append(conflicts, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return conflicts, nil
}

// BookingDetail is a booking joined with its showtime, movie and theater
// plus the purchased seats, as returned to customers and admins.
type BookingDetail struct {
	ID               uint64  `json:"id"`
	UserID           uint64  `json:"user_id"`
	ShowtimeID       uint64  `json:"showtime_id"`
	Status           string  `json:"status"`
	TotalAmountCents int64   `json:"total_amount_cents"`
	PaymentMethod    string  `json:"payment_method"`
	PaymentRef       *string `json:"payment_ref,omitempty"`
	MovieTitle       string  `json:"movie_title"`
	TheaterName      string  `json:"theater_name"`
	RoomName         string  `json:"room_name"`
	StartsAt         string  `json:"starts_at"`
	Seats            []struct {
		SeatLabel  string `json:"seat_label"`
		SeatType   string `json:"seat_type"`
		PriceCents int64  `json:"price_cents"`
	} `json:"seats"`
}

const bookingDetailQuery = `SELECT b.id, b.user_id, b.showtime_id, b.status, b.total_amount_cents,
	       b.payment_method, b.payment_ref,
	       m.title, t.name, ro.name, s.starts_at
	FROM bookings b
	JOIN showtimes s ON s.id = b.showtime_id
	JOIN movies m ON m.id = s.movie_id
	JOIN rooms ro ON ro.id = s.room_id
	JOIN theaters t ON t.id = ro.theater_id`

// GetByID returns the detail view of one booking.
func (r *BookingRepo) GetByID(ctx context.Context, bookingID uint64) (*BookingDetail, error) {
	q := bookingDetailQuery + ` WHERE b.id = ?`
	details, err := r.queryDetails(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrBookingNotFound
	}
	return &details[0], nil
}

// ListByUser returns all bookings of a user, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	q := bookingDetailQuery + ` WHERE b.user_id = ? ORDER BY b.created_at DESC, b.id DESC`
	return r.queryDetails(ctx, q, userID)
}

// List returns all bookings, newest first (admin view).
func (r *BookingRepo) List(ctx context.Context) ([]BookingDetail, error) {
	q := bookingDetailQuery + ` ORDER BY b.created_at DESC, b.id DESC`
	return r.queryDetails(ctx, q)
}

func (r *BookingRepo) queryDetails(ctx context.Context, q string, args ...interface{}) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]BookingDetail, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var d BookingDetail
		var payRef sql.NullString
		var startsAt sql.NullTime
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.ShowtimeID, &d.Status, &d.TotalAmountCents,
			&d.PaymentMethod, &payRef,
			&d.MovieTitle, &d.TheaterName, &d.RoomName, &startsAt,
		); err != nil {
			return nil, err
		}
		if payRef.Valid {
			ref := payRef.String
			d.PaymentRef = &ref
		}
		if startsAt.Valid {
			d.StartsAt = startsAt.Time.UTC().Format("2006-01-02T15:04:05Z07:00")
		}
		d.Seats = []struct {
			SeatLabel  string `json:"seat_label"`
			SeatType   string `json:"seat_type"`
			PriceCents int64  `json:"price_cents"`
		}{}
		index[d.ID] = len(details)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}
	// Populate seats for all bookings in a single query.
	ids := make([]interface{}, 0, len(details))
	placeholders := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
		placeholders = append(placeholders, "?")
	}
	seatQuery := `SELECT booking_id, seat_label, seat_type, price_cents
	              FROM booking_seats
	              WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
	              ORDER BY booking_id, seat_label`
	srows, err := r.db.QueryContext(ctx, seatQuery, ids...)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var bookingID uint64
		var label, seatType string
		var price int64
		if err := srows.Scan(&bookingID, &label, &seatType, &price); err != nil {
			return nil, err
		}
		idx, ok := index[bookingID]
		if !ok {
			continue
		}
		details[idx].Seats = append(details[idx].Seats, struct {
			SeatLabel  string `json:"seat_label"`
			SeatType   string `json:"seat_type"`
			PriceCents int64  `json:"price_cents"`
		}{SeatLabel: label, SeatType: seatType, PriceCents: price})
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// Cancel sets a CONFIRMED or PENDING booking to CANCELLED, freeing its
// seats for future occupancy snapshots.  Cancelling an already cancelled
// booking returns ErrConflict.
func (r *BookingRepo) Cancel(ctx context.Context, bookingID uint64) error {
	const q = `UPDATE bookings SET status = 'CANCELLED', updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND status <> 'CANCELLED'`
	res, err := r.db.ExecContext(ctx, q, bookingID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish missing from already cancelled.
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE id = ?`, bookingID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return ErrBookingNotFound
		}
		return ErrConflict
	}
	return nil
}

// OwnedBy reports whether a booking belongs to the given user, returning
// ErrBookingNotFound when it does not exist.
func (r *BookingRepo) OwnedBy(ctx context.Context, bookingID, userID uint64) error {
	var owner uint64
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM bookings WHERE id = ?`, bookingID).Scan(&owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		return err
	}
	if owner != userID {
		return ErrForbidden
	}
	return nil
}
