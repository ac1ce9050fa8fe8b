package repository

import (
	"context"
	"database/sql"
	"errors"

	"cinebook/internal/model"
)

// ShowtimeRepo provides CRUD operations for showtimes and the joined
// detail view used by the booking flow.
type ShowtimeRepo struct {
	db *sql.DB
}

// NewShowtimeRepo constructs a ShowtimeRepo with the given DB handle.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo { return &ShowtimeRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning multiple repositories.
func (r *ShowtimeRepo) DB() *sql.DB { return r.db }

// Create inserts a showtime record and populates its ID.
func (r *ShowtimeRepo) Create(ctx context.Context, s *model.Showtime) error {
	const q = `INSERT INTO showtimes (movie_id, room_id, starts_at, ends_at, base_price_cents, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.MovieID, s.RoomID, s.StartsAt, s.EndsAt, s.BasePriceCents, s.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID retrieves a showtime by its id.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id uint64) (*model.Showtime, error) {
	const q = `SELECT id, movie_id, room_id, starts_at, ends_at, base_price_cents, status, created_at, updated_at
	           FROM showtimes WHERE id = ?`
	var s model.Showtime
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.MovieID, &s.RoomID, &s.StartsAt, &s.EndsAt,
		&s.BasePriceCents, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Detail is a showtime joined with its movie, room and theater, carrying
// everything the seat-selection screen needs: the base price and the
// room's seating layout.
type Detail struct {
	ID             uint64 `json:"id"`
	MovieID        uint64 `json:"movie_id"`
	MovieTitle     string `json:"movie_title"`
	RoomID         uint64 `json:"room_id"`
	RoomName       string `json:"room_name"`
	TheaterID      uint64 `json:"theater_id"`
	TheaterName    string `json:"theater_name"`
	StartsAt       string `json:"starts_at"`
	EndsAt         string `json:"ends_at"`
	BasePriceCents int64  `json:"base_price_cents"`
	Status         string `json:"status"`
	RowCount       uint32 `json:"row_count"`
	SeatsPerRow    uint32 `json:"seats_per_row"`
	VIPRows        string `json:"vip_rows"`
	CoupleRows     string `json:"couple_rows"`
}

// GetDetail loads the joined detail view for one showtime.
func (r *ShowtimeRepo) GetDetail(ctx context.Context, id uint64) (*Detail, error) {
	const q = `SELECT s.id, s.movie_id, m.title, s.room_id, ro.name, t.id, t.name,
	                  s.starts_at, s.ends_at, s.base_price_cents, s.status,
	                  ro.row_count, ro.seats_per_row, ro.vip_rows, ro.couple_rows
	           FROM showtimes s
	           JOIN movies m ON m.id = s.movie_id
	           JOIN rooms ro ON ro.id = s.room_id
	           JOIN theaters t ON t.id = ro.theater_id
	           WHERE s.id = ?`
	var d Detail
	var startsAt, endsAt sql.NullTime
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.MovieID, &d.MovieTitle, &d.RoomID, &d.RoomName, &d.TheaterID, &d.TheaterName,
		&startsAt, &endsAt, &d.BasePriceCents, &d.Status,
		&d.RowCount, &d.SeatsPerRow, &d.VIPRows, &d.CoupleRows,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	if startsAt.Valid {
		d.StartsAt = startsAt.Time.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	if endsAt.Valid {
		d.EndsAt = endsAt.Time.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return &d, nil
}

// ListByMovie returns scheduled showtimes for a movie ordered by start
// time.  Cancelled and finished showtimes are excluded.
func (r *ShowtimeRepo) ListByMovie(ctx context.Context, movieID uint64) ([]model.Showtime, error) {
	const q = `SELECT id, movie_id, room_id, starts_at, ends_at, base_price_cents, status, created_at, updated_at
	           FROM showtimes
	           WHERE movie_id = ? AND status = 'SCHEDULED'
	           ORDER BY starts_at, id`
	return r.list(ctx, q, movieID)
}

// List returns all showtimes ordered by start time (admin view).
func (r *ShowtimeRepo) List(ctx context.Context) ([]model.Showtime, error) {
	const q = `SELECT id, movie_id, room_id, starts_at, ends_at, base_price_cents, status, created_at, updated_at
	           FROM showtimes ORDER BY starts_at, id`
	return r.list(ctx, q)
}

func (r *ShowtimeRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Showtime, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Showtime, 0)
	for rows.Next() {
		var s model.Showtime
		if err := rows.Scan(
			&s.ID, &s.MovieID, &s.RoomID, &s.StartsAt, &s.EndsAt,
			&s.BasePriceCents, &s.Status, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites a showtime's schedule, price and status.  Returns
// ErrShowtimeNotFound when no row matches.
func (r *ShowtimeRepo) Update(ctx context.Context, s *model.Showtime) error {
	const q = `UPDATE showtimes
	           SET movie_id = ?, room_id = ?, starts_at = ?, ends_at = ?, base_price_cents = ?, status = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.MovieID, s.RoomID, s.StartsAt, s.EndsAt, s.BasePriceCents, s.Status, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShowtimeNotFound
	}
	return nil
}

// Delete removes a showtime.  Showtimes with existing bookings cannot be
// deleted; ErrConflict is returned instead.
func (r *ShowtimeRepo) Delete(ctx context.Context, id uint64) error {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE showtime_id = ?`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM showtimes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrShowtimeNotFound
	}
	return nil
}
