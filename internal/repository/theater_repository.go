package repository

import (
	"context"
	"database/sql"
	"errors"

	"cinebook/internal/model"
)

// TheaterRepo provides CRUD operations for theaters and their rooms.
// Rooms carry the seating layout (row count, seats per row and the
// VIP/couple row sets) used to build seat maps for showtimes.
type TheaterRepo struct {
	db *sql.DB
}

// NewTheaterRepo constructs a TheaterRepo with the given DB handle.
func NewTheaterRepo(db *sql.DB) *TheaterRepo { return &TheaterRepo{db: db} }

// Create inserts a theater record and populates its ID.
func (r *TheaterRepo) Create(ctx context.Context, t *model.Theater) error {
	const q = `INSERT INTO theaters (name, city, address) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.City, t.Address)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID retrieves a theater by its id.
func (r *TheaterRepo) GetByID(ctx context.Context, id uint64) (*model.Theater, error) {
	const q = `SELECT id, name, city, address, created_at, updated_at FROM theaters WHERE id = ?`
	var t model.Theater
	err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Name, &t.City, &t.Address, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTheaterNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns all theaters ordered by city then name.
func (r *TheaterRepo) List(ctx context.Context) ([]model.Theater, error) {
	const q = `SELECT id, name, city, address, created_at, updated_at FROM theaters ORDER BY city, name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Theater, 0)
	for rows.Next() {
		var t model.Theater
		if err := rows.Scan(&t.ID, &t.Name, &t.City, &t.Address, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites a theater's fields.  Returns ErrTheaterNotFound when no
// row matches.
func (r *TheaterRepo) Update(ctx context.Context, t *model.Theater) error {
	const q = `UPDATE theaters SET name = ?, city = ?, address = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.City, t.Address, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTheaterNotFound
	}
	return nil
}

// Delete removes a theater.  Theaters that still contain rooms cannot be
// deleted; ErrConflict is returned instead.
func (r *TheaterRepo) Delete(ctx context.Context, id uint64) error {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms WHERE theater_id = ?`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM theaters WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrTheaterNotFound
	}
	return nil
}

// CreateRoom inserts a room record and populates its ID.
func (r *TheaterRepo) CreateRoom(ctx context.Context, room *model.Room) error {
	const q = `INSERT INTO rooms (theater_id, name, row_count, seats_per_row, vip_rows, couple_rows, is_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, room.TheaterID, room.Name, room.RowCount, room.SeatsPerRow, room.VIPRows, room.CoupleRows, room.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	return nil
}

// GetRoom retrieves a room by its id.
func (r *TheaterRepo) GetRoom(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, theater_id, name, row_count, seats_per_row, vip_rows, couple_rows, is_active, created_at, updated_at
	           FROM rooms WHERE id = ?`
	var room model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&room.ID, &room.TheaterID, &room.Name, &room.RowCount, &room.SeatsPerRow,
		&room.VIPRows, &room.CoupleRows, &room.IsActive, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// ListRooms returns all rooms of a theater ordered by name.
func (r *TheaterRepo) ListRooms(ctx context.Context, theaterID uint64) ([]model.Room, error) {
	const q = `SELECT id, theater_id, name, row_count, seats_per_row, vip_rows, couple_rows, is_active, created_at, updated_at
	           FROM rooms WHERE theater_id = ? ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, q, theaterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Room, 0)
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(
			&room.ID, &room.TheaterID, &room.Name, &room.RowCount, &room.SeatsPerRow,
			&room.VIPRows, &room.CoupleRows, &room.IsActive, &room.CreatedAt, &room.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateRoom rewrites a room's layout and flags.  Layout changes affect
// only seat maps built after the update; booked seat labels are frozen on
// the booking_seats rows.
func (r *TheaterRepo) UpdateRoom(ctx context.Context, room *model.Room) error {
	const q = `UPDATE rooms
	           SET name = ?, row_count = ?, seats_per_row = ?, vip_rows = ?, couple_rows = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, room.Name, room.RowCount, room.SeatsPerRow, room.VIPRows, room.CoupleRows, room.IsActive, room.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// DeleteRoom removes a room.  Rooms with scheduled showtimes cannot be
// deleted; ErrConflict is returned instead.
func (r *TheaterRepo) DeleteRoom(ctx context.Context, id uint64) error {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM showtimes WHERE room_id = ?`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrRoomNotFound
	}
	return nil
}
