package repository

import (
	"context"
	"database/sql"
	"errors"

	"cinebook/internal/model"
)

// MovieRepo provides CRUD operations for movies.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

// Create inserts a movie record.  On success the movie's ID is populated.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (title, description, genre, duration_min, rating, poster_url, release_date, is_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Description, m.Genre, m.DurationMin, m.Rating, m.PosterURL, m.ReleaseDate, m.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID retrieves a movie by its id.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT id, title, description, genre, duration_min, rating, poster_url, release_date, is_active, created_at, updated_at
	           FROM movies WHERE id = ?`
	var m model.Movie
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Title, &m.Description, &m.Genre, &m.DurationMin, &m.Rating,
		&m.PosterURL, &m.ReleaseDate, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns movies ordered by title.  When activeOnly is true, only
// currently listed movies are returned.
func (r *MovieRepo) List(ctx context.Context, activeOnly bool) ([]model.Movie, error) {
	q := `SELECT id, title, description, genre, duration_min, rating, poster_url, release_date, is_active, created_at, updated_at
	      FROM movies`
	if activeOnly {
		q += ` WHERE is_active = 1`
	}
	q += ` ORDER BY title, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Movie, 0)
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Description, &m.Genre, &m.DurationMin, &m.Rating,
			&m.PosterURL, &m.ReleaseDate, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites all editable fields of a movie.  Returns
// ErrMovieNotFound when no row matches.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	const q = `UPDATE movies
	           SET title = ?, description = ?, genre = ?, duration_min = ?, rating = ?,
	               poster_url = ?, release_date = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Description, m.Genre, m.DurationMin, m.Rating, m.PosterURL, m.ReleaseDate, m.IsActive, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// Delete removes a movie.  Movies with scheduled showtimes cannot be
// deleted; ErrConflict is returned instead.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	const check = `SELECT COUNT(*) FROM showtimes WHERE movie_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, check, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrMovieNotFound
	}
	return nil
}
