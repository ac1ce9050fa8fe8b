package model

import "time"

// Movie represents a film available for booking.  Movies are managed by
// admins and browsed publicly; showtimes reference them.  This struct
// corresponds to a row in the `movies` table.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – display title of the movie.
//  Description – synopsis shown on the detail page.
//  Genre       – free-form genre label.
//  DurationMin – runtime in minutes.
//  Rating      – age rating label (e.g. PG-13).
//  PosterURL   – poster image location.
//  ReleaseDate – cinema release date.
//  IsActive    – whether the movie is currently listed.
//  CreatedAt   – timestamp when the movie was created.
//  UpdatedAt   – timestamp of last update.
type Movie struct {
	ID          uint64    // movies.id
	Title       string    // movies.title
	Description string    // movies.description
	Genre       string    // movies.genre
	DurationMin uint32    // movies.duration_min
	Rating      string    // movies.rating
	PosterURL   string    // movies.poster_url
	ReleaseDate time.Time // movies.release_date
	IsActive    bool      // movies.is_active
	CreatedAt   time.Time // movies.created_at
	UpdatedAt   time.Time // movies.updated_at
}
