package model

import "time"

// Showtime represents one scheduled screening of a movie in a room.
// The base price applies to regular seats; VIP and couple seats are
// derived from it via the room's seat-type multipliers.
//
// Fields:
//  ID             – primary key identifier.
//  MovieID        – movie being screened.
//  RoomID         – room where the screening happens.
//  StartsAt       – when the screening begins.
//  EndsAt         – when the screening ends (after StartsAt).
//  BasePriceCents – regular-seat ticket price in cents.
//  Status         – current state (SCHEDULED, CANCELLED, FINISHED).
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Showtime struct {
	ID             uint64    // showtimes.id
	MovieID        uint64    // showtimes.movie_id
	RoomID         uint64    // showtimes.room_id
	StartsAt       time.Time // showtimes.starts_at
	EndsAt         time.Time // showtimes.ends_at
	BasePriceCents int64     // showtimes.base_price_cents
	Status         string    // showtimes.status
	CreatedAt      time.Time // showtimes.created_at
	UpdatedAt      time.Time // showtimes.updated_at
}
