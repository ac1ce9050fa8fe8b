// Package repository implements data access over MySQL.  Sentinel errors
// defined here let handlers distinguish failure scenarios: ErrForbidden
// maps to HTTP 403, ErrConflict to 409, the *NotFound values to 404 and
// ErrEmailTaken to 409 on registration.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot proceed because
// of dependent state, such as removing a showtime that has confirmed
// bookings.
var ErrConflict = errors.New("conflict")

// ErrEmailTaken is returned when registering with an email address that
// already has an account.
var ErrEmailTaken = errors.New("email already registered")

// Not-found sentinels per aggregate.
var (
	ErrMovieNotFound    = errors.New("movie not found")
	ErrTheaterNotFound  = errors.New("theater not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrShowtimeNotFound = errors.New("showtime not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrUserNotFound     = errors.New("user not found")
)
