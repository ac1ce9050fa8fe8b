// Package occupancy produces the occupied-seat set for a showtime.  The
// source is injectable so the booking session does not care whether seats
// come from confirmed bookings, a cache, or a demo pattern.
package occupancy

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"cinebook/internal/seatmap"
)

// Source yields the initial occupied-seat set for a showtime: seat label
// mapped to an opaque occupant marker.
type Source interface {
	Load(ctx context.Context, showtimeID uint64) (map[string]string, error)
}

// SeatLister is the slice of the booking repository the store needs.
type SeatLister interface {
	ConfirmedSeatLabels(ctx context.Context, showtimeID uint64) (map[string]string, error)
}

// Store loads occupied seats from confirmed bookings and caches the set
// in Redis.  With a nil Redis client it degrades to querying the database
// on every load, matching how the rest of the service treats Redis as
// optional.
type Store struct {
	bookings SeatLister
	rdb      *redis.Client
	ttl      time.Duration
}

// NewStore builds a Store.  rdb may be nil to disable caching.
func NewStore(bookings SeatLister, rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Store{bookings: bookings, rdb: rdb, ttl: ttl}
}

func cacheKey(showtimeID uint64) string {
	return fmt.Sprintf("occupied:%d", showtimeID)
}

// Load returns the occupied-seat set for a showtime, serving from cache
// when possible.  Cache failures are logged and fall through to the
// database; a stale entry is bounded by the TTL and by Invalidate calls
// on every confirmed booking.
func (s *Store) Load(ctx context.Context, showtimeID uint64) (map[string]string, error) {
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, cacheKey(showtimeID)).Result()
		if err == nil {
			occupied := make(map[string]string)
			if err := json.Unmarshal([]byte(raw), &occupied); err == nil {
				return occupied, nil
			}
			log.Printf("occupancy: bad cache entry for showtime %d, reloading", showtimeID)
		} else if err != redis.Nil {
			log.Printf("occupancy: cache read failed: %v", err)
		}
	}
	occupied, err := s.bookings.ConfirmedSeatLabels(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	if s.rdb != nil {
		if raw, err := json.Marshal(occupied); err == nil {
			if err := s.rdb.Set(ctx, cacheKey(showtimeID), raw, s.ttl).Err(); err != nil {
				log.Printf("occupancy: cache write failed: %v", err)
			}
		}
	}
	return occupied, nil
}

// Invalidate drops the cached set for a showtime.  Called after a booking
// is confirmed or cancelled so the next session sees fresh occupancy.
func (s *Store) Invalidate(ctx context.Context, showtimeID uint64) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, cacheKey(showtimeID)).Err(); err != nil {
		log.Printf("occupancy: cache invalidate failed: %v", err)
	}
}

// Demo is a Source producing a fixed pre-occupied pattern for showtimes
// that have no real bookings yet: every Stride-th seat of the configured
// map is marked taken.  The pattern is deterministic per config, so demo
// environments render the same seat map on every load.
type Demo struct {
	Config seatmap.RowConfig
	Stride int
}

// Load implements Source.
func (d Demo) Load(_ context.Context, showtimeID uint64) (map[string]string, error) {
	stride := d.Stride
	if stride <= 1 {
		stride = 5
	}
	occupied := make(map[string]string)
	for i, id := range seatmap.SeatIDs(d.Config) {
		if i%stride == stride-1 {
			occupied[id] = fmt.Sprintf("demo-%d", showtimeID)
		}
	}
	return occupied, nil
}
