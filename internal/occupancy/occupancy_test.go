package occupancy

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinebook/internal/seatmap"
)

type fakeLister struct {
	seats map[string]string
	err   error
	calls int
}

func (f *fakeLister) ConfirmedSeatLabels(_ context.Context, _ uint64) (map[string]string, error) {
	f.calls++
	return f.seats, f.err
}

func TestStoreLoadCacheMiss(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	lister := &fakeLister{seats: map[string]string{"A1": "booking-1"}}
	store := NewStore(lister, rdb, time.Minute)

	payload, _ := json.Marshal(lister.seats)
	mock.ExpectGet("occupied:42").RedisNil()
	mock.ExpectSet("occupied:42", payload, time.Minute).SetVal("OK")

	got, err := store.Load(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, lister.seats, got)
	assert.Equal(t, 1, lister.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreLoadCacheHit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	lister := &fakeLister{seats: map[string]string{"A1": "booking-1"}}
	store := NewStore(lister, rdb, time.Minute)

	mock.ExpectGet("occupied:42").SetVal(`{"B2":"booking-7"}`)

	got, err := store.Load(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"B2": "booking-7"}, got)
	assert.Zero(t, lister.calls, "cache hit must not touch the database")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreLoadWithoutRedis(t *testing.T) {
	lister := &fakeLister{seats: map[string]string{"C3": "booking-2"}}
	store := NewStore(lister, nil, time.Minute)

	got, err := store.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, lister.seats, got)
}

func TestStoreLoadPropagatesDBError(t *testing.T) {
	lister := &fakeLister{err: errors.New("db down")}
	store := NewStore(lister, nil, time.Minute)

	_, err := store.Load(context.Background(), 1)
	assert.Error(t, err)
}

func TestStoreInvalidate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	store := NewStore(&fakeLister{}, rdb, time.Minute)

	mock.ExpectDel("occupied:9").SetVal(1)
	store.Invalidate(context.Background(), 9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDemoPatternDeterministic(t *testing.T) {
	demo := Demo{Config: seatmap.DefaultConfig(), Stride: 5}

	first, err := demo.Load(context.Background(), 3)
	require.NoError(t, err)
	second, err := demo.Load(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// 140 seats, every 5th occupied.
	assert.Len(t, first, 28)
	for id, marker := range first {
		assert.True(t, seatmap.Contains(id, demo.Config), "seat %s", id)
		assert.Equal(t, "demo-3", marker)
	}
}
