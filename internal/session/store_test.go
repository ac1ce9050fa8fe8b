package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinebook/internal/seatmap"
)

func TestStoreOpenAndGet(t *testing.T) {
	st := NewStore(time.Minute)

	s := st.Open(7, 42, 100000, seatmap.DefaultConfig(), nil)
	require.NotEmpty(t, s.ID)
	assert.Equal(t, StepSelect, s.Step())

	got, err := st.Get(s.ID, 7)
	require.NoError(t, err)
	assert.Same(t, s, got)

	// A different user cannot fetch someone else's session.
	_, err = st.Get(s.ID, 8)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.Get("no-such-id", 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreDelete(t *testing.T) {
	st := NewStore(time.Minute)
	s := st.Open(1, 1, 1000, seatmap.DefaultConfig(), nil)

	st.Delete(s.ID)
	_, err := st.Get(s.ID, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting twice is harmless.
	st.Delete(s.ID)
}

func TestStoreExpiry(t *testing.T) {
	st := NewStore(-time.Second) // already expired when opened
	s := st.Open(1, 1, 1000, seatmap.DefaultConfig(), nil)

	_, err := st.Get(s.ID, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreEvictCallbackFiresOncePerRemoval(t *testing.T) {
	st := NewStore(time.Minute)
	evicted := 0
	st.OnEvict(func() { evicted++ })

	s := st.Open(1, 1, 1000, seatmap.DefaultConfig(), nil)
	st.Delete(s.ID)
	assert.Equal(t, 1, evicted)

	// Deleting an unknown id must not fire the callback again.
	st.Delete(s.ID)
	assert.Equal(t, 1, evicted)
}

func TestStoreEvictCallbackOnLazyExpiry(t *testing.T) {
	st := NewStore(-time.Second) // already expired when opened
	evicted := 0
	st.OnEvict(func() { evicted++ })

	s := st.Open(1, 1, 1000, seatmap.DefaultConfig(), nil)
	_, err := st.Get(s.ID, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, evicted)
}

func TestStoreEvictCallbackMatchesSweep(t *testing.T) {
	st := NewStore(time.Minute)
	evicted := 0
	st.OnEvict(func() { evicted++ })

	for i := 0; i < 3; i++ {
		s := st.Open(uint64(i), 1, 1000, seatmap.DefaultConfig(), nil)
		s.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	}
	st.Open(9, 1, 1000, seatmap.DefaultConfig(), nil)

	dropped := st.Sweep(time.Now().UTC())
	assert.Equal(t, 3, dropped)
	assert.Equal(t, 3, evicted)
	assert.Equal(t, 1, st.Len())
}

func TestStoreSweep(t *testing.T) {
	st := NewStore(time.Minute)
	alive := st.Open(1, 1, 1000, seatmap.DefaultConfig(), nil)
	stale := st.Open(2, 2, 1000, seatmap.DefaultConfig(), nil)
	stale.ExpiresAt = time.Now().UTC().Add(-time.Minute)

	dropped := st.Sweep(time.Now().UTC())
	assert.Equal(t, 1, dropped)
	assert.Equal(t, 1, st.Len())

	_, err := st.Get(alive.ID, 1)
	assert.NoError(t, err)
}
