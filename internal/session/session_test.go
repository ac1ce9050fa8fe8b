package session

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinebook/internal/seatmap"
)

func newTestSession(occupied map[string]string) *Session {
	return New("sess-1", 7, 42, 100000, seatmap.DefaultConfig(), occupied, time.Minute)
}

func TestToggleSelectsAndDeselects(t *testing.T) {
	s := newTestSession(nil)

	require.NoError(t, s.Toggle("A1"))
	require.NoError(t, s.Toggle("F5"))
	assert.Equal(t, []string{"A1", "F5"}, s.Selected())

	// Toggling again removes the seat, preserving insertion order of the rest.
	require.NoError(t, s.Toggle("A1"))
	assert.Equal(t, []string{"F5"}, s.Selected())
}

func TestToggleOccupiedSeatIsNoOp(t *testing.T) {
	s := newTestSession(map[string]string{"B3": "booking-12"})

	err := s.Toggle("B3")
	assert.ErrorIs(t, err, ErrSeatOccupied)
	assert.Empty(t, s.Selected())
}

func TestToggleUnknownSeatRejected(t *testing.T) {
	s := newTestSession(nil)

	assert.ErrorIs(t, s.Toggle("Z99"), ErrUnknownSeat)
	assert.Empty(t, s.Selected())
}

func TestToggleSelectionCap(t *testing.T) {
	s := newTestSession(nil)

	for i := 1; i <= MaxSeats; i++ {
		require.NoError(t, s.Toggle(fmt.Sprintf("A%d", i)))
	}
	before := s.Selected()

	err := s.Toggle("B1")
	assert.ErrorIs(t, err, ErrSelectionLimit)
	assert.Equal(t, before, s.Selected())

	// Deselecting one of the 8 frees a slot again.
	require.NoError(t, s.Toggle("A1"))
	assert.NoError(t, s.Toggle("B1"))
}

func TestContinueRequiresSelection(t *testing.T) {
	s := newTestSession(nil)

	err := s.Continue()
	assert.ErrorIs(t, err, ErrNoSeats)
	assert.Equal(t, StepSelect, s.Step())

	require.NoError(t, s.Toggle("C4"))
	require.NoError(t, s.Continue())
	assert.Equal(t, StepConfirm, s.Step())
}

func TestBackKeepsSelection(t *testing.T) {
	s := newTestSession(nil)
	require.NoError(t, s.Toggle("C4"))
	require.NoError(t, s.Continue())

	require.NoError(t, s.Back())
	assert.Equal(t, StepSelect, s.Step())
	assert.Equal(t, []string{"C4"}, s.Selected())

	// Back is only legal from CONFIRM.
	assert.ErrorIs(t, s.Back(), ErrWrongStep)
}

func TestTogglingOutsideSelectStepRejected(t *testing.T) {
	s := newTestSession(nil)
	require.NoError(t, s.Toggle("C4"))
	require.NoError(t, s.Continue())

	assert.ErrorIs(t, s.Toggle("C5"), ErrWrongStep)
	assert.Equal(t, []string{"C4"}, s.Selected())
}

func TestBeginPaymentReturnsSelectionAndTotal(t *testing.T) {
	s := newTestSession(nil)
	require.NoError(t, s.Toggle("A1"))
	require.NoError(t, s.Toggle("A2"))
	require.NoError(t, s.Toggle("F1"))
	require.NoError(t, s.Continue())

	seats, total, err := s.BeginPayment()
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2", "F1"}, seats)
	assert.Equal(t, int64(350000), total)
	assert.Equal(t, StepProcessing, s.Step())

	// Everything else is rejected while the payment call is outstanding.
	assert.ErrorIs(t, s.Toggle("A3"), ErrWrongStep)
	assert.ErrorIs(t, s.Continue(), ErrWrongStep)
	assert.ErrorIs(t, s.Back(), ErrWrongStep)
	_, _, err = s.BeginPayment()
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestBeginPaymentOnlyFromConfirm(t *testing.T) {
	s := newTestSession(nil)
	_, _, err := s.BeginPayment()
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestCompletePaymentSuccess(t *testing.T) {
	s := newTestSession(map[string]string{"B1": "booking-5"})
	require.NoError(t, s.Toggle("A1"))
	require.NoError(t, s.Toggle("A2"))
	require.NoError(t, s.Continue())
	_, _, err := s.BeginPayment()
	require.NoError(t, err)

	outcome := s.CompletePayment("booking-99", nil)
	assert.Equal(t, StepSucceeded, outcome)
	assert.Equal(t, StepSucceeded, s.Step())

	occ := s.Occupied()
	assert.Equal(t, "booking-99", occ["A1"])
	assert.Equal(t, "booking-99", occ["A2"])
	assert.Equal(t, "booking-5", occ["B1"])

	// Selection is retained for the success screen but frozen.
	assert.Equal(t, []string{"A1", "A2"}, s.Selected())
	assert.ErrorIs(t, s.Toggle("A3"), ErrWrongStep)
}

func TestCompletePaymentFailureReturnsToConfirm(t *testing.T) {
	s := newTestSession(map[string]string{"B1": "booking-5"})
	require.NoError(t, s.Toggle("A1"))
	require.NoError(t, s.Continue())
	_, _, err := s.BeginPayment()
	require.NoError(t, err)

	outcome := s.CompletePayment("", errors.New("card declined"))
	assert.Equal(t, StepPaymentFailed, outcome)
	assert.Equal(t, StepConfirm, s.Step())
	assert.Equal(t, "card declined", s.Failure())

	// No partial occupancy and the selection survives for a retry.
	assert.Equal(t, map[string]string{"B1": "booking-5"}, s.Occupied())
	assert.Equal(t, []string{"A1"}, s.Selected())

	// A retry clears the recorded failure.
	_, _, err = s.BeginPayment()
	require.NoError(t, err)
	assert.Empty(t, s.Failure())
}

func TestCompletePaymentOutsideProcessingIsIgnored(t *testing.T) {
	s := newTestSession(nil)
	require.NoError(t, s.Toggle("A1"))

	outcome := s.CompletePayment("booking-1", nil)
	assert.Equal(t, StepSelect, outcome)
	assert.Empty(t, s.Occupied())
}

func TestSnapshot(t *testing.T) {
	s := newTestSession(map[string]string{"B1": "x"})
	require.NoError(t, s.Toggle("F1"))

	snap := s.Snapshot()
	assert.Equal(t, "sess-1", snap.ID)
	assert.Equal(t, uint64(42), snap.ShowtimeID)
	assert.Equal(t, StepSelect, snap.Step)
	assert.Equal(t, []string{"F1"}, snap.Selected)
	assert.Equal(t, int64(150000), snap.TotalCents)
	assert.Equal(t, map[string]string{"B1": "x"}, snap.Occupied)

	// The snapshot is a copy, not a view.
	snap.Occupied["C1"] = "y"
	assert.NotContains(t, s.Occupied(), "C1")
}
