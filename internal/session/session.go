// Package session implements the checkout state machine for one booking
// session.  A session belongs to exactly one user and one showtime; all
// mutations are validated before commit, so a rejected action never leaves
// partial state behind.
package session

import (
	"errors"
	"sync"
	"time"

	"cinebook/internal/seatmap"
)

// Step is the current stage of the checkout flow.
type Step string

const (
	StepSelect        Step = "SELECT"
	StepConfirm       Step = "CONFIRM"
	StepProcessing    Step = "PROCESSING"
	StepSucceeded     Step = "SUCCEEDED"
	StepPaymentFailed Step = "PAYMENT_FAILED"
)

// MaxSeats is the selection cap per booking session.
const MaxSeats = 8

// Sentinel errors surfaced to the user.  All of them are recoverable: the
// session state is unchanged when any of these is returned.
var (
	ErrNoSeats        = errors.New("select at least one seat")
	ErrSelectionLimit = errors.New("maximum 8 seats per booking")
	ErrSeatOccupied   = errors.New("seat is already taken")
	ErrUnknownSeat    = errors.New("seat does not exist in this auditorium")
	ErrWrongStep      = errors.New("action not allowed in the current step")
)

// Session holds the mutable checkout state for one user and showtime.  The
// mutex serialises UI-driven actions with the completion of the one
// outstanding payment call; while the step is PROCESSING every other action
// is rejected with ErrWrongStep.
type Session struct {
	mu sync.Mutex

	ID             string
	UserID         uint64
	ShowtimeID     uint64
	BasePriceCents int64
	Config         seatmap.RowConfig

	step     Step
	selected []string
	occupied map[string]string
	failure  string

	CreatedAt time.Time
	ExpiresAt time.Time
}

// New opens a session in the SELECT step.  The occupied map is the
// occupancy snapshot taken at open time; the session takes ownership of it.
func New(id string, userID, showtimeID uint64, basePriceCents int64, cfg seatmap.RowConfig, occupied map[string]string, ttl time.Duration) *Session {
	if occupied == nil {
		occupied = make(map[string]string)
	}
	now := time.Now().UTC()
	return &Session{
		ID:             id,
		UserID:         userID,
		ShowtimeID:     showtimeID,
		BasePriceCents: basePriceCents,
		Config:         cfg,
		step:           StepSelect,
		occupied:       occupied,
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
	}
}

// Step returns the current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Selected returns a copy of the selected seat ids in insertion order.
func (s *Session) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}

// Occupied returns a copy of the occupied seat set.
func (s *Session) Occupied() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.occupied))
	for k, v := range s.occupied {
		out[k] = v
	}
	return out
}

// Failure returns the last payment or booking failure message, empty when
// the previous attempt (if any) did not fail.
func (s *Session) Failure() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

// TotalCents recomputes the price of the current selection.
func (s *Session) TotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seatmap.TotalPrice(s.selected, s.BasePriceCents, s.Config)
}

// Expired reports whether the session TTL has passed.
func (s *Session) Expired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.After(s.ExpiresAt)
}

// Toggle flips the selection state of one seat.  Only legal in the SELECT
// step.  Toggling an occupied seat is rejected, toggling a selected seat
// removes it, and adding a new seat is subject to the MaxSeats cap.
func (s *Session) Toggle(seatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepSelect {
		return ErrWrongStep
	}
	if !seatmap.Contains(seatID, s.Config) {
		return ErrUnknownSeat
	}
	if _, taken := s.occupied[seatID]; taken {
		return ErrSeatOccupied
	}
	for i, sel := range s.selected {
		if sel == seatID {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return nil
		}
	}
	if len(s.selected) >= MaxSeats {
		return ErrSelectionLimit
	}
	s.selected = append(s.selected, seatID)
	return nil
}

// Continue advances SELECT -> CONFIRM.  With an empty selection it is a
// no-op that returns ErrNoSeats.
func (s *Session) Continue() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepSelect {
		return ErrWrongStep
	}
	if len(s.selected) == 0 {
		return ErrNoSeats
	}
	s.step = StepConfirm
	return nil
}

// Back returns CONFIRM -> SELECT without clearing the selection.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepConfirm {
		return ErrWrongStep
	}
	s.step = StepSelect
	return nil
}

// BeginPayment advances CONFIRM -> PROCESSING and hands the caller the
// selection and total it must submit to the booking and payment
// collaborators.  While PROCESSING the session rejects every other action,
// so a double submit cannot race the outstanding payment call.
func (s *Session) BeginPayment() (seats []string, totalCents int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepConfirm {
		return nil, 0, ErrWrongStep
	}
	if len(s.selected) == 0 {
		return nil, 0, ErrNoSeats
	}
	s.step = StepProcessing
	s.failure = ""
	seats = make([]string, len(s.selected))
	copy(seats, s.selected)
	return seats, seatmap.TotalPrice(s.selected, s.BasePriceCents, s.Config), nil
}

// CompletePayment resolves the outstanding payment call.  On success the
// selected seats are merged into the occupied set attributed to this
// session's user and the flow terminates at SUCCEEDED; the selection is
// kept for display but is no longer mutable.  On failure the transition
// passes through PAYMENT_FAILED (returned to the caller with the reason
// recorded) and control goes back to CONFIRM with selection and occupancy
// untouched.
func (s *Session) CompletePayment(occupant string, payErr error) Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepProcessing {
		return s.step
	}
	if payErr != nil {
		s.failure = payErr.Error()
		s.step = StepConfirm
		return StepPaymentFailed
	}
	for _, seat := range s.selected {
		s.occupied[seat] = occupant
	}
	s.failure = ""
	s.step = StepSucceeded
	return StepSucceeded
}

// State is a read-only snapshot of a session suitable for JSON responses.
type State struct {
	ID         string            `json:"id"`
	ShowtimeID uint64            `json:"showtime_id"`
	Step       Step              `json:"step"`
	Selected   []string          `json:"selected"`
	Occupied   map[string]string `json:"occupied"`
	TotalCents int64             `json:"total_cents"`
	Failure    string            `json:"failure,omitempty"`
	ExpiresAt  time.Time         `json:"expires_at"`
}

// Snapshot captures the current state under the session lock.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	selected := make([]string, len(s.selected))
	copy(selected, s.selected)
	occupied := make(map[string]string, len(s.occupied))
	for k, v := range s.occupied {
		occupied[k] = v
	}
	return State{
		ID:         s.ID,
		ShowtimeID: s.ShowtimeID,
		Step:       s.step,
		Selected:   selected,
		Occupied:   occupied,
		TotalCents: seatmap.TotalPrice(selected, s.BasePriceCents, s.Config),
		Failure:    s.failure,
		ExpiresAt:  s.ExpiresAt,
	}
}
