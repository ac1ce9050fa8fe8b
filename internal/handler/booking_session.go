package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"cinebook/internal/model"
	"cinebook/internal/monitoring"
	"cinebook/internal/occupancy"
	"cinebook/internal/payment"
	"cinebook/internal/queue"
	"cinebook/internal/repository"
	"cinebook/internal/seatmap"
	queue_publisher "cinebook/internal/service"
	"cinebook/internal/session"
)

// BookingSessionHandler drives the interactive checkout flow: open a
// session for a showtime, toggle seats, move between the selection and
// confirmation steps, and submit the payment.
type BookingSessionHandler struct {
	sessions  *session.Store
	showtimes *repository.ShowtimeRepo
	bookings  *repository.BookingRepo
	occupied  occupancy.Source
	processor payment.Processor
}

// NewBookingSessionHandler wires the booking session endpoints.
func NewBookingSessionHandler(
	sessions *session.Store,
	showtimes *repository.ShowtimeRepo,
	bookings *repository.BookingRepo,
	occupied occupancy.Source,
	processor payment.Processor,
) *BookingSessionHandler {
	return &BookingSessionHandler{
		sessions:  sessions,
		showtimes: showtimes,
		bookings:  bookings,
		occupied:  occupied,
		processor: processor,
	}
}

// occupancyInvalidator is the optional cache-drop capability of an
// occupancy source.  The demo source does not implement it.
type occupancyInvalidator interface {
	Invalidate(ctx context.Context, showtimeID uint64)
}

// Open creates a booking session for a scheduled showtime, seeded with
// the current occupied-seat snapshot.
func (h *BookingSessionHandler) Open(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	showtimeID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()

	d, err := h.showtimes.GetDetail(ctx, showtimeID)
	if err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load showtime"})
	}
	if d.Status != "SCHEDULED" {
		return c.JSON(http.StatusConflict, echo.Map{"error": "showtime is not open for booking"})
	}

	cfg := seatmap.ConfigFromLayout(int(d.RowCount), int(d.SeatsPerRow), d.VIPRows, d.CoupleRows)
	occupied, err := h.occupied.Load(ctx, d.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load seat availability"})
	}

	s := h.sessions.Open(userID, d.ID, d.BasePriceCents, cfg, occupied)
	monitoring.SessionOpened()
	return c.JSON(http.StatusCreated, s.Snapshot())
}

// Get returns the current session state.
func (h *BookingSessionHandler) Get(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, s.Snapshot())
}

type toggleRequest struct {
	SeatID string `json:"seat_id"`
}

// Toggle flips the selection state of one seat.
func (h *BookingSessionHandler) Toggle(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	var req toggleRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.SeatID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id is required"})
	}
	seatID := strings.ToUpper(strings.TrimSpace(req.SeatID))

	wasSelected := false
	for _, sel := range s.Selected() {
		if sel == seatID {
			wasSelected = true
			break
		}
	}

	if err := s.Toggle(seatID); err != nil {
		monitoring.SeatToggled("rejected")
		switch {
		case errors.Is(err, session.ErrUnknownSeat):
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		case errors.Is(err, session.ErrSeatOccupied), errors.Is(err, session.ErrSelectionLimit), errors.Is(err, session.ErrWrongStep):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not toggle seat"})
		}
	}
	if wasSelected {
		monitoring.SeatToggled("deselected")
	} else {
		monitoring.SeatToggled("selected")
	}
	return c.JSON(http.StatusOK, s.Snapshot())
}

// Continue advances the session from seat selection to confirmation.
func (h *BookingSessionHandler) Continue(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	if err := s.Continue(); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, s.Snapshot())
}

// Back returns the session from confirmation to seat selection without
// losing the selection.
func (h *BookingSessionHandler) Back(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	if err := s.Back(); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, s.Snapshot())
}

// Discard drops the session.  Selected seats were never reserved, so
// nothing needs to be released.  The store's evict callback keeps the
// active-sessions gauge in step.
func (h *BookingSessionHandler) Discard(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	h.sessions.Delete(s.ID)
	return c.NoContent(http.StatusNoContent)
}

type payRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// Pay submits the confirmed selection: it persists a PENDING booking,
// runs the payment call, and resolves the booking and the session from
// the payment outcome.  While the payment call is outstanding every
// other session action is rejected, so a double submit cannot create a
// second booking.
func (h *BookingSessionHandler) Pay(c echo.Context) error {
	s, ok := h.session(c)
	if !ok {
		return nil
	}
	var req payRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.PaymentMethod) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_method is required"})
	}

	seats, total, err := s.BeginPayment()
	if err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()

	booking, err := h.createPendingBooking(ctx, s, seats, total, req.PaymentMethod)
	if err != nil {
		s.CompletePayment("", err)
		monitoring.PaymentFailed()
		return c.JSON(http.StatusConflict, echo.Map{
			"error":   err.Error(),
			"session": s.Snapshot(),
		})
	}

	res, payErr := h.processor.Process(ctx, payment.Request{
		BookingID:   booking.ID,
		AmountCents: total,
		Method:      req.PaymentMethod,
		Customer:    "user-" + strconv.FormatUint(s.UserID, 10),
	})
	if payErr != nil {
		if err := h.bookings.SetOutcome(ctx, booking.ID, model.BookingCancelled, ""); err != nil {
			log.Printf("booking: could not cancel booking %d after failed payment: %v", booking.ID, err)
		}
		s.CompletePayment("", payErr)
		monitoring.PaymentFailed()
		return c.JSON(http.StatusPaymentRequired, echo.Map{
			"error":   payErr.Error(),
			"session": s.Snapshot(),
		})
	}

	if err := h.bookings.SetOutcome(ctx, booking.ID, model.BookingConfirmed, res.Ref); err != nil {
		// The charge went through; keep the session consistent and let
		// reconciliation pick up the stuck PENDING row.
		log.Printf("booking: could not confirm booking %d: %v", booking.ID, err)
	}
	s.CompletePayment("booking-"+strconv.FormatUint(booking.ID, 10), nil)
	if inv, ok := h.occupied.(occupancyInvalidator); ok {
		inv.Invalidate(ctx, s.ShowtimeID)
	}
	monitoring.BookingConfirmed(total)
	h.publishConfirmed(booking.ID, s.UserID, s.ShowtimeID, seats, total, res.Ref)

	// The flow is terminal at SUCCEEDED; evict the session so the
	// active-sessions gauge drops and the response carries the final state.
	snap := s.Snapshot()
	h.sessions.Delete(s.ID)

	return c.JSON(http.StatusOK, echo.Map{
		"session":     snap,
		"booking_id":  booking.ID,
		"payment_ref": res.Ref,
	})
}

// createPendingBooking re-checks seat availability against confirmed
// bookings and inserts the booking and its seats in one transaction.
func (h *BookingSessionHandler) createPendingBooking(ctx context.Context, s *session.Session, seats []string, total int64, method string) (*model.Booking, error) {
	tx, err := h.bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.New("could not start booking")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	conflicts, err := h.bookings.SeatConflictsTx(ctx, tx, s.ShowtimeID, seats)
	if err != nil {
		return nil, errors.New("could not verify seat availability")
	}
	if len(conflicts) > 0 {
		return nil, fmt.Errorf("seats no longer available: %s", strings.Join(conflicts, ", "))
	}

	booking := &model.Booking{
		UserID:           s.UserID,
		ShowtimeID:       s.ShowtimeID,
		Status:           model.BookingPending,
		TotalAmountCents: total,
		PaymentMethod:    method,
	}
	if err := h.bookings.CreateTx(ctx, tx, booking); err != nil {
		return nil, errors.New("could not create booking")
	}

	rows := make([]model.BookingSeat, 0, len(seats))
	for _, id := range seats {
		rows = append(rows, model.BookingSeat{
			BookingID:  booking.ID,
			ShowtimeID: s.ShowtimeID,
			SeatLabel:  id,
			SeatType:   string(seatmap.Classify(seatmap.RowLetter(id), s.Config)),
			PriceCents: seatmap.SeatPrice(id, s.BasePriceCents, s.Config),
		})
	}
	if err := h.bookings.CreateSeatsBulkTx(ctx, tx, rows); err != nil {
		return nil, errors.New("could not record booking seats")
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.New("could not commit booking")
	}
	committed = true
	return booking, nil
}

// publishConfirmed emits the confirmation event in the background.  The
// event carries the joined showtime context; publish failures are logged
// inside the publisher and never affect the checkout response.
func (h *BookingSessionHandler) publishConfirmed(bookingID, userID, showtimeID uint64, seats []string, total int64, paymentRef string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		event := queue.BookingConfirmedEvent{
			BookingID:        bookingID,
			UserID:           userID,
			ShowtimeID:       showtimeID,
			SeatLabels:       seats,
			TotalAmountCents: total,
			PaymentRef:       paymentRef,
			ConfirmedAt:      time.Now().UTC().Format(time.RFC3339),
		}
		if d, err := h.showtimes.GetDetail(ctx, showtimeID); err == nil {
			event.MovieTitle = d.MovieTitle
			event.TheaterName = d.TheaterName
			event.RoomName = d.RoomName
			event.StartsAt = d.StartsAt
		}
		_ = queue_publisher.PublishBookingConfirmed(ctx, event)
	}()
}

// session loads the caller's session from the path parameter.  On
// failure it writes the error response itself and reports !ok, so
// handlers can simply return nil.
func (h *BookingSessionHandler) session(c echo.Context) (*session.Session, bool) {
	userID, err := getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return nil, false
	}
	s, err := h.sessions.Get(c.Param("sid"), userID)
	if err != nil {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "booking session not found"})
		return nil, false
	}
	return s, true
}
