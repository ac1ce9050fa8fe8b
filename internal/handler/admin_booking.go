package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"cinebook/internal/repository"
)

// AdminBookingHandler serves the admin booking endpoints.
type AdminBookingHandler struct {
	bookings *repository.BookingRepo
	occupied occupancyInvalidator
}

// NewAdminBookingHandler wires the admin booking endpoints.  occupied may
// be nil when the occupancy source has no cache to drop.
func NewAdminBookingHandler(bookings *repository.BookingRepo, occupied occupancyInvalidator) *AdminBookingHandler {
	return &AdminBookingHandler{bookings: bookings, occupied: occupied}
}

// List returns all bookings, newest first.
func (h *AdminBookingHandler) List(c echo.Context) error {
	details, err := h.bookings.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list bookings"})
	}
	return c.JSON(http.StatusOK, details)
}

// Get returns one booking.
func (h *AdminBookingHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	d, err := h.bookings.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load booking"})
	}
	return c.JSON(http.StatusOK, d)
}

// Cancel voids a booking and frees its seats for new sessions.
func (h *AdminBookingHandler) Cancel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	d, err := h.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load booking"})
	}
	if err := h.bookings.Cancel(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking is already cancelled"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not cancel booking"})
		}
	}
	h.invalidate(ctx, d.ShowtimeID)
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminBookingHandler) invalidate(ctx context.Context, showtimeID uint64) {
	if h.occupied != nil {
		h.occupied.Invalidate(ctx, showtimeID)
	}
}
