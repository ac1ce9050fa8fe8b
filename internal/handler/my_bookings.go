package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"cinebook/internal/repository"
)

// MyBookingsHandler serves the authenticated customer's booking history.
type MyBookingsHandler struct {
	bookings *repository.BookingRepo
}

// NewMyBookingsHandler wires the customer booking endpoints.
func NewMyBookingsHandler(bookings *repository.BookingRepo) *MyBookingsHandler {
	return &MyBookingsHandler{bookings: bookings}
}

// List returns the caller's bookings, newest first.
func (h *MyBookingsHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list bookings"})
	}
	return c.JSON(http.StatusOK, details)
}

// Get returns one of the caller's bookings.
func (h *MyBookingsHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	if err := h.bookings.OwnedBy(ctx, id, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load booking"})
		}
	}
	d, err := h.bookings.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load booking"})
	}
	return c.JSON(http.StatusOK, d)
}
