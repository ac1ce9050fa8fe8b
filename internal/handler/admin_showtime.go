package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"cinebook/internal/model"
	"cinebook/internal/repository"
)

// AdminShowtimeHandler serves the admin showtime schedule endpoints.
type AdminShowtimeHandler struct {
	showtimes *repository.ShowtimeRepo
	movies    *repository.MovieRepo
	theaters  *repository.TheaterRepo
}

// NewAdminShowtimeHandler wires the admin showtime endpoints.
func NewAdminShowtimeHandler(showtimes *repository.ShowtimeRepo, movies *repository.MovieRepo, theaters *repository.TheaterRepo) *AdminShowtimeHandler {
	return &AdminShowtimeHandler{showtimes: showtimes, movies: movies, theaters: theaters}
}

type showtimeRequest struct {
	MovieID        uint64 `json:"movie_id"`
	RoomID         uint64 `json:"room_id"`
	StartsAt       string `json:"starts_at"` // RFC 3339
	EndsAt         string `json:"ends_at"`   // RFC 3339
	BasePriceCents int64  `json:"base_price_cents"`
	Status         string `json:"status"`
}

func (r *showtimeRequest) apply(s *model.Showtime) error {
	if r.MovieID == 0 || r.RoomID == 0 {
		return errors.New("movie_id and room_id are required")
	}
	starts, err := time.Parse(time.RFC3339, r.StartsAt)
	if err != nil {
		return errors.New("starts_at must be RFC 3339")
	}
	ends, err := time.Parse(time.RFC3339, r.EndsAt)
	if err != nil {
		return errors.New("ends_at must be RFC 3339")
	}
	if !ends.After(starts) {
		return errors.New("ends_at must be after starts_at")
	}
	if r.BasePriceCents <= 0 {
		return errors.New("base_price_cents must be positive")
	}
	status := r.Status
	if status == "" {
		status = "SCHEDULED"
	}
	switch status {
	case "SCHEDULED", "CANCELLED", "FINISHED":
	default:
		return errors.New("status must be SCHEDULED, CANCELLED or FINISHED")
	}
	s.MovieID = r.MovieID
	s.RoomID = r.RoomID
	s.StartsAt = starts.UTC()
	s.EndsAt = ends.UTC()
	s.BasePriceCents = r.BasePriceCents
	s.Status = status
	return nil
}

// checkRefs verifies the referenced movie and room exist.
func (h *AdminShowtimeHandler) checkRefs(c echo.Context, movieID, roomID uint64) error {
	ctx := c.Request().Context()
	if _, err := h.movies.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not verify movie"})
	}
	if _, err := h.theaters.GetRoom(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "room does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not verify room"})
	}
	return nil
}

// Create schedules a showtime.
func (h *AdminShowtimeHandler) Create(c echo.Context) error {
	var req showtimeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	var s model.Showtime
	if err := req.apply(&s); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.checkRefs(c, s.MovieID, s.RoomID); err != nil || c.Response().Committed {
		return err
	}
	if err := h.showtimes.Create(c.Request().Context(), &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create showtime"})
	}
	return c.JSON(http.StatusCreated, s)
}

// List returns all showtimes.
func (h *AdminShowtimeHandler) List(c echo.Context) error {
	shows, err := h.showtimes.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list showtimes"})
	}
	return c.JSON(http.StatusOK, shows)
}

// Update reschedules a showtime.
func (h *AdminShowtimeHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req showtimeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	s := model.Showtime{ID: id}
	if err := req.apply(&s); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.checkRefs(c, s.MovieID, s.RoomID); err != nil || c.Response().Committed {
		return err
	}
	if err := h.showtimes.Update(c.Request().Context(), &s); err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update showtime"})
	}
	return c.JSON(http.StatusOK, s)
}

// Delete removes a showtime without bookings.
func (h *AdminShowtimeHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.showtimes.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrShowtimeNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "showtime has bookings"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete showtime"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
