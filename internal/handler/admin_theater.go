package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"cinebook/internal/model"
	"cinebook/internal/repository"
	"cinebook/internal/seatmap"
)

// AdminTheaterHandler serves the admin theater and room endpoints.  Room
// layouts are validated with the seat-map rules before they are stored,
// so a row can never be both VIP and couple.
type AdminTheaterHandler struct {
	theaters *repository.TheaterRepo
}

// NewAdminTheaterHandler wires the admin theater endpoints.
func NewAdminTheaterHandler(theaters *repository.TheaterRepo) *AdminTheaterHandler {
	return &AdminTheaterHandler{theaters: theaters}
}

type theaterRequest struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
}

// Create adds a theater.
func (h *AdminTheaterHandler) Create(c echo.Context) error {
	var req theaterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	t := model.Theater{Name: req.Name, City: req.City, Address: req.Address}
	if err := h.theaters.Create(c.Request().Context(), &t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create theater"})
	}
	return c.JSON(http.StatusCreated, t)
}

// List returns all theaters.
func (h *AdminTheaterHandler) List(c echo.Context) error {
	theaters, err := h.theaters.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list theaters"})
	}
	return c.JSON(http.StatusOK, theaters)
}

// Update rewrites a theater.
func (h *AdminTheaterHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req theaterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	t := model.Theater{ID: id, Name: req.Name, City: req.City, Address: req.Address}
	if err := h.theaters.Update(c.Request().Context(), &t); err != nil {
		if errors.Is(err, repository.ErrTheaterNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theater not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update theater"})
	}
	return c.JSON(http.StatusOK, t)
}

// Delete removes a theater without rooms.
func (h *AdminTheaterHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.theaters.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrTheaterNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theater not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "theater has rooms"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete theater"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

type roomRequest struct {
	Name        string `json:"name"`
	RowCount    uint32 `json:"row_count"`
	SeatsPerRow uint32 `json:"seats_per_row"`
	VIPRows     string `json:"vip_rows"`
	CoupleRows  string `json:"couple_rows"`
	IsActive    *bool  `json:"is_active"`
}

func (r *roomRequest) apply(room *model.Room) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.RowCount == 0 || r.SeatsPerRow == 0 {
		return errors.New("row_count and seats_per_row must be positive")
	}
	cfg := seatmap.ConfigFromLayout(int(r.RowCount), int(r.SeatsPerRow), r.VIPRows, r.CoupleRows)
	if err := cfg.Validate(); err != nil {
		return err
	}
	room.Name = r.Name
	room.RowCount = r.RowCount
	room.SeatsPerRow = r.SeatsPerRow
	room.VIPRows = r.VIPRows
	room.CoupleRows = r.CoupleRows
	room.IsActive = true
	if r.IsActive != nil {
		room.IsActive = *r.IsActive
	}
	return nil
}

// CreateRoom adds a room to a theater.
func (h *AdminTheaterHandler) CreateRoom(c echo.Context) error {
	theaterID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	if _, err := h.theaters.GetByID(ctx, theaterID); err != nil {
		if errors.Is(err, repository.ErrTheaterNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theater not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load theater"})
	}
	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	room := model.Room{TheaterID: theaterID}
	if err := req.apply(&room); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.theaters.CreateRoom(ctx, &room); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create room"})
	}
	return c.JSON(http.StatusCreated, room)
}

// ListRooms returns the rooms of a theater.
func (h *AdminTheaterHandler) ListRooms(c echo.Context) error {
	theaterID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	rooms, err := h.theaters.ListRooms(c.Request().Context(), theaterID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list rooms"})
	}
	return c.JSON(http.StatusOK, rooms)
}

// UpdateRoom rewrites a room's layout.  Existing bookings keep their
// frozen seat prices; only future sessions see the new layout.
func (h *AdminTheaterHandler) UpdateRoom(c echo.Context) error {
	roomID, err := pathID(c, "room_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	existing, err := h.theaters.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load room"})
	}
	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	room := model.Room{ID: roomID, TheaterID: existing.TheaterID}
	if err := req.apply(&room); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.theaters.UpdateRoom(ctx, &room); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update room"})
	}
	return c.JSON(http.StatusOK, room)
}

// DeleteRoom removes a room without showtimes.
func (h *AdminTheaterHandler) DeleteRoom(c echo.Context) error {
	roomID, err := pathID(c, "room_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.theaters.DeleteRoom(c.Request().Context(), roomID); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room has showtimes"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete room"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
