package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"cinebook/internal/occupancy"
	"cinebook/internal/repository"
	"cinebook/internal/seatmap"
)

// BrowseHandler serves the public catalogue: movies, their showtimes and
// the seat map of one showtime with current availability.
type BrowseHandler struct {
	movies    *repository.MovieRepo
	showtimes *repository.ShowtimeRepo
	occupied  occupancy.Source
}

// NewBrowseHandler wires the public browse endpoints.
func NewBrowseHandler(movies *repository.MovieRepo, showtimes *repository.ShowtimeRepo, occupied occupancy.Source) *BrowseHandler {
	return &BrowseHandler{movies: movies, showtimes: showtimes, occupied: occupied}
}

// ListMovies returns all active movies.
func (h *BrowseHandler) ListMovies(c echo.Context) error {
	movies, err := h.movies.List(c.Request().Context(), true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list movies"})
	}
	return c.JSON(http.StatusOK, movies)
}

// GetMovie returns one movie by id.
func (h *BrowseHandler) GetMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	m, err := h.movies.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load movie"})
	}
	return c.JSON(http.StatusOK, m)
}

// ListShowtimes returns the scheduled showtimes of a movie.
func (h *BrowseHandler) ListShowtimes(c echo.Context) error {
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if _, err := h.movies.GetByID(c.Request().Context(), movieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load movie"})
	}
	shows, err := h.showtimes.ListByMovie(c.Request().Context(), movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list showtimes"})
	}
	return c.JSON(http.StatusOK, shows)
}

// seatView is one seat on the rendered map.
type seatView struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	PriceCents int64  `json:"price_cents"`
	Occupied   bool   `json:"occupied"`
}

// rowView is one row of the rendered map, split at the centre aisle.
type rowView struct {
	Label string     `json:"label"`
	Type  string     `json:"type"`
	Left  []seatView `json:"left"`
	Right []seatView `json:"right"`
}

// GetShowtime returns the joined detail of one showtime together with the
// seat map and the current occupied set, so the seat-selection screen can
// render without further calls.
func (h *BrowseHandler) GetShowtime(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	d, err := h.showtimes.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load showtime"})
	}

	cfg := seatmap.ConfigFromLayout(int(d.RowCount), int(d.SeatsPerRow), d.VIPRows, d.CoupleRows)
	occupied, err := h.occupied.Load(ctx, d.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load seat availability"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"showtime": d,
		"seat_map": renderSeatMap(cfg, d.BasePriceCents, occupied),
	})
}

// renderSeatMap overlays prices and occupancy on the generated layout.
func renderSeatMap(cfg seatmap.RowConfig, baseCents int64, occupied map[string]string) []rowView {
	rows := seatmap.Build(cfg)
	out := make([]rowView, 0, len(rows))
	for _, r := range rows {
		rv := rowView{
			Label: r.Label,
			Type:  string(r.Type),
			Left:  make([]seatView, 0, len(r.Left)),
			Right: make([]seatView, 0, len(r.Right)),
		}
		for _, id := range r.Left {
			rv.Left = append(rv.Left, toSeatView(id, baseCents, cfg, occupied))
		}
		for _, id := range r.Right {
			rv.Right = append(rv.Right, toSeatView(id, baseCents, cfg, occupied))
		}
		out = append(out, rv)
	}
	return out
}

func toSeatView(id string, baseCents int64, cfg seatmap.RowConfig, occupied map[string]string) seatView {
	_, taken := occupied[id]
	return seatView{
		ID:         id,
		Type:       string(seatmap.Classify(seatmap.RowLetter(id), cfg)),
		PriceCents: seatmap.SeatPrice(id, baseCents, cfg),
		Occupied:   taken,
	}
}
