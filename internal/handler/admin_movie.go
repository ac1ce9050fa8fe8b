package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"cinebook/internal/model"
	"cinebook/internal/repository"
)

// AdminMovieHandler serves the admin movie catalogue endpoints.
type AdminMovieHandler struct {
	movies *repository.MovieRepo
}

// NewAdminMovieHandler wires the admin movie endpoints.
func NewAdminMovieHandler(movies *repository.MovieRepo) *AdminMovieHandler {
	return &AdminMovieHandler{movies: movies}
}

type movieRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	DurationMin uint32 `json:"duration_min"`
	Rating      string `json:"rating"`
	PosterURL   string `json:"poster_url"`
	ReleaseDate string `json:"release_date"` // YYYY-MM-DD
	IsActive    *bool  `json:"is_active"`
}

func (r *movieRequest) apply(m *model.Movie) error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return errors.New("title is required")
	}
	if r.DurationMin == 0 {
		return errors.New("duration_min must be positive")
	}
	release, err := time.Parse("2006-01-02", r.ReleaseDate)
	if err != nil {
		return errors.New("release_date must be YYYY-MM-DD")
	}
	m.Title = r.Title
	m.Description = r.Description
	m.Genre = r.Genre
	m.DurationMin = r.DurationMin
	m.Rating = r.Rating
	m.PosterURL = r.PosterURL
	m.ReleaseDate = release
	m.IsActive = true
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return nil
}

// Create adds a movie to the catalogue.
func (h *AdminMovieHandler) Create(c echo.Context) error {
	var req movieRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	var m model.Movie
	if err := req.apply(&m); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.movies.Create(c.Request().Context(), &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create movie"})
	}
	return c.JSON(http.StatusCreated, m)
}

// List returns all movies, inactive ones included.
func (h *AdminMovieHandler) List(c echo.Context) error {
	movies, err := h.movies.List(c.Request().Context(), false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list movies"})
	}
	return c.JSON(http.StatusOK, movies)
}

// Update rewrites a movie.
func (h *AdminMovieHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req movieRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	m := model.Movie{ID: id}
	if err := req.apply(&m); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.movies.Update(c.Request().Context(), &m); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update movie"})
	}
	return c.JSON(http.StatusOK, m)
}

// Delete removes a movie without showtimes.
func (h *AdminMovieHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.movies.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrMovieNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "movie has showtimes"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete movie"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
