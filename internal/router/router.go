// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cinebook/internal/handler"
	"cinebook/internal/middleware"
	"cinebook/internal/model"
)

// RegisterRoutes registers routes that do not require authentication and
// are not part of the public catalogue: the health check used by load
// balancers and the Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers registration, login and the current-user
// endpoint.  Register and login live under /v1/auth and need no token;
// /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints: the
// movie catalogue, each movie's showtimes and the seat map of a
// showtime.  Guests can explore everything here before signing in.
func RegisterPublic(e *echo.Echo, b *handler.BrowseHandler) {
	e.GET("/v1/movies", b.ListMovies)
	e.GET("/v1/movies/:id", b.GetMovie)
	e.GET("/v1/movies/:id/showtimes", b.ListShowtimes)
	e.GET("/v1/showtimes/:id", b.GetShowtime)
}

// RegisterBooking registers the booking session flow and the customer's
// booking history.  All routes require authentication; the interactive
// session routes additionally pass through the rate limiter so one
// client cannot hammer seat toggles.
func RegisterBooking(e *echo.Echo, bs *handler.BookingSessionHandler, mb *handler.MyBookingsHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(limiter)

	// Session lifecycle: open against a showtime, then drive by session id.
	g.POST("/showtimes/:id/session", bs.Open)
	g.GET("/sessions/:sid", bs.Get)
	g.POST("/sessions/:sid/toggle", bs.Toggle)
	g.POST("/sessions/:sid/continue", bs.Continue)
	g.POST("/sessions/:sid/back", bs.Back)
	g.POST("/sessions/:sid/pay", bs.Pay)
	g.DELETE("/sessions/:sid", bs.Discard)

	// Booking history for the authenticated customer.
	g.GET("/bookings", mb.List)
	g.GET("/bookings/:id", mb.Get)
}

// RegisterAdmin registers the management endpoints.  Every route requires
// a valid token carrying the ADMIN role.
func RegisterAdmin(
	e *echo.Echo,
	movies *handler.AdminMovieHandler,
	theaters *handler.AdminTheaterHandler,
	showtimes *handler.AdminShowtimeHandler,
	users *handler.AdminUserHandler,
	bookings *handler.AdminBookingHandler,
	jwtSecret string,
) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))

	g.POST("/movies", movies.Create)
	g.GET("/movies", movies.List)
	g.PUT("/movies/:id", movies.Update)
	g.DELETE("/movies/:id", movies.Delete)

	g.POST("/theaters", theaters.Create)
	g.GET("/theaters", theaters.List)
	g.PUT("/theaters/:id", theaters.Update)
	g.DELETE("/theaters/:id", theaters.Delete)
	g.POST("/theaters/:id/rooms", theaters.CreateRoom)
	g.GET("/theaters/:id/rooms", theaters.ListRooms)
	g.PUT("/rooms/:room_id", theaters.UpdateRoom)
	g.DELETE("/rooms/:room_id", theaters.DeleteRoom)

	g.POST("/showtimes", showtimes.Create)
	g.GET("/showtimes", showtimes.List)
	g.PUT("/showtimes/:id", showtimes.Update)
	g.DELETE("/showtimes/:id", showtimes.Delete)

	g.GET("/users", users.List)
	g.PUT("/users/:id", users.Update)
	g.DELETE("/users/:id", users.Delete)

	g.GET("/bookings", bookings.List)
	g.GET("/bookings/:id", bookings.Get)
	g.POST("/bookings/:id/cancel", bookings.Cancel)
}
