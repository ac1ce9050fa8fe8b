package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"cinebook/internal/config"
	"cinebook/internal/database"
	"cinebook/internal/handler"
	"cinebook/internal/middleware"
	"cinebook/internal/monitoring"
	"cinebook/internal/occupancy"
	"cinebook/internal/payment"
	"cinebook/internal/queue"
	"cinebook/internal/repository"
	"cinebook/internal/router"
	"cinebook/internal/seatmap"
	"cinebook/internal/session"
)

func main() {
	// Load .env when present; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Redis is optional: a nil client disables the rate limiter and the
	// occupied-seat cache, everything else keeps working.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and occupancy cache disabled")
	}

	movieRepo := repository.NewMovieRepo(db)
	theaterRepo := repository.NewTheaterRepo(db)
	showtimeRepo := repository.NewShowtimeRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	userRepo := repository.NewUserRepo(db)

	// The occupancy store stays wired even in demo mode so admin booking
	// cancellations can always drop the cache.
	occupancyStore := occupancy.NewStore(bookingRepo, rdb, time.Duration(cfg.OccupancyTTLSec)*time.Second)
	var occupied occupancy.Source = occupancyStore
	if strings.EqualFold(cfg.OccupancySource, "demo") {
		log.Println("occupancy: demo source enabled, seat maps use the simulated pattern")
		occupied = occupancy.Demo{Config: seatmap.DefaultConfig()}
	}

	sessions := session.NewStore(time.Duration(cfg.SessionTTLMin) * time.Minute)
	sessions.OnEvict(monitoring.SessionClosed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sessions.StartSweeper(ctx, time.Minute)

	// Consume booking confirmations in the background; the consumer
	// reconnects on its own when the broker is unavailable.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()

	authHandler := handler.NewAuthHandler(userRepo, cfg)
	browseHandler := handler.NewBrowseHandler(movieRepo, showtimeRepo, occupied)
	sessionHandler := handler.NewBookingSessionHandler(sessions, showtimeRepo, bookingRepo, occupied, payment.Simulator{})
	myBookingsHandler := handler.NewMyBookingsHandler(bookingRepo)
	adminMovies := handler.NewAdminMovieHandler(movieRepo)
	adminTheaters := handler.NewAdminTheaterHandler(theaterRepo)
	adminShowtimes := handler.NewAdminShowtimeHandler(showtimeRepo, movieRepo, theaterRepo)
	adminUsers := handler.NewAdminUserHandler(userRepo, cfg)
	adminBookings := handler.NewAdminBookingHandler(bookingRepo, occupancyStore)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, browseHandler)
	router.RegisterBooking(e, sessionHandler, myBookingsHandler, cfg.JWTSecret, limiter)
	router.RegisterAdmin(e, adminMovies, adminTheaters, adminShowtimes, adminUsers, adminBookings, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
