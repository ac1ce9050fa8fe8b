// Package config loads application configuration from environment
// variables.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable; strings for identifiers and secrets, ints
// for durations and costs.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	DBUser          string // database username
	DBPass          string // database password (optional)
	DBHost          string // database host address
	DBPort          string // database port number
	DBName          string // database name
	JWTSecret       string // secret used to sign JWTs
	AccessTTLMin    int    // access token time-to-live in minutes
	BcryptCost      int    // bcrypt cost for password hashing
	SessionTTLMin   int    // booking session time-to-live in minutes
	OccupancyTTLSec int    // occupied-seat cache lifetime in seconds
	OccupancySource string // occupied-seat source: "db" or "demo"
}

// Load reads configuration from environment variables.  Required
// variables are enforced by must(); missing values exit with a fatal log
// message.  TTLs and costs fall back to sensible defaults when unset.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),
		Port:            must("APP_PORT"),
		DBUser:          must("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"),
		DBHost:          must("DB_HOST"),
		DBPort:          must("DB_PORT"),
		DBName:          must("DB_NAME"),
		JWTSecret:       must("JWT_SECRET"),
		AccessTTLMin:    intOr("ACCESS_TOKEN_TTL_MIN", 30),
		BcryptCost:      intOr("BCRYPT_COST", 12),
		SessionTTLMin:   intOr("BOOKING_SESSION_TTL_MIN", 15),
		OccupancyTTLSec: intOr("OCCUPANCY_CACHE_TTL_SEC", 30),
		OccupancySource: envStr("OCCUPANCY_SOURCE", "db"),
	}
}

// must retrieves a required environment variable.  If the variable is
// unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intOr retrieves an integer environment variable with a default.
func intOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
