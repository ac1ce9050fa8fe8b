package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_USER", "cinebook")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "cinebook")
	t.Setenv("JWT_SECRET", "test-secret")

	// Optional variables: empty means unset, so defaults apply even when
	// the host environment defines them.
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("BOOKING_SESSION_TTL_MIN", "")
	t.Setenv("OCCUPANCY_CACHE_TTL_SEC", "")
	t.Setenv("OCCUPANCY_SOURCE", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := Load()
	assert.Equal(t, 30, cfg.AccessTTLMin)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 15, cfg.SessionTTLMin)
	assert.Equal(t, 30, cfg.OccupancyTTLSec)
	assert.Equal(t, "db", cfg.OccupancySource)
}

func TestLoadOccupancySourceOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OCCUPANCY_SOURCE", "demo")

	cfg := Load()
	assert.Equal(t, "demo", cfg.OccupancySource)
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	// TTL is floored to five refill intervals so buckets outlive refills.
	assert.Equal(t, 5*cfg.RefillInterval, cfg.TTL)
}
