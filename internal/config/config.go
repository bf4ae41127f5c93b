// Package config loads runtime configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds every runtime knob. All of them have workable defaults so a
// bare `go run ./cmd/server` starts a 50-seat hall on :8080.
type Config struct {
	Env       string        // application environment ("dev", "prod")
	Port      string        // HTTP port to listen on
	SeatCount int           // number of seats created at startup
	LockTTL   time.Duration // how long an unrefreshed seat lock survives
}

// Load reads a .env file when present, then the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:       getenv("APP_ENV", "dev"),
		Port:      getenv("APP_PORT", "8080"),
		SeatCount: getint("SEAT_COUNT", 50),
		LockTTL:   time.Duration(getint("LOCK_TTL_SECONDS", 30)) * time.Second,
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		zap.L().Warn("invalid int env var, using default",
			zap.String("key", key), zap.String("value", s), zap.Int("default", fallback))
		return fallback
	}
	return n
}
