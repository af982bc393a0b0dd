// internal/config/config.go
//
// Process configuration read from the environment.
// main loads .env (godotenv) before calling Load, so values from the file and
// from the real environment are treated the same.
//
// Variables (defaults in parentheses):
//   - PORT (5175), LOG_LEVEL (info), LOG_FORMAT (json | console)
//   - DB_PATH (./data/hexsettlers.db)
//   - JWT_SECRET (dev_secret_change_me), JWT_EXPIRES_HOURS (24)
//   - CLIENT_ORIGIN (http://localhost:5173)
//   - ROOM_SEED (0 = seed every room from the clock)
//   - ACTION_TIMEOUT_SEC (10)
//   - ROOM_IDLE_MINUTES (120): rooms untouched this long are dropped

package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds every tunable of the server.
type Config struct {
	Port          string
	LogLevel      string
	LogFormat     string
	DBPath        string
	JWTSecret     string
	JWTTTL        time.Duration
	ClientOrigin  string
	RoomSeed      int64
	ActionTimeout time.Duration
	RoomIdleTTL   time.Duration
}

// Load reads the environment.
func Load() Config {
	return Config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		DBPath:        getEnv("DB_PATH", "./data/hexsettlers.db"),
		JWTSecret:     getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTTTL:        time.Duration(envInt("JWT_EXPIRES_HOURS", 24)) * time.Hour,
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		RoomSeed:      int64(envInt("ROOM_SEED", 0)),
		ActionTimeout: time.Duration(envInt("ACTION_TIMEOUT_SEC", 10)) * time.Second,
		RoomIdleTTL:   time.Duration(envInt("ROOM_IDLE_MINUTES", 120)) * time.Minute,
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses k as an int, falling back to def when unset or malformed.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
