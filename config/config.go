package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	DB       DBConfig
	Auth     AuthConfig
	HTTP     HTTPConfig

	SessionTTL           time.Duration
	AvailabilityInterval time.Duration
}

type DBConfig struct {
	Driver string // postgres, mysql or sqlite
	DSN    string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type HTTPConfig struct {
	CORSOrigins []string
	RateLimit   float64 // requests per second per client IP
	RateBurst   int
	LoginLimit  float64
	LoginBurst  int
}

// Load reads the environment (and .env when present) and applies defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DB: DBConfig{
			Driver: strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			DSN:    getEnv("DB_DSN", "pos.db"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getDuration("JWT_TTL", 24*time.Hour),
		},
		HTTP: HTTPConfig{
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
			RateLimit:   getFloat("RATE_LIMIT_RPS", 20),
			RateBurst:   getInt("RATE_LIMIT_BURST", 50),
			LoginLimit:  getFloat("LOGIN_LIMIT_RPS", 0.1),
			LoginBurst:  getInt("LOGIN_LIMIT_BURST", 5),
		},
		SessionTTL:           getDuration("SESSION_TTL", 30*time.Minute),
		AvailabilityInterval: getDuration("AVAILABILITY_INTERVAL", time.Minute),
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}
	switch cfg.DB.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
