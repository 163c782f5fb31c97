package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/nekogravitycat/smartpark-backend/internal/kv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction        bool
	ProdOrigins         string
	HTTPAddr            string
	JWTSecret           string
	JWTAccessTokenTTL   time.Duration
	AdminPasswordBcrypt string

	Store kv.Options

	LogLevel  string
	LogFormat string

	// Seed fixes the random source for reproducible demos. Zero means time-seeded.
	Seed uint64
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	cfg, err := LoadOffline()
	if err != nil {
		return nil, err
	}

	// JWT secret is required for signing tokens
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// LoadOffline is Load without the settings only the HTTP server needs,
// for CLI commands that work on the stored data directly.
func LoadOffline() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", slog.String("error", err.Error()))
	}

	cfg := &Config{}

	// Production origins, comma separated (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.JWTSecret = os.Getenv("JWT_SECRET")

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "12h").
	ttl, err := time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	// Optional bcrypt hash gating admin logins
	cfg.AdminPasswordBcrypt = os.Getenv("ADMIN_PASSWORD_BCRYPT")

	cfg.Store = kv.Options{
		Driver:      strings.ToLower(getEnv("STORE_DRIVER", kv.DriverFile)),
		Dir:         getEnv("STORE_DIR", "./data"),
		RedisURL:    getEnv("REDIS_URL", ""),
		RedisPrefix: getEnv("REDIS_KEY_PREFIX", "smartpark:"),
		DBDSN:       getEnv("DB_DSN", ""),
	}
	switch cfg.Store.Driver {
	case kv.DriverMemory, kv.DriverFile:
	case kv.DriverRedis:
		if cfg.Store.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for the redis store")
		}
	case kv.DriverPostgres:
		if cfg.Store.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required for the postgres store")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")

	seed, err := getEnvAsInt("SEED", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid SEED: %w", err)
	}
	if seed < 0 {
		return nil, fmt.Errorf("invalid SEED: must not be negative")
	}
	cfg.Seed = uint64(seed)

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}
