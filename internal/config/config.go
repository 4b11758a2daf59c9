package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the runtime configuration of the reservation backend.
type Config struct {
	HTTP struct {
		Port string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		Database string
		SSLMode  string
	}

	// Store selects the tabular store backing the intake table.
	// Options: "postgres" (default), "pebble" (embedded), "memory" (dev only).
	Store struct {
		Driver     string
		PebblePath string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	// Lock guards the duplicate-check-then-append sequence.
	// Driver "mutex" suffices for a single instance; "redis" for several.
	Lock struct {
		Driver string
		Key    string
		Wait   time.Duration
		TTL    time.Duration
	}

	Reservation struct {
		IDPrefix string
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	cfg := &Config{}

	cfg.HTTP.Port = getEnv("API_PORT", "8080")

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "jumatberkah")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Store.Driver = getEnv("STORE_DRIVER", "postgres")
	cfg.Store.PebblePath = getEnv("STORE_PEBBLE_PATH", "data/reservations")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	cfg.Lock.Driver = getEnv("LOCK_DRIVER", "mutex")
	cfg.Lock.Key = getEnv("LOCK_KEY", "jumatberkah:submit")
	cfg.Lock.Wait = time.Duration(getEnvInt("LOCK_WAIT_SECONDS", 30)) * time.Second
	cfg.Lock.TTL = time.Duration(getEnvInt("LOCK_TTL_SECONDS", 60)) * time.Second

	cfg.Reservation.IDPrefix = getEnv("RESERVATION_ID_PREFIX", "JBKNP")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

// DSN builds the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Password, c.Database.Database, c.Database.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}
