package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the scheduling core's runtime configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string

	// Bayesian Network persistence
	BNDataDir string

	// C6 busy-interval reference store
	BusyStorePath string

	// Redis read-through cache
	RedisURL string

	// RabbitMQ audit publisher (empty disables it; the in-process publisher is used instead)
	RabbitMQURL string

	// Suggestion-engine defaults (C7)
	DefaultPageSize    int
	DefaultHorizonDays int
	DefaultStepMinutes int
}

// Load loads configuration from environment variables, applying a .env file
// first if one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		BNDataDir:     getEnv("BN_DATA_DIR", getDefaultBNDataDir()),
		BusyStorePath: getEnv("BUSY_STORE_PATH", getDefaultBusyStorePath()),

		RedisURL:    getEnv("REDIS_URL", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		DefaultPageSize:    getIntEnv("DEFAULT_PAGE_SIZE", 10),
		DefaultHorizonDays: getIntEnv("DEFAULT_HORIZON_DAYS", 14),
		DefaultStepMinutes: getIntEnv("DEFAULT_STEP_MINUTES", 15),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// CacheEnabled reports whether a Redis URL was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// EventBusEnabled reports whether a RabbitMQ URL was configured.
func (c *Config) EventBusEnabled() bool {
	return c.RabbitMQURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDefaultBNDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chronosuggest/bn"
	}
	return home + "/.chronosuggest/bn"
}

func getDefaultBusyStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chronosuggest/busy.db"
	}
	return home + "/.chronosuggest/busy.db"
}
