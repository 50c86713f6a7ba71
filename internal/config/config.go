package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port       int
	LogLevel   string
	LogFormat  string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	// MergeCurrencyOnStart runs the opportunistic currency sweep once
	// after migrations.
	MergeCurrencyOnStart bool
	// SweepInterval repeats the currency sweep in the background. Zero
	// disables the periodic sweep.
	SweepInterval time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:   getEnv("LOG_LEVEL", "INFO"),
		LogFormat:  getEnv("LOG_FORMAT", "text"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "warchest"),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	mergeStr := getEnv("MERGE_CURRENCY_ON_START", "true")
	merge, err := strconv.ParseBool(mergeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid MERGE_CURRENCY_ON_START value: %w", err)
	}
	cfg.MergeCurrencyOnStart = merge

	sweepStr := getEnv("CURRENCY_SWEEP_INTERVAL", "0")
	sweep, err := time.ParseDuration(sweepStr)
	if err != nil || sweep < 0 {
		return nil, fmt.Errorf("invalid CURRENCY_SWEEP_INTERVAL value: %q", sweepStr)
	}
	cfg.SweepInterval = sweep

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
