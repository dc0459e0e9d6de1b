package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	Seed     SeedConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string // SQLite database file path
}

// SeedConfig contains settings for the taskdb seed command.
type SeedConfig struct {
	Password string // plaintext password hashed for the demo user
}

// Load loads configuration from a .env file (when present) and environment
// variables with sensible defaults. Environment variables win over .env.
func Load() (*Config, error) {
	// Best-effort: a missing .env is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "tasks.db"),
		},
		Seed: SeedConfig{
			Password: getEnv("SEED_PASSWORD", "changeme"),
		},
	}
	if cfg.Database.Path == "" {
		return nil, fmt.Errorf("DB_PATH must not be empty")
	}
	return cfg, nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, Seed: *** (masked) ***}", c.Database.Path)
}
