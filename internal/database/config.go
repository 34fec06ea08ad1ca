package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds storage configuration
type Config struct {
	// Path is the SQLite database file holding the blob table.
	Path string
}

// NewConfig creates a new storage configuration
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, we'll use defaults or environment variables
		fmt.Println("Warning: .env file not found")
	}

	return &Config{
		Path: getEnv("BLOB_PATH", "spendwise.db"),
	}, nil
}

// DSN returns the migrate-compatible connection string
func (c *Config) DSN() string {
	return "sqlite3://" + c.Path
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
