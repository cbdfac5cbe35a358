package database

import (
	"opportunityrisks/internal/config"
)

// Config holds database configuration
type Config struct {
	Driver       string
	DSN          string
	SQLitePath   string
	MigrationURL string
}

// NewConfig derives the database configuration from the application configuration.
func NewConfig(cfg *config.Config) *Config {
	return &Config{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DSN(),
		SQLitePath:   cfg.DBPath,
		MigrationURL: cfg.MigrationURL(),
	}
}
