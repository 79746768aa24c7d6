// Package db provides database connection and management functionality.
package db

import (
	"gorm.io/driver/postgres"

	"github.com/financy/backend/config"
)

// NewPostgresConnection creates a new PostgreSQL database connection.
func NewPostgresConnection(cfg *config.StorageConfig) (*Database, error) {
	return open(config.StoragePostgres, postgres.Open(cfg.PostgresURL), cfg)
}
