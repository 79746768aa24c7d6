// Package db provides database connection and management functionality.
package db

import (
	"github.com/glebarez/sqlite"

	"github.com/financy/backend/config"
)

// NewSQLiteConnection opens the SQLite file at cfg.SQLitePath. SQLite allows
// a single writer, so the pool is capped at one connection.
func NewSQLiteConnection(cfg *config.StorageConfig) (*Database, error) {
	sqliteCfg := *cfg
	sqliteCfg.MaxOpenConns = 1
	sqliteCfg.MaxIdleConns = 1
	return open(config.StorageSQLite, sqlite.Open(cfg.SQLitePath), &sqliteCfg)
}
