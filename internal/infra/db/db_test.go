package db

import (
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/financy/backend/config"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.StorageConfig{
		Driver:       config.StorageSQLite,
		SQLitePath:   filepath.Join(t.TempDir(), "financy.db"),
		MaxOpenConns: 10,
	}

	database, err := Open(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer database.Close()

	if database.Driver() != config.StorageSQLite {
		t.Errorf("expected %s, got %s", config.StorageSQLite, database.Driver())
	}
	if !database.HealthCheck() {
		t.Error("expected healthy database")
	}
}

func TestOpen_RejectsJSONDriver(t *testing.T) {
	if _, err := Open(&config.StorageConfig{Driver: config.StorageJSON}); err == nil {
		t.Error("expected error for non-SQL driver")
	}
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		url  string
	}{
		{name: "full url", url: "redis://" + mr.Addr() + "/0"},
		{name: "bare address", url: mr.Addr()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewRedisClient(&config.RedisConfig{URL: tt.url})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			client.Close()
		})
	}
}
