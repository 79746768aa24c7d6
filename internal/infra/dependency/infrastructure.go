// Package dependency provides dependency injection for the application.
package dependency

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/financy/backend/config"
	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/infra/db"
	"github.com/financy/backend/internal/integration/events"
	"github.com/financy/backend/internal/integration/persistence"
	"github.com/financy/backend/internal/integration/persistence/jsonstore"
	"github.com/financy/backend/internal/integration/sessionstore"
)

// Infrastructure holds the storage, session and event adapters the
// application runs on.
type Infrastructure struct {
	Users     adapter.UserRepository
	Accounts  adapter.AccountRepository
	Purchases adapter.PurchaseRepository
	Settings  adapter.SettingsRepository
	Sessions  adapter.SessionStore
	Publisher adapter.ChangePublisher
	Clock     adapter.Clock

	Driver  string
	Healthy func() bool

	closers []func() error
}

// NewInfrastructure connects the adapters selected by cfg.
func NewInfrastructure(cfg *config.Config) (*Infrastructure, error) {
	infra := &Infrastructure{
		Clock:  adapter.SystemClock{},
		Driver: cfg.Storage.Driver,
	}

	if err := infra.connectStorage(cfg); err != nil {
		infra.Close()
		return nil, err
	}

	if cfg.Redis.URL != "" {
		client, err := db.NewRedisClient(&cfg.Redis)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.Sessions = sessionstore.NewRedisStore(client, cfg.Redis.SessionTTL)
		infra.closers = append(infra.closers, client.Close)
	} else {
		slog.Info("REDIS_URL not set, keeping sessions in memory")
		infra.Sessions = sessionstore.NewMemoryStore()
	}

	if cfg.AMQP.URL != "" {
		publisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.RoutingPrefix)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.Publisher = publisher
	} else {
		slog.Info("AMQP_URL not set, change events are dropped")
		infra.Publisher = events.NewNoopPublisher()
	}
	infra.closers = append(infra.closers, infra.Publisher.Close)

	return infra, nil
}

func (i *Infrastructure) connectStorage(cfg *config.Config) error {
	if cfg.Storage.Driver == config.StorageJSON {
		store, err := jsonstore.New(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open data directory: %w", err)
		}
		i.UseJSONStore(store)
		slog.Info("Using JSON file storage", "dir", store.Dir())
		return nil
	}

	database, err := db.Open(&cfg.Storage)
	if err != nil {
		return err
	}
	i.closers = append(i.closers, database.Close)

	if err := persistence.AutoMigrate(database.DB()); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	slog.Info("Database migrations completed successfully")

	i.Users = persistence.NewUserRepository(database.DB())
	i.Accounts = persistence.NewAccountRepository(database.DB())
	i.Purchases = persistence.NewPurchaseRepository(database.DB())
	i.Settings = persistence.NewSettingsRepository(database.DB())
	i.Healthy = database.HealthCheck
	return nil
}

// UseJSONStore points every repository at the JSON files of store.
func (i *Infrastructure) UseJSONStore(store *jsonstore.Store) {
	clock := i.Clock
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	i.Users = jsonstore.NewUserRepository(store)
	i.Accounts = jsonstore.NewAccountRepository(store)
	i.Purchases = jsonstore.NewPurchaseRepository(store, clock)
	i.Settings = jsonstore.NewSettingsRepository(store)
	i.Driver = config.StorageJSON
	i.Healthy = store.Healthy
}

// Close releases every connection, newest first.
func (i *Infrastructure) Close() error {
	var errs []error
	for n := len(i.closers) - 1; n >= 0; n-- {
		if err := i.closers[n](); err != nil {
			errs = append(errs, err)
		}
	}
	i.closers = nil
	return errors.Join(errs...)
}
