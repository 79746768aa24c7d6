// Package jsonstore keeps every entity kind in its own JSON file inside a data
// directory: an array of records per kind, and a single settings object.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/domain/entity"
	domainerror "github.com/financy/backend/internal/domain/error"
	"github.com/financy/backend/internal/integration/persistence/record"
)

// NewUserRepository creates a user repository over Users.json.
func NewUserRepository(store *Store) adapter.UserRepository {
	return &collection[*entity.User]{
		store:  store,
		file:   UsersFile,
		decode: record.DecodeUser,
		encode: record.EncodeUser,
		idOf:   func(u *entity.User) uint32 { return u.ID },
	}
}

// NewAccountRepository creates an account repository over Accounts.json.
func NewAccountRepository(store *Store) adapter.AccountRepository {
	return &collection[*entity.Account]{
		store:  store,
		file:   AccountsFile,
		decode: record.DecodeAccount,
		encode: record.EncodeAccount,
		idOf:   func(a *entity.Account) uint32 { return a.ID },
	}
}

// NewPurchaseRepository creates a purchase repository over Purchases.json.
// The clock supplies the date of records stored without one.
func NewPurchaseRepository(store *Store, clock adapter.Clock) adapter.PurchaseRepository {
	return &collection[*entity.Purchase]{
		store: store,
		file:  PurchasesFile,
		decode: func(data []byte) (*entity.Purchase, error) {
			return record.DecodePurchase(data, entity.TruncateDay(clock.Now()))
		},
		encode: record.EncodePurchase,
		idOf:   func(p *entity.Purchase) uint32 { return p.ID },
	}
}

// settingsRepository implements adapter.SettingsRepository over Settings.json.
type settingsRepository struct {
	store *Store
}

// NewSettingsRepository creates a settings repository over Settings.json.
func NewSettingsRepository(store *Store) adapter.SettingsRepository {
	return &settingsRepository{
		store: store,
	}
}

// Load returns the stored settings, or the defaults when the file is missing.
func (r *settingsRepository) Load(ctx context.Context) (*entity.Settings, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	data, err := r.store.read(SettingsFile)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return entity.DefaultSettings(), nil
	}

	settings, err := record.DecodeSettings(data)
	if err != nil {
		return nil, domainerror.NewStorageReadError(SettingsFile, err)
	}
	return settings, nil
}

// Save replaces the settings file.
func (r *settingsRepository) Save(ctx context.Context, settings *entity.Settings) error {
	if settings == nil {
		return errors.New("settings cannot be nil")
	}

	data, err := record.EncodeSettings(settings)
	if err != nil {
		return domainerror.NewStorageWriteError(SettingsFile, err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.writeValue(SettingsFile, json.RawMessage(data))
}
