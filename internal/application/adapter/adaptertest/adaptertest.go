// Package adaptertest provides in-memory implementations of the adapter
// interfaces for use case and ledger tests.
package adaptertest

import (
	"context"
	"slices"
	"strconv"
	"sync"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/session"
	"github.com/financy/backend/internal/domain/entity"
	domainerror "github.com/financy/backend/internal/domain/error"
)

type record interface {
	*entity.User | *entity.Account | *entity.Purchase
}

// Store is an id-keyed in-memory collection preserving insertion order.
type Store[T record] struct {
	mu       sync.Mutex
	ids      []uint32
	items    map[uint32]T
	idOf     func(T) uint32
	Err      error // Returned by every call when set
	WriteErr error // Returned by writes when set
	Writes   int
}

func newStore[T record](idOf func(T) uint32) *Store[T] {
	return &Store[T]{items: make(map[uint32]T), idOf: idOf}
}

// FindAll returns the stored items in insertion order.
func (s *Store[T]) FindAll(context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	result := make([]T, 0, len(s.ids))
	for _, id := range s.ids {
		result = append(result, s.items[id])
	}
	return result, nil
}

// NextID returns the highest id plus one, or 0 when empty.
func (s *Store[T]) NextID(context.Context) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	if len(s.ids) == 0 {
		return 0, nil
	}
	return slices.Max(s.ids) + 1, nil
}

// Save upserts an item.
func (s *Store[T]) Save(_ context.Context, item T) error {
	return s.SaveAll(context.Background(), []T{item})
}

// SaveAll upserts several items.
func (s *Store[T]) SaveAll(_ context.Context, items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeErr(); err != nil {
		return err
	}

	for _, item := range items {
		id := s.idOf(item)
		if _, ok := s.items[id]; !ok {
			s.ids = append(s.ids, id)
		}
		s.items[id] = item
	}
	s.Writes++
	return nil
}

// Delete removes an item.
func (s *Store[T]) Delete(_ context.Context, id uint32) error {
	return s.DeleteMany(context.Background(), []uint32{id})
}

// DeleteMany removes several items.
func (s *Store[T]) DeleteMany(_ context.Context, ids []uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeErr(); err != nil {
		return err
	}

	for _, id := range ids {
		delete(s.items, id)
		s.ids = slices.DeleteFunc(s.ids, func(stored uint32) bool { return stored == id })
	}
	s.Writes++
	return nil
}

func (s *Store[T]) writeErr() error {
	if s.Err != nil {
		return s.Err
	}
	return s.WriteErr
}

// Get returns the stored item with the given id.
func (s *Store[T]) Get(id uint32) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	return item, ok
}

// Len returns the number of stored items.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// NewUserStore creates an in-memory adapter.UserRepository.
func NewUserStore() *Store[*entity.User] {
	return newStore(func(u *entity.User) uint32 { return u.ID })
}

// NewAccountStore creates an in-memory adapter.AccountRepository.
func NewAccountStore() *Store[*entity.Account] {
	return newStore(func(a *entity.Account) uint32 { return a.ID })
}

// NewPurchaseStore creates an in-memory adapter.PurchaseRepository.
func NewPurchaseStore() *Store[*entity.Purchase] {
	return newStore(func(p *entity.Purchase) uint32 { return p.ID })
}

var (
	_ adapter.UserRepository     = (*Store[*entity.User])(nil)
	_ adapter.AccountRepository  = (*Store[*entity.Account])(nil)
	_ adapter.PurchaseRepository = (*Store[*entity.Purchase])(nil)
)

// SettingsStore is an in-memory adapter.SettingsRepository.
type SettingsStore struct {
	mu       sync.Mutex
	settings *entity.Settings
}

// Load returns the stored settings or the defaults.
func (s *SettingsStore) Load(context.Context) (*entity.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		return entity.DefaultSettings(), nil
	}
	copied := *s.settings
	return &copied, nil
}

// Save stores the settings.
func (s *SettingsStore) Save(_ context.Context, settings *entity.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *settings
	s.settings = &copied
	return nil
}

// SessionStore is an in-memory adapter.SessionStore with predictable ids.
type SessionStore struct {
	mu       sync.Mutex
	next     int
	sessions map[string]session.Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]session.Session)}
}

// Create stores a new session with id "session-<n>".
func (s *SessionStore) Create(context.Context) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	created := session.New("session-" + strconv.Itoa(s.next))
	s.sessions[created.ID] = *created
	return created, nil
}

// Get returns a copy of the stored session.
func (s *SessionStore) Get(_ context.Context, id string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sessions[id]
	if !ok {
		return nil, domainerror.ErrSessionNotFound
	}
	return &stored, nil
}

// Save replaces the stored session.
func (s *SessionStore) Save(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

// Delete removes the session.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Publisher records published events.
type Publisher struct {
	mu     sync.Mutex
	Events []adapter.ChangeEvent
	Err    error
}

// Publish records the event and returns Err.
func (p *Publisher) Publish(_ context.Context, event adapter.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return p.Err
}

// Close does nothing.
func (p *Publisher) Close() error {
	return nil
}

// Last returns the most recent event.
func (p *Publisher) Last() (adapter.ChangeEvent, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Events) == 0 {
		return adapter.ChangeEvent{}, false
	}
	return p.Events[len(p.Events)-1], true
}
