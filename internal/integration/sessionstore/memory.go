// Package sessionstore implements adapter.SessionStore in memory and on redis.
package sessionstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/session"
	domainerror "github.com/financy/backend/internal/domain/error"
)

// memoryStore keeps sessions in a map. Sessions are lost on restart.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() adapter.SessionStore {
	return &memoryStore{
		sessions: make(map[string]session.Session),
	}
}

// Create stores a new logged out session.
func (s *memoryStore) Create(ctx context.Context) (*session.Session, error) {
	created := session.New(uuid.New().String())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[created.ID] = clone(created)
	return created, nil
}

// Get returns a copy of the stored session.
func (s *memoryStore) Get(ctx context.Context, id string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.sessions[id]
	if !ok {
		return nil, domainerror.ErrSessionNotFound
	}
	copied := clone(&stored)
	return &copied, nil
}

// Save replaces the stored session.
func (s *memoryStore) Save(ctx context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.ID]; !ok {
		return domainerror.ErrSessionNotFound
	}
	s.sessions[sess.ID] = clone(sess)
	return nil
}

// Delete removes the session.
func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// clone copies a session without sharing its pointer fields.
func clone(sess *session.Session) session.Session {
	copied := session.Session{ID: sess.ID}
	if userID, ok := sess.ActiveUser(); ok {
		copied.UserID = &userID
	}
	if accountID, ok := sess.SelectedAccount(); ok {
		copied.SelectedAccountID = &accountID
	}
	return copied
}
