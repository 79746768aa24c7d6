// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/financy/backend/internal/application/session"
)

// SessionStore keeps the per-client session state.
type SessionStore interface {
	// Create stores a new, empty session and returns it.
	Create(ctx context.Context) (*session.Session, error)

	// Get retrieves a session by id. Returns domainerror.ErrSessionNotFound when missing.
	Get(ctx context.Context, id string) (*session.Session, error)

	// Save replaces a stored session.
	Save(ctx context.Context, s *session.Session) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error
}
