// Package user contains user and session use cases.
package user

import (
	"context"
	"fmt"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/session"
)

// CreateSessionOutput represents a freshly created, logged out session.
type CreateSessionOutput struct {
	Session *session.Session
}

// CreateSessionUseCase opens a new client session.
type CreateSessionUseCase struct {
	sessionStore adapter.SessionStore
}

// NewCreateSessionUseCase creates a new CreateSessionUseCase instance.
func NewCreateSessionUseCase(sessionStore adapter.SessionStore) *CreateSessionUseCase {
	return &CreateSessionUseCase{
		sessionStore: sessionStore,
	}
}

// Execute creates the session.
func (uc *CreateSessionUseCase) Execute(ctx context.Context) (*CreateSessionOutput, error) {
	s, err := uc.sessionStore.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &CreateSessionOutput{
		Session: s,
	}, nil
}

// EndSessionInput represents the input for closing a session.
type EndSessionInput struct {
	Session *session.Session
}

// EndSessionUseCase closes a session, releasing the history of its selected
// account.
type EndSessionUseCase struct {
	ledger       *ledger.Ledger
	sessionStore adapter.SessionStore
}

// NewEndSessionUseCase creates a new EndSessionUseCase instance.
func NewEndSessionUseCase(l *ledger.Ledger, sessionStore adapter.SessionStore) *EndSessionUseCase {
	return &EndSessionUseCase{
		ledger:       l,
		sessionStore: sessionStore,
	}
}

// Execute removes the session.
func (uc *EndSessionUseCase) Execute(ctx context.Context, input EndSessionInput) error {
	if input.Session == nil {
		return nil
	}

	if previousID, ok := input.Session.Logout(); ok {
		release(uc.ledger, previousID)
	}

	if err := uc.sessionStore.Delete(ctx, input.Session.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// release gives up a session's hold on a no longer selected account.
func release(l *ledger.Ledger, accountID uint32) {
	if account, ok := l.Account(accountID); ok {
		account.Release()
	}
}
