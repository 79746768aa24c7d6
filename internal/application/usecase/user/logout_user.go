// Package user contains user and session use cases.
package user

import (
	"context"
	"fmt"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/session"
	"github.com/financy/backend/internal/application/usecase/shared"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	Session *session.Session
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase clears the active user and selection of a session.
type LogoutUserUseCase struct {
	ledger       *ledger.Ledger
	sessionStore adapter.SessionStore
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(l *ledger.Ledger, sessionStore adapter.SessionStore) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		ledger:       l,
		sessionStore: sessionStore,
	}
}

// Execute performs the logout.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	if _, err := shared.ActiveUser(uc.ledger, input.Session); err != nil {
		return nil, err
	}

	if previousID, ok := input.Session.Logout(); ok {
		release(uc.ledger, previousID)
	}

	if err := uc.sessionStore.Save(ctx, input.Session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &LogoutUserOutput{
		Message: "Successfully logged out",
	}, nil
}
