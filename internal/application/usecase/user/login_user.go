// Package user contains user and session use cases.
package user

import (
	"context"
	"fmt"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/session"
	"github.com/financy/backend/internal/application/usecase/shared"
	"github.com/financy/backend/internal/domain/entity"
	domainerror "github.com/financy/backend/internal/domain/error"
)

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Session *session.Session
	UserID  uint32
}

// LoginUserOutput represents the output of user login.
type LoginUserOutput struct {
	User *entity.User
}

// LoginUserUseCase makes a user the active user of a session. Any account
// selected by the previous user is deselected.
type LoginUserUseCase struct {
	ledger       *ledger.Ledger
	sessionStore adapter.SessionStore
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(l *ledger.Ledger, sessionStore adapter.SessionStore) *LoginUserUseCase {
	return &LoginUserUseCase{
		ledger:       l,
		sessionStore: sessionStore,
	}
}

// Execute performs the login.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	if input.Session == nil {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeSessionNotFound,
			"session not found",
			domainerror.ErrSessionNotFound,
		)
	}

	user, err := shared.FindUser(uc.ledger, input.UserID)
	if err != nil {
		return nil, err
	}

	if previousID, ok := input.Session.Login(user.ID); ok {
		release(uc.ledger, previousID)
	}

	if err := uc.sessionStore.Save(ctx, input.Session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &LoginUserOutput{
		User: user,
	}, nil
}
