// Package user contains user and session use cases.
package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/usecase/shared"
	"github.com/financy/backend/internal/domain/entity"
	domainerror "github.com/financy/backend/internal/domain/error"
)

// EditUserInput represents the input for editing a user profile.
type EditUserInput struct {
	UserID uint32
	CreateUserInput
}

// EditUserOutput represents the output of editing a user profile.
type EditUserOutput struct {
	User *entity.User
}

// EditUserUseCase replaces the profile fields of a user.
type EditUserUseCase struct {
	ledger    *ledger.Ledger
	userRepo  adapter.UserRepository
	publisher adapter.ChangePublisher
}

// NewEditUserUseCase creates a new EditUserUseCase instance.
func NewEditUserUseCase(
	l *ledger.Ledger,
	userRepo adapter.UserRepository,
	publisher adapter.ChangePublisher,
) *EditUserUseCase {
	return &EditUserUseCase{
		ledger:    l,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// Execute performs the edit.
func (uc *EditUserUseCase) Execute(ctx context.Context, input EditUserInput) (*EditUserOutput, error) {
	user, err := shared.FindUser(uc.ledger, input.UserID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.FirstName) == "" {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeMissingFirstName,
			"first name is required",
			domainerror.ErrMissingFirstName,
		)
	}

	// Registered users are shared across requests; edit a copy and swap it in.
	edited := *user
	edited.Edit(paramsOf(input.CreateUserInput))
	user = &edited

	if err := uc.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	uc.ledger.AddUser(user)

	shared.Publish(ctx, uc.publisher, uc.ledger, adapter.ChangeEvent{
		Kind:   adapter.EntityUser,
		Action: adapter.ActionUpdated,
		ID:     user.ID,
		UserID: user.ID,
	})

	return &EditUserOutput{
		User: user,
	}, nil
}
