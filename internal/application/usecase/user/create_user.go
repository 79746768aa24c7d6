// Package user contains user and session use cases.
package user

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/usecase/shared"
	"github.com/financy/backend/internal/domain/entity"
	domainerror "github.com/financy/backend/internal/domain/error"
)

// CreateUserInput represents the input for user creation.
type CreateUserInput struct {
	FirstName      string
	LastName       string
	Picture        string // Optional base64 data URL
	PrimaryColor   string // Optional
	SecondaryColor string // Optional
}

// CreateUserOutput represents the output of user creation.
type CreateUserOutput struct {
	User *entity.User
}

// CreateUserUseCase handles user creation logic.
type CreateUserUseCase struct {
	ledger    *ledger.Ledger
	userRepo  adapter.UserRepository
	publisher adapter.ChangePublisher

	mu sync.Mutex // Serializes id allocation
}

// NewCreateUserUseCase creates a new CreateUserUseCase instance.
func NewCreateUserUseCase(
	l *ledger.Ledger,
	userRepo adapter.UserRepository,
	publisher adapter.ChangePublisher,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		ledger:    l,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// Execute performs the user creation.
func (uc *CreateUserUseCase) Execute(ctx context.Context, input CreateUserInput) (*CreateUserOutput, error) {
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeMissingFirstName,
			"first name is required",
			domainerror.ErrMissingFirstName,
		)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	id, err := uc.userRepo.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate user id: %w", err)
	}

	user := entity.NewUser(id, paramsOf(input))
	if err := uc.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	uc.ledger.AddUser(user)

	shared.Publish(ctx, uc.publisher, uc.ledger, adapter.ChangeEvent{
		Kind:   adapter.EntityUser,
		Action: adapter.ActionCreated,
		ID:     user.ID,
		UserID: user.ID,
	})

	return &CreateUserOutput{
		User: user,
	}, nil
}

func paramsOf(input CreateUserInput) entity.UserParams {
	return entity.UserParams{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Picture:        input.Picture,
		PrimaryColor:   input.PrimaryColor,
		SecondaryColor: input.SecondaryColor,
	}
}
