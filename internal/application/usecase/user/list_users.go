// Package user contains user and session use cases.
package user

import (
	"context"

	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/domain/entity"
)

// ListUsersOutput lists every known user ordered by id.
type ListUsersOutput struct {
	Users []*entity.User
}

// ListUsersUseCase lists the users available for login.
type ListUsersUseCase struct {
	ledger *ledger.Ledger
}

// NewListUsersUseCase creates a new ListUsersUseCase instance.
func NewListUsersUseCase(l *ledger.Ledger) *ListUsersUseCase {
	return &ListUsersUseCase{
		ledger: l,
	}
}

// Execute returns the users.
func (uc *ListUsersUseCase) Execute(ctx context.Context) (*ListUsersOutput, error) {
	return &ListUsersOutput{
		Users: uc.ledger.Users(),
	}, nil
}
