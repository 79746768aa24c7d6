// Package account contains account-related use cases.
package account

import (
	"context"

	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/session"
	"github.com/financy/backend/internal/application/usecase/shared"
	"github.com/financy/backend/internal/domain/entity"
)

// ListAccountsInput represents the input for listing accounts.
type ListAccountsInput struct {
	Session *session.Session
}

// ListAccountsOutput lists the accounts visible to the session user.
type ListAccountsOutput struct {
	Owned  []*entity.Account
	Shared []*entity.Account
}

// ListAccountsUseCase lists the accounts the session user owns or shares.
type ListAccountsUseCase struct {
	ledger *ledger.Ledger
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(l *ledger.Ledger) *ListAccountsUseCase {
	return &ListAccountsUseCase{
		ledger: l,
	}
}

// Execute lists the accounts.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, input ListAccountsInput) (*ListAccountsOutput, error) {
	user, err := shared.ActiveUser(uc.ledger, input.Session)
	if err != nil {
		return nil, err
	}

	return &ListAccountsOutput{
		Owned:  uc.ledger.OwnedBy(user.ID),
		Shared: uc.ledger.SharedWith(user.ID),
	}, nil
}
