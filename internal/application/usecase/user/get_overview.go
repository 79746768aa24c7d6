// Package user contains user and session use cases.
package user

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/session"
	"github.com/financy/backend/internal/application/usecase/shared"
	"github.com/financy/backend/internal/domain/entity"
)

// GetOverviewInput represents the input for the user overview.
type GetOverviewInput struct {
	Session *session.Session
	AsOf    *time.Time // Optional, defaults to today
}

// GetOverviewOutput aggregates the session user's accounts.
type GetOverviewOutput struct {
	User       *entity.User
	AsOf       time.Time
	DueAmount  decimal.Decimal
	ExpenseMap map[string]decimal.Decimal
	Owned      []*entity.Account
	Shared     []*entity.Account
}

// GetOverviewUseCase computes the due amount and expense breakdown over every
// expense account the session user owns or shares.
type GetOverviewUseCase struct {
	ledger *ledger.Ledger
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(l *ledger.Ledger) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		ledger: l,
	}
}

// Execute computes the overview.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error) {
	user, err := shared.ActiveUser(uc.ledger, input.Session)
	if err != nil {
		return nil, err
	}

	asOf := uc.ledger.Today()
	if input.AsOf != nil {
		asOf = entity.TruncateDay(*input.AsOf)
	}

	accounts := uc.ledger.AccountsFor(user.ID)
	return &GetOverviewOutput{
		User:       user,
		AsOf:       asOf,
		DueAmount:  user.DueAmount(accounts, asOf),
		ExpenseMap: user.ExpenseMap(accounts, asOf),
		Owned:      uc.ledger.OwnedBy(user.ID),
		Shared:     uc.ledger.SharedWith(user.ID),
	}, nil
}
