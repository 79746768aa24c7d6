// Package account contains account-related use cases.
package account

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/session"
	"github.com/financy/backend/internal/application/usecase/shared"
	"github.com/financy/backend/internal/domain/entity"
)

// GetSummaryInput represents the input for an account summary.
type GetSummaryInput struct {
	Session   *session.Session
	AccountID uint32
	AsOf      *time.Time // Optional, defaults to today
}

// GetSummaryOutput holds the account totals as of a date.
type GetSummaryOutput struct {
	Account        *entity.Account
	AsOf           time.Time
	StatementDate  time.Time // Closing date of the statement covering AsOf
	DueAmount      decimal.Decimal
	Limit          decimal.Decimal
	UsedLimit      decimal.Decimal
	RemainingLimit decimal.Decimal
}

// GetSummaryUseCase computes due amount and limit usage of an account.
type GetSummaryUseCase struct {
	ledger *ledger.Ledger
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(l *ledger.Ledger) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		ledger: l,
	}
}

// Execute computes the summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	user, err := shared.ActiveUser(uc.ledger, input.Session)
	if err != nil {
		return nil, err
	}

	account, err := shared.AccessibleAccount(uc.ledger, user.ID, input.AccountID)
	if err != nil {
		return nil, err
	}

	asOf := uc.ledger.Today()
	if input.AsOf != nil {
		asOf = entity.TruncateDay(*input.AsOf)
	}

	return &GetSummaryOutput{
		Account:        account,
		AsOf:           asOf,
		StatementDate:  entity.CoveringClosingDate(asOf, account.ClosingDay()),
		DueAmount:      account.DueAmount(asOf),
		Limit:          account.Details().Limit,
		UsedLimit:      account.UsedLimit(asOf),
		RemainingLimit: account.RemainingLimit(asOf),
	}, nil
}
