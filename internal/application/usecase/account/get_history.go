// Package account contains account-related use cases.
package account

import (
	"context"

	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/session"
	"github.com/financy/backend/internal/application/usecase/shared"
	"github.com/financy/backend/internal/domain/entity"
)

// GetHistoryInput represents the input for reading an account's statements.
type GetHistoryInput struct {
	Session   *session.Session
	AccountID uint32
}

// GetHistoryOutput represents the statement history of an account.
type GetHistoryOutput struct {
	Account    *entity.Account
	Statements []*entity.Statement
	// Current is the statement whose cycle contains today, if any.
	Current *entity.Statement
}

// GetHistoryUseCase returns the statement history, rebuilding it when it was
// released.
type GetHistoryUseCase struct {
	ledger *ledger.Ledger
}

// NewGetHistoryUseCase creates a new GetHistoryUseCase instance.
func NewGetHistoryUseCase(l *ledger.Ledger) *GetHistoryUseCase {
	return &GetHistoryUseCase{
		ledger: l,
	}
}

// Execute returns the history.
func (uc *GetHistoryUseCase) Execute(ctx context.Context, input GetHistoryInput) (*GetHistoryOutput, error) {
	user, err := shared.ActiveUser(uc.ledger, input.Session)
	if err != nil {
		return nil, err
	}

	account, err := shared.AccessibleAccount(uc.ledger, user.ID, input.AccountID)
	if err != nil {
		return nil, err
	}

	today := uc.ledger.Today()
	if !account.HasHistory() {
		account.RefreshHistory(today)
	}

	output := &GetHistoryOutput{
		Account:    account,
		Statements: account.History(),
	}
	if current, ok := account.StatementAt(today); ok {
		output.Current = current
	}
	return output, nil
}
