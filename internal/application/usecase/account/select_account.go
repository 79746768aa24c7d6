// Package account contains account-related use cases.
package account

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

// SelectAccountInput represents the input for selecting an account.
type SelectAccountInput struct {
	Session   *session.Session
	AccountID uint32
}

// SelectAccountOutput represents the output of selecting an account.
type SelectAccountOutput struct {
	Account *entity.Account
	History []*entity.Statement
	// Current is the statement whose cycle contains today, if any.
	Current *entity.Statement
}

// SelectAccountUseCase marks an account as selected for detailed viewing and
// populates its history. A previously selected account is deselected first
// and released; its history is dropped once no other session holds it.
type SelectAccountUseCase struct {
	ledger       *ledger.Ledger
	sessionStore adapter.SessionStore
}

// NewSelectAccountUseCase creates a new SelectAccountUseCase instance.
func NewSelectAccountUseCase(l *ledger.Ledger, sessionStore adapter.SessionStore) *SelectAccountUseCase {
	return &SelectAccountUseCase{
		ledger:       l,
		sessionStore: sessionStore,
	}
}

// Execute performs the selection.
func (uc *SelectAccountUseCase) Execute(ctx context.Context, input SelectAccountInput) (*SelectAccountOutput, error) {
	user, err := shared.ActiveUser(uc.ledger, input.Session)
	if err != nil {
		return nil, err
	}

	account, err := shared.AccessibleAccount(uc.ledger, user.ID, input.AccountID)
	if err != nil {
		return nil, err
	}

	selected, hadSelection := input.Session.SelectedAccount()
	if previousID, ok := input.Session.Select(account.ID); ok {
		release(uc.ledger, previousID)
	}
	today := uc.ledger.Today()
	if hadSelection && selected == account.ID {
		account.RefreshHistory(today)
	} else {
		account.Hold(today)
	}

	if err := uc.sessionStore.Save(ctx, input.Session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	output := &SelectAccountOutput{
		Account: account,
		History: account.History(),
	}
	if current, ok := account.StatementAt(today); ok {
		output.Current = current
	}
	return output, nil
}

// DeselectAccountInput represents the input for deselecting the selected account.
type DeselectAccountInput struct {
	Session *session.Session
}

// DeselectAccountOutput represents the output of deselecting an account.
type DeselectAccountOutput struct {
	AccountID uint32
}

// DeselectAccountUseCase clears the selection and releases the history.
type DeselectAccountUseCase struct {
	ledger       *ledger.Ledger
	sessionStore adapter.SessionStore
}

// NewDeselectAccountUseCase creates a new DeselectAccountUseCase instance.
func NewDeselectAccountUseCase(l *ledger.Ledger, sessionStore adapter.SessionStore) *DeselectAccountUseCase {
	return &DeselectAccountUseCase{
		ledger:       l,
		sessionStore: sessionStore,
	}
}

// Execute performs the deselection.
func (uc *DeselectAccountUseCase) Execute(ctx context.Context, input DeselectAccountInput) (*DeselectAccountOutput, error) {
	if _, err := shared.ActiveUser(uc.ledger, input.Session); err != nil {
		return nil, err
	}

	previousID, ok := input.Session.Deselect()
	if !ok {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeNoAccountSelected,
			"no account selected",
			domainerror.ErrNoAccountSelected,
		)
	}
	release(uc.ledger, previousID)

	if err := uc.sessionStore.Save(ctx, input.Session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &DeselectAccountOutput{
		AccountID: previousID,
	}, nil
}

// release gives up a session's hold on a no longer selected account.
func release(l *ledger.Ledger, accountID uint32) {
	if account, ok := l.Account(accountID); ok {
		account.Release()
	}
}
