// Package account contains account-related use cases.
package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/session"
	"github.com/financy/backend/internal/application/usecase/shared"
	"github.com/financy/backend/internal/domain/entity"
	domainerror "github.com/financy/backend/internal/domain/error"
)

// EditAccountInput represents the input for account editing.
type EditAccountInput struct {
	Session        *session.Session
	AccountID      uint32
	Name           string
	ClosingDay     uint32
	Type           entity.AccountType
	Limit          decimal.Decimal
	PrimaryColor   string
	SecondaryColor string
}

// EditAccountOutput represents the output of account editing.
type EditAccountOutput struct {
	Account *entity.Account
}

// EditAccountUseCase handles account editing logic. Only the owner may edit.
type EditAccountUseCase struct {
	ledger      *ledger.Ledger
	accountRepo adapter.AccountRepository
	publisher   adapter.ChangePublisher
}

// NewEditAccountUseCase creates a new EditAccountUseCase instance.
func NewEditAccountUseCase(
	l *ledger.Ledger,
	accountRepo adapter.AccountRepository,
	publisher adapter.ChangePublisher,
) *EditAccountUseCase {
	return &EditAccountUseCase{
		ledger:      l,
		accountRepo: accountRepo,
		publisher:   publisher,
	}
}

// Execute performs the account edit.
func (uc *EditAccountUseCase) Execute(ctx context.Context, input EditAccountInput) (*EditAccountOutput, error) {
	user, err := shared.ActiveUser(uc.ledger, input.Session)
	if err != nil {
		return nil, err
	}

	account, err := shared.OwnedAccount(uc.ledger, user.ID, input.AccountID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeMissingAccountName,
			"account name is required",
			domainerror.ErrMissingAccountName,
		)
	}

	today := uc.ledger.Today()
	previous := account.Details()
	account.Edit(entity.AccountParams{
		Name:           input.Name,
		ClosingDay:     input.ClosingDay,
		Type:           input.Type,
		Limit:          input.Limit,
		PrimaryColor:   input.PrimaryColor,
		SecondaryColor: input.SecondaryColor,
	}, today)

	if err := uc.accountRepo.Save(ctx, account); err != nil {
		account.Edit(previous, today)
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	shared.Publish(ctx, uc.publisher, uc.ledger, adapter.ChangeEvent{
		Kind:   adapter.EntityAccount,
		Action: adapter.ActionUpdated,
		ID:     account.ID,
		UserID: user.ID,
	})

	return &EditAccountOutput{
		Account: account,
	}, nil
}
