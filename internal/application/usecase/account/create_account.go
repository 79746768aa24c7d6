// Package account contains account-related use cases.
package account

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/session"
	"github.com/financy/backend/internal/application/usecase/shared"
	"github.com/financy/backend/internal/domain/entity"
	domainerror "github.com/financy/backend/internal/domain/error"
)

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	Session        *session.Session
	Name           string
	ClosingDay     uint32
	Type           entity.AccountType
	Limit          decimal.Decimal
	PrimaryColor   string // Optional
	SecondaryColor string // Optional
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *entity.Account
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	ledger      *ledger.Ledger
	accountRepo adapter.AccountRepository
	publisher   adapter.ChangePublisher

	mu sync.Mutex // Serializes id allocation
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(
	l *ledger.Ledger,
	accountRepo adapter.AccountRepository,
	publisher adapter.ChangePublisher,
) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		ledger:      l,
		accountRepo: accountRepo,
		publisher:   publisher,
	}
}

// Execute performs the account creation. The session user becomes the owner.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	user, err := shared.ActiveUser(uc.ledger, input.Session)
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

	uc.mu.Lock()
	defer uc.mu.Unlock()

	id, err := uc.accountRepo.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate account id: %w", err)
	}

	account := entity.NewAccount(id, user.ID, entity.AccountParams{
		Name:           input.Name,
		ClosingDay:     input.ClosingDay,
		Type:           input.Type,
		Limit:          input.Limit,
		PrimaryColor:   input.PrimaryColor,
		SecondaryColor: input.SecondaryColor,
	})

	if err := uc.accountRepo.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	uc.ledger.AddAccount(account)

	shared.Publish(ctx, uc.publisher, uc.ledger, adapter.ChangeEvent{
		Kind:   adapter.EntityAccount,
		Action: adapter.ActionCreated,
		ID:     account.ID,
		UserID: user.ID,
	})

	return &CreateAccountOutput{
		Account: account,
	}, nil
}
