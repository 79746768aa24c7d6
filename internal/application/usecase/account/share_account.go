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

// ShareAccountInput represents the input for sharing an account.
type ShareAccountInput struct {
	Session   *session.Session
	AccountID uint32
	UserID    uint32
}

// ShareAccountOutput represents the output of sharing an account.
type ShareAccountOutput struct {
	Account *entity.Account
}

// ShareAccountUseCase adds a co-sharer to an account. Only the owner may share.
type ShareAccountUseCase struct {
	ledger      *ledger.Ledger
	accountRepo adapter.AccountRepository
	publisher   adapter.ChangePublisher
}

// NewShareAccountUseCase creates a new ShareAccountUseCase instance.
func NewShareAccountUseCase(
	l *ledger.Ledger,
	accountRepo adapter.AccountRepository,
	publisher adapter.ChangePublisher,
) *ShareAccountUseCase {
	return &ShareAccountUseCase{
		ledger:      l,
		accountRepo: accountRepo,
		publisher:   publisher,
	}
}

// Execute performs the share.
func (uc *ShareAccountUseCase) Execute(ctx context.Context, input ShareAccountInput) (*ShareAccountOutput, error) {
	user, err := shared.ActiveUser(uc.ledger, input.Session)
	if err != nil {
		return nil, err
	}

	account, err := shared.OwnedAccount(uc.ledger, user.ID, input.AccountID)
	if err != nil {
		return nil, err
	}

	if _, ok := uc.ledger.User(input.UserID); !ok {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeShareUserNotFound,
			"user to share with not found",
			domainerror.ErrUserNotFound,
		)
	}

	if account.IsOwnedBy(input.UserID) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeCannotShareWithOwner,
			"cannot share an account with its owner",
			domainerror.ErrCannotShareWithOwner,
		)
	}

	if !account.ShareWith(input.UserID) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAlreadySharing,
			"account is already shared with user",
			domainerror.ErrAlreadySharing,
		)
	}

	if err := uc.accountRepo.Save(ctx, account); err != nil {
		account.WithholdFrom(input.UserID, uc.ledger.Today())
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	shared.Publish(ctx, uc.publisher, uc.ledger, adapter.ChangeEvent{
		Kind:   adapter.EntityAccount,
		Action: adapter.ActionShared,
		ID:     account.ID,
		UserID: input.UserID,
	})

	return &ShareAccountOutput{
		Account: account,
	}, nil
}
