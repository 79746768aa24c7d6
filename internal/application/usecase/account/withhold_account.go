// Package account contains account-related use cases.
package account

import (
	"context"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/session"
	"github.com/financy/backend/internal/application/usecase/shared"
	"github.com/financy/backend/internal/domain/entity"
	domainerror "github.com/financy/backend/internal/domain/error"
)

// WithholdAccountInput represents the input for withholding an account from a sharer.
type WithholdAccountInput struct {
	Session   *session.Session
	AccountID uint32
	UserID    uint32
}

// WithholdAccountOutput represents the output of withholding an account.
type WithholdAccountOutput struct {
	Account          *entity.Account
	RemovedPurchases int
}

// WithholdAccountUseCase removes a co-sharer and every purchase they
// contributed to the account. Only the owner may withhold.
type WithholdAccountUseCase struct {
	ledger    *ledger.Ledger
	remover   *Remover
	publisher adapter.ChangePublisher
}

// NewWithholdAccountUseCase creates a new WithholdAccountUseCase instance.
func NewWithholdAccountUseCase(
	l *ledger.Ledger,
	accountRepo adapter.AccountRepository,
	purchaseRepo adapter.PurchaseRepository,
	publisher adapter.ChangePublisher,
) *WithholdAccountUseCase {
	return &WithholdAccountUseCase{
		ledger:    l,
		remover:   NewRemover(l, accountRepo, purchaseRepo),
		publisher: publisher,
	}
}

// Execute performs the withhold.
func (uc *WithholdAccountUseCase) Execute(ctx context.Context, input WithholdAccountInput) (*WithholdAccountOutput, error) {
	user, err := shared.ActiveUser(uc.ledger, input.Session)
	if err != nil {
		return nil, err
	}

	account, err := shared.OwnedAccount(uc.ledger, user.ID, input.AccountID)
	if err != nil {
		return nil, err
	}

	if !account.IsSharingWith(input.UserID) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeNotSharing,
			"account is not shared with user",
			domainerror.ErrNotSharing,
		)
	}

	removed, err := uc.remover.Withhold(ctx, account, input.UserID)
	if err != nil {
		return nil, err
	}

	shared.Publish(ctx, uc.publisher, uc.ledger, adapter.ChangeEvent{
		Kind:   adapter.EntityAccount,
		Action: adapter.ActionWithheld,
		ID:     account.ID,
		UserID: input.UserID,
	})

	return &WithholdAccountOutput{
		Account:          account,
		RemovedPurchases: removed,
	}, nil
}
