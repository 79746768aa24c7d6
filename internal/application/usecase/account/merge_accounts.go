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

// MergeAccountsInput represents the input for merging two accounts.
type MergeAccountsInput struct {
	Session  *session.Session
	SourceID uint32
	TargetID uint32
}

// MergeAccountsOutput represents the output of merging two accounts.
type MergeAccountsOutput struct {
	Target         *entity.Account
	MovedPurchases int
}

// MergeAccountsUseCase moves every purchase of a source account into a target
// account and deletes the source. The source must be owned by the session
// user; the target only needs to be accessible.
type MergeAccountsUseCase struct {
	ledger       *ledger.Ledger
	accountRepo  adapter.AccountRepository
	purchaseRepo adapter.PurchaseRepository
	sessionStore adapter.SessionStore
	publisher    adapter.ChangePublisher
}

// NewMergeAccountsUseCase creates a new MergeAccountsUseCase instance.
func NewMergeAccountsUseCase(
	l *ledger.Ledger,
	accountRepo adapter.AccountRepository,
	purchaseRepo adapter.PurchaseRepository,
	sessionStore adapter.SessionStore,
	publisher adapter.ChangePublisher,
) *MergeAccountsUseCase {
	return &MergeAccountsUseCase{
		ledger:       l,
		accountRepo:  accountRepo,
		purchaseRepo: purchaseRepo,
		sessionStore: sessionStore,
		publisher:    publisher,
	}
}

// Execute performs the merge.
func (uc *MergeAccountsUseCase) Execute(ctx context.Context, input MergeAccountsInput) (*MergeAccountsOutput, error) {
	user, err := shared.ActiveUser(uc.ledger, input.Session)
	if err != nil {
		return nil, err
	}

	if input.SourceID == input.TargetID {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeMergeSameAccount,
			"cannot merge an account into itself",
			domainerror.ErrMergeSameAccount,
		)
	}

	source, err := shared.OwnedAccount(uc.ledger, user.ID, input.SourceID)
	if err != nil {
		return nil, err
	}

	target, err := shared.AccessibleAccount(uc.ledger, user.ID, input.TargetID)
	if err != nil {
		return nil, err
	}

	today := uc.ledger.Today()
	moved := source.TakePurchases()
	target.AddPurchases(moved, today)

	if len(moved) > 0 {
		if err := uc.purchaseRepo.SaveAll(ctx, moved); err != nil {
			for _, purchase := range moved {
				target.RemovePurchase(purchase.ID, today)
			}
			source.AddPurchases(moved, today)
			return nil, fmt.Errorf("failed to move purchases: %w", err)
		}
	}

	if err := uc.accountRepo.Delete(ctx, source.ID); err != nil {
		return nil, fmt.Errorf("failed to delete merged account: %w", err)
	}
	uc.ledger.RemoveAccount(source.ID)

	if selected, ok := input.Session.SelectedAccount(); ok && selected == source.ID {
		input.Session.Deselect()
		if err := uc.sessionStore.Save(ctx, input.Session); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
	}

	shared.Publish(ctx, uc.publisher, uc.ledger, adapter.ChangeEvent{
		Kind:   adapter.EntityAccount,
		Action: adapter.ActionMerged,
		ID:     target.ID,
		UserID: user.ID,
	})

	return &MergeAccountsOutput{
		Target:         target,
		MovedPurchases: len(moved),
	}, nil
}
