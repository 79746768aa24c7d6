// Package account contains account-related use cases.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/session"
	"github.com/financy/backend/internal/application/usecase/shared"
	"github.com/financy/backend/internal/domain/entity"
)

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	Session   *session.Session
	AccountID uint32
}

// DeleteAccountOutput represents the output of account deletion.
type DeleteAccountOutput struct {
	// Left is set when the user only left an account shared with them.
	Left             bool
	RemovedPurchases int
}

// DeleteAccountUseCase handles account deletion. The owner deletes the
// account with every purchase; a sharer only leaves it, taking the purchases
// they contributed with them.
type DeleteAccountUseCase struct {
	ledger       *ledger.Ledger
	remover      *Remover
	sessionStore adapter.SessionStore
	publisher    adapter.ChangePublisher
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(
	l *ledger.Ledger,
	accountRepo adapter.AccountRepository,
	purchaseRepo adapter.PurchaseRepository,
	sessionStore adapter.SessionStore,
	publisher adapter.ChangePublisher,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		ledger:       l,
		remover:      NewRemover(l, accountRepo, purchaseRepo),
		sessionStore: sessionStore,
		publisher:    publisher,
	}
}

// Execute performs the account deletion.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) (*DeleteAccountOutput, error) {
	user, err := shared.ActiveUser(uc.ledger, input.Session)
	if err != nil {
		return nil, err
	}

	account, err := shared.AccessibleAccount(uc.ledger, user.ID, input.AccountID)
	if err != nil {
		return nil, err
	}

	output := &DeleteAccountOutput{}
	action := adapter.ActionDeleted
	if account.IsOwnedBy(user.ID) {
		removed, err := uc.remover.Delete(ctx, account)
		if err != nil {
			return nil, err
		}
		output.RemovedPurchases = removed
	} else {
		removed, err := uc.remover.Withhold(ctx, account, user.ID)
		if err != nil {
			return nil, err
		}
		output.Left = true
		output.RemovedPurchases = removed
		action = adapter.ActionWithheld
	}

	if selected, ok := input.Session.SelectedAccount(); ok && selected == account.ID {
		input.Session.Deselect()
		if err := uc.sessionStore.Save(ctx, input.Session); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
	}

	shared.Publish(ctx, uc.publisher, uc.ledger, adapter.ChangeEvent{
		Kind:   adapter.EntityAccount,
		Action: action,
		ID:     account.ID,
		UserID: user.ID,
	})

	return output, nil
}

// Remover deletes accounts and withholds sharers, writing through to storage.
// Shared by account and user deletion.
type Remover struct {
	ledger       *ledger.Ledger
	accountRepo  adapter.AccountRepository
	purchaseRepo adapter.PurchaseRepository
}

// NewRemover creates a new Remover instance.
func NewRemover(l *ledger.Ledger, accountRepo adapter.AccountRepository, purchaseRepo adapter.PurchaseRepository) *Remover {
	return &Remover{
		ledger:       l,
		accountRepo:  accountRepo,
		purchaseRepo: purchaseRepo,
	}
}

// Delete removes the account and all of its purchases. It returns the number
// of purchases removed.
func (r *Remover) Delete(ctx context.Context, account *entity.Account) (int, error) {
	purchases := account.Purchases()
	if len(purchases) > 0 {
		if err := r.purchaseRepo.DeleteMany(ctx, purchaseIDs(purchases)); err != nil {
			return 0, fmt.Errorf("failed to delete account purchases: %w", err)
		}
	}

	if err := r.accountRepo.Delete(ctx, account.ID); err != nil {
		r.restorePurchases(ctx, account.ID, purchases)
		return 0, fmt.Errorf("failed to delete account: %w", err)
	}

	r.ledger.RemoveAccount(account.ID)
	account.TakePurchases()
	return len(purchases), nil
}

// Withhold removes userID from the account sharers together with every
// purchase they contributed. It returns the number of purchases removed.
func (r *Remover) Withhold(ctx context.Context, account *entity.Account, userID uint32) (int, error) {
	today := r.ledger.Today()
	removed, ok := account.WithholdFrom(userID, today)
	if !ok {
		return 0, nil
	}

	if len(removed) > 0 {
		if err := r.purchaseRepo.DeleteMany(ctx, purchaseIDs(removed)); err != nil {
			account.RestoreSharer(userID, removed, today)
			return 0, fmt.Errorf("failed to delete withheld purchases: %w", err)
		}
	}

	if err := r.accountRepo.Save(ctx, account); err != nil {
		account.RestoreSharer(userID, removed, today)
		r.restorePurchases(ctx, account.ID, removed)
		return 0, fmt.Errorf("failed to save account: %w", err)
	}

	return len(removed), nil
}

// restorePurchases writes back purchases deleted by a step that later failed.
func (r *Remover) restorePurchases(ctx context.Context, accountID uint32, purchases []*entity.Purchase) {
	if len(purchases) == 0 {
		return
	}
	if err := r.purchaseRepo.SaveAll(ctx, purchases); err != nil {
		slog.Error("Failed to restore purchases after a failed write",
			"account_id", accountID,
			"purchases", len(purchases),
			"error", err,
		)
	}
}

func purchaseIDs(purchases []*entity.Purchase) []uint32 {
	ids := make([]uint32, len(purchases))
	for i, purchase := range purchases {
		ids[i] = purchase.ID
	}
	return ids
}
