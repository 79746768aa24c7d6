// Package purchase contains purchase-related use cases.
package purchase

import (
	"context"
	"fmt"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/session"
	"github.com/financy/backend/internal/application/usecase/shared"
	"github.com/financy/backend/internal/domain/entity"
)

// DeletePurchaseInput represents the input for purchase deletion.
type DeletePurchaseInput struct {
	Session    *session.Session
	AccountID  uint32
	PurchaseID uint32
}

// DeletePurchaseOutput represents the output of purchase deletion.
type DeletePurchaseOutput struct {
	// Ended is set when the purchase was end-dated instead of removed.
	Ended    bool
	Purchase *entity.Purchase
}

// DeletePurchaseUseCase handles purchase deletion logic. With the end_date
// delete policy, recurring purchases that already started are stopped at
// today's date, or kept at an earlier end date, so past statements still
// show them. Recurring purchases dated in the future are removed.
type DeletePurchaseUseCase struct {
	ledger       *ledger.Ledger
	purchaseRepo adapter.PurchaseRepository
	publisher    adapter.ChangePublisher
}

// NewDeletePurchaseUseCase creates a new DeletePurchaseUseCase instance.
func NewDeletePurchaseUseCase(
	l *ledger.Ledger,
	purchaseRepo adapter.PurchaseRepository,
	publisher adapter.ChangePublisher,
) *DeletePurchaseUseCase {
	return &DeletePurchaseUseCase{
		ledger:       l,
		purchaseRepo: purchaseRepo,
		publisher:    publisher,
	}
}

// Execute performs the purchase deletion.
func (uc *DeletePurchaseUseCase) Execute(ctx context.Context, input DeletePurchaseInput) (*DeletePurchaseOutput, error) {
	user, err := shared.ActiveUser(uc.ledger, input.Session)
	if err != nil {
		return nil, err
	}

	account, purchase, err := modifiablePurchase(uc.ledger, user.ID, input.AccountID, input.PurchaseID)
	if err != nil {
		return nil, err
	}

	today := uc.ledger.Today()
	output := &DeletePurchaseOutput{Purchase: purchase}

	if account.Policies.Delete == entity.DeleteEndDate && purchase.IsRecurring() && !purchase.Date.After(today) {
		ended, ok := account.EndPurchase(purchase.ID, today, today)
		if !ok {
			return nil, errPurchaseNotFound()
		}

		if err := uc.purchaseRepo.Save(ctx, ended); err != nil {
			account.RestorePurchase(purchase, today)
			return nil, fmt.Errorf("failed to end purchase: %w", err)
		}
		output.Ended = true
		output.Purchase = ended
	} else {
		if _, ok := account.RemovePurchase(purchase.ID, today); !ok {
			return nil, errPurchaseNotFound()
		}

		if err := uc.purchaseRepo.Delete(ctx, purchase.ID); err != nil {
			account.AddPurchase(purchase, today)
			return nil, fmt.Errorf("failed to delete purchase: %w", err)
		}
	}

	action := adapter.ActionDeleted
	if output.Ended {
		action = adapter.ActionUpdated
	}
	shared.Publish(ctx, uc.publisher, uc.ledger, adapter.ChangeEvent{
		Kind:   adapter.EntityPurchase,
		Action: action,
		ID:     purchase.ID,
		UserID: user.ID,
	})

	return output, nil
}
