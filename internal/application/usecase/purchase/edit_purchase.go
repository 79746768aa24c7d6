// Package purchase contains purchase-related use cases.
package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/session"
	"github.com/financy/backend/internal/application/usecase/shared"
	"github.com/financy/backend/internal/domain/entity"
	domainerror "github.com/financy/backend/internal/domain/error"
)

// EditPurchaseInput represents the input for purchase editing.
type EditPurchaseInput struct {
	Session      *session.Session
	AccountID    uint32
	PurchaseID   uint32
	Name         string
	Description  string
	Date         time.Time
	Type         entity.PurchaseType
	Value        decimal.Decimal
	Installments uint32
	EndDate      time.Time
}

// EditPurchaseOutput represents the output of purchase editing.
type EditPurchaseOutput struct {
	Purchase *entity.Purchase
}

// EditPurchaseUseCase handles purchase editing logic.
type EditPurchaseUseCase struct {
	ledger       *ledger.Ledger
	purchaseRepo adapter.PurchaseRepository
	publisher    adapter.ChangePublisher
}

// NewEditPurchaseUseCase creates a new EditPurchaseUseCase instance.
func NewEditPurchaseUseCase(
	l *ledger.Ledger,
	purchaseRepo adapter.PurchaseRepository,
	publisher adapter.ChangePublisher,
) *EditPurchaseUseCase {
	return &EditPurchaseUseCase{
		ledger:       l,
		purchaseRepo: purchaseRepo,
		publisher:    publisher,
	}
}

// Execute performs the purchase edit.
func (uc *EditPurchaseUseCase) Execute(ctx context.Context, input EditPurchaseInput) (*EditPurchaseOutput, error) {
	user, err := shared.ActiveUser(uc.ledger, input.Session)
	if err != nil {
		return nil, err
	}

	account, existing, err := modifiablePurchase(uc.ledger, user.ID, input.AccountID, input.PurchaseID)
	if err != nil {
		return nil, err
	}

	params := entity.PurchaseParams{
		Name:         input.Name,
		Description:  input.Description,
		Date:         input.Date,
		Type:         input.Type,
		Value:        input.Value,
		Installments: input.Installments,
		EndDate:      input.EndDate,
	}
	if err := validate(params); err != nil {
		return nil, err
	}

	today := uc.ledger.Today()
	purchase, ok := account.EditPurchase(existing.ID, params, today)
	if !ok {
		return nil, errPurchaseNotFound()
	}

	if err := uc.purchaseRepo.Save(ctx, purchase); err != nil {
		account.RestorePurchase(existing, today)
		return nil, fmt.Errorf("failed to save purchase: %w", err)
	}

	shared.Publish(ctx, uc.publisher, uc.ledger, adapter.ChangeEvent{
		Kind:   adapter.EntityPurchase,
		Action: adapter.ActionUpdated,
		ID:     purchase.ID,
		UserID: user.ID,
	})

	return &EditPurchaseOutput{
		Purchase: purchase,
	}, nil
}

// modifiablePurchase resolves a purchase the user may change: its contributor
// or the owner of its account.
func modifiablePurchase(l *ledger.Ledger, userID, accountID, purchaseID uint32) (*entity.Account, *entity.Purchase, error) {
	account, err := shared.AccessibleAccount(l, userID, accountID)
	if err != nil {
		return nil, nil, err
	}

	purchase, ok := account.Purchase(purchaseID)
	if !ok {
		return nil, nil, errPurchaseNotFound()
	}

	if !purchase.IsOwnedBy(userID) && !account.IsOwnedBy(userID) {
		return nil, nil, domainerror.NewPurchaseError(
			domainerror.ErrCodeNotAuthorizedPurchase,
			"not authorized to modify this purchase",
			domainerror.ErrNotAuthorizedToModifyPurchase,
		)
	}

	return account, purchase, nil
}

func errPurchaseNotFound() error {
	return domainerror.NewPurchaseError(
		domainerror.ErrCodePurchaseNotFound,
		"purchase not found",
		domainerror.ErrPurchaseNotFound,
	)
}
