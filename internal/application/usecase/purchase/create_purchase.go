// Package purchase contains purchase-related use cases.
package purchase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/session"
	"github.com/financy/backend/internal/application/usecase/shared"
	"github.com/financy/backend/internal/domain/entity"
	domainerror "github.com/financy/backend/internal/domain/error"
)

// CreatePurchaseInput represents the input for purchase creation.
type CreatePurchaseInput struct {
	Session      *session.Session
	AccountID    uint32
	Name         string
	Description  string
	Date         time.Time
	Type         entity.PurchaseType
	Value        decimal.Decimal
	Installments uint32
	EndDate      time.Time // Optional, recurring types only
}

// CreatePurchaseOutput represents the output of purchase creation.
type CreatePurchaseOutput struct {
	Purchase *entity.Purchase
}

// CreatePurchaseUseCase handles purchase creation logic.
type CreatePurchaseUseCase struct {
	ledger       *ledger.Ledger
	purchaseRepo adapter.PurchaseRepository
	publisher    adapter.ChangePublisher

	mu sync.Mutex // Serializes id allocation
}

// NewCreatePurchaseUseCase creates a new CreatePurchaseUseCase instance.
func NewCreatePurchaseUseCase(
	l *ledger.Ledger,
	purchaseRepo adapter.PurchaseRepository,
	publisher adapter.ChangePublisher,
) *CreatePurchaseUseCase {
	return &CreatePurchaseUseCase{
		ledger:       l,
		purchaseRepo: purchaseRepo,
		publisher:    publisher,
	}
}

// Execute performs the purchase creation.
func (uc *CreatePurchaseUseCase) Execute(ctx context.Context, input CreatePurchaseInput) (*CreatePurchaseOutput, error) {
	user, err := shared.ActiveUser(uc.ledger, input.Session)
	if err != nil {
		return nil, err
	}

	account, err := shared.AccessibleAccount(uc.ledger, user.ID, input.AccountID)
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

	uc.mu.Lock()
	defer uc.mu.Unlock()

	id, err := uc.purchaseRepo.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate purchase id: %w", err)
	}

	today := uc.ledger.Today()
	purchase := entity.NewPurchase(id, user.ID, account.ID, params)
	account.AddPurchase(purchase, today)

	if err := uc.purchaseRepo.Save(ctx, purchase); err != nil {
		account.RemovePurchase(purchase.ID, today)
		return nil, fmt.Errorf("failed to save purchase: %w", err)
	}

	shared.Publish(ctx, uc.publisher, uc.ledger, adapter.ChangeEvent{
		Kind:   adapter.EntityPurchase,
		Action: adapter.ActionCreated,
		ID:     purchase.ID,
		UserID: user.ID,
	})

	return &CreatePurchaseOutput{
		Purchase: purchase,
	}, nil
}

// validate rejects input that cannot become a purchase. Out of range
// installment counts are clamped by the entity instead.
func validate(params entity.PurchaseParams) error {
	if strings.TrimSpace(params.Name) == "" {
		return domainerror.NewPurchaseError(
			domainerror.ErrCodeMissingPurchaseName,
			"purchase name is required",
			domainerror.ErrMissingPurchaseName,
		)
	}

	if params.Date.IsZero() {
		return domainerror.NewPurchaseError(
			domainerror.ErrCodeInvalidPurchaseDate,
			"purchase date is required",
			domainerror.ErrInvalidPurchaseDate,
		)
	}

	return nil
}
