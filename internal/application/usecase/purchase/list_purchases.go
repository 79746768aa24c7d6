// Package purchase contains purchase-related use cases.
package purchase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/session"
	"github.com/financy/backend/internal/application/usecase/shared"
	"github.com/financy/backend/internal/domain/entity"
)

// ListPurchasesInput represents the input for listing purchases.
type ListPurchasesInput struct {
	Session       *session.Session
	AccountID     uint32
	ContributorID *uint32    // Optional, only purchases contributed by this user
	AsOf          *time.Time // Optional, defaults to today
	ActiveOnly    bool       // Only purchases billed on the statement covering AsOf
}

// PurchaseStatus is a purchase with its payment state as of a date.
type PurchaseStatus struct {
	Purchase              *entity.Purchase
	InstallmentValue      decimal.Decimal
	PaidInstallments      uint32
	RemainingInstallments uint32
	RemainingValue        decimal.Decimal
	IsActive              bool
	IsFullyPaid           bool
}

// ListPurchasesOutput represents the output of listing purchases.
type ListPurchasesOutput struct {
	AsOf      time.Time
	Purchases []PurchaseStatus
}

// ListPurchasesUseCase handles purchase listing logic.
type ListPurchasesUseCase struct {
	ledger *ledger.Ledger
}

// NewListPurchasesUseCase creates a new ListPurchasesUseCase instance.
func NewListPurchasesUseCase(l *ledger.Ledger) *ListPurchasesUseCase {
	return &ListPurchasesUseCase{
		ledger: l,
	}
}

// Execute lists the purchases of an account, sorted by date.
func (uc *ListPurchasesUseCase) Execute(ctx context.Context, input ListPurchasesInput) (*ListPurchasesOutput, error) {
	user, err := shared.ActiveUser(uc.ledger, input.Session)
	if err != nil {
		return nil, err
	}

	account, err := shared.AccessibleAccount(uc.ledger, user.ID, input.AccountID)
	if err != nil {
		return nil, err
	}

	asOf := uc.ledger.Today()
	if input.AsOf != nil {
		asOf = entity.TruncateDay(*input.AsOf)
	}

	var purchases []*entity.Purchase
	switch {
	case input.ContributorID != nil && input.ActiveOnly:
		purchases = account.ActivePurchases(asOf, *input.ContributorID)
	case input.ContributorID != nil:
		purchases = account.PurchasesBy(*input.ContributorID)
	default:
		purchases = account.Purchases()
	}

	closingDay := account.ClosingDay()
	output := &ListPurchasesOutput{
		AsOf:      asOf,
		Purchases: make([]PurchaseStatus, 0, len(purchases)),
	}
	for _, purchase := range purchases {
		active := purchase.IsActive(asOf, closingDay)
		if input.ActiveOnly && !active {
			continue
		}

		output.Purchases = append(output.Purchases, PurchaseStatus{
			Purchase:              purchase,
			InstallmentValue:      purchase.InstallmentValue(),
			PaidInstallments:      account.PaidInstallments(purchase, asOf),
			RemainingInstallments: account.RemainingInstallments(purchase, asOf),
			RemainingValue:        account.RemainingValue(purchase, asOf),
			IsActive:              active,
			IsFullyPaid:           account.IsFullyPaid(purchase, asOf),
		})
	}

	return output, nil
}
