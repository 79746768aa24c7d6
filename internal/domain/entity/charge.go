// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Charge is how a purchase bills its account. It is either an
// InstallmentCharge or a RecurringCharge.
type Charge interface {
	isCharge()
}

// InstallmentCharge spreads a total value over a fixed number of statements.
type InstallmentCharge struct {
	Value        decimal.Decimal
	Installments uint32
}

// RecurringCharge bills the same value every statement until EndDate's cycle.
// Installments is stored for round-tripping only.
type RecurringCharge struct {
	ValuePerCycle decimal.Decimal
	Installments  uint32
	EndDate       time.Time
}

func (InstallmentCharge) isCharge() {}
func (RecurringCharge) isCharge()   {}

// NewCharge builds the charge variant matching the purchase type.
func NewCharge(purchaseType PurchaseType, value decimal.Decimal, installments uint32, endDate time.Time) Charge {
	installments = ClampInstallments(installments)

	if purchaseType.IsRecurring() {
		return RecurringCharge{
			ValuePerCycle: value,
			Installments:  installments,
			EndDate:       TruncateDay(endDate),
		}
	}

	return InstallmentCharge{
		Value:        value,
		Installments: installments,
	}
}
