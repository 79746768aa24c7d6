// Package entity defines the core business entities for the domain layer.
package entity

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseType categorises a purchase. Values are persisted as ordinals, so
// the order must never change.
type PurchaseType int

const (
	PurchaseTypeUtility      PurchaseType = 0 // Light, water, internet, gas, school bills
	PurchaseTypeSubscription PurchaseType = 1
	PurchaseTypeTransport    PurchaseType = 2
	PurchaseTypeDebt         PurchaseType = 3
	PurchaseTypeFood         PurchaseType = 4
	PurchaseTypeBill         PurchaseType = 5
	PurchaseTypeOther        PurchaseType = 6
)

var purchaseTypeNames = map[PurchaseType]string{
	PurchaseTypeUtility:      "Utilities",
	PurchaseTypeSubscription: "Subscriptions",
	PurchaseTypeTransport:    "Transport",
	PurchaseTypeDebt:         "Debts",
	PurchaseTypeFood:         "Food",
	PurchaseTypeBill:         "Bills",
	PurchaseTypeOther:        "Others",
}

// PurchaseTypes returns every purchase type in ordinal order.
func PurchaseTypes() []PurchaseType {
	return []PurchaseType{
		PurchaseTypeUtility,
		PurchaseTypeSubscription,
		PurchaseTypeTransport,
		PurchaseTypeDebt,
		PurchaseTypeFood,
		PurchaseTypeBill,
		PurchaseTypeOther,
	}
}

// IsValid reports whether t is a known purchase type.
func (t PurchaseType) IsValid() bool {
	_, ok := purchaseTypeNames[t]
	return ok
}

// IsRecurring reports whether purchases of this type bill every cycle.
func (t PurchaseType) IsRecurring() bool {
	return t == PurchaseTypeSubscription || t == PurchaseTypeBill
}

// Name returns the display name of the type.
func (t PurchaseType) Name() string {
	if name, ok := purchaseTypeNames[t]; ok {
		return name
	}
	return purchaseTypeNames[PurchaseTypeOther]
}

// ParsePurchaseType resolves a display name, falling back to Other.
func ParsePurchaseType(name string) PurchaseType {
	for purchaseType, typeName := range purchaseTypeNames {
		if strings.EqualFold(typeName, strings.TrimSpace(name)) {
			return purchaseType
		}
	}
	return PurchaseTypeOther
}

// UnassignedUserID marks a purchase stored without a contributor. The ledger
// attributes such purchases to the account owner on load.
const UnassignedUserID uint32 = math.MaxUint32

// Purchase is a charge recorded on an account.
type Purchase struct {
	ID          uint32
	UserID      uint32 // Contributor; any sharer of the account may contribute
	AccountID   uint32
	Name        string
	Description string
	Date        time.Time

	purchaseType PurchaseType
	charge       Charge
}

// PurchaseParams holds the fields a purchase is created or edited with.
type PurchaseParams struct {
	Name         string
	Description  string
	Date         time.Time
	Type         PurchaseType
	Value        decimal.Decimal
	Installments uint32
	EndDate      time.Time // Recurring types only
}

// NewPurchase creates a purchase; ids are assigned by the caller.
func NewPurchase(id, userID, accountID uint32, params PurchaseParams) *Purchase {
	p := &Purchase{
		ID:        id,
		UserID:    userID,
		AccountID: accountID,
	}
	p.apply(params)
	return p
}

// Edit replaces the editable fields of the purchase.
func (p *Purchase) Edit(params PurchaseParams) {
	p.apply(params)
}

func (p *Purchase) apply(params PurchaseParams) {
	if !params.Type.IsValid() {
		params.Type = PurchaseTypeOther
	}

	endDate := params.EndDate
	if params.Type.IsRecurring() && (endDate.IsZero() || endDate.Before(params.Date)) {
		endDate = params.Date
	}

	p.Name = strings.TrimSpace(params.Name)
	p.Description = strings.TrimSpace(params.Description)
	p.Date = TruncateDay(params.Date)
	p.purchaseType = params.Type
	p.charge = NewCharge(params.Type, params.Value, params.Installments, endDate)
}

// Params returns the editable fields of the purchase.
func (p *Purchase) Params() PurchaseParams {
	return PurchaseParams{
		Name:         p.Name,
		Description:  p.Description,
		Date:         p.Date,
		Type:         p.purchaseType,
		Value:        p.Value(),
		Installments: p.Installments(),
		EndDate:      p.EndDate(),
	}
}

// Clone returns an independent copy of the purchase.
func (p *Purchase) Clone() *Purchase {
	clone := *p
	return &clone
}

// Type returns the purchase type.
func (p *Purchase) Type() PurchaseType {
	return p.purchaseType
}

// TypeName returns the display name of the purchase type.
func (p *Purchase) TypeName() string {
	return p.purchaseType.Name()
}

// Charge returns how the purchase bills its account.
func (p *Purchase) Charge() Charge {
	return p.charge
}

// IsRecurring reports whether the purchase is a subscription or a bill.
func (p *Purchase) IsRecurring() bool {
	_, ok := p.charge.(RecurringCharge)
	return ok
}

// HasDescription reports whether a description was given.
func (p *Purchase) HasDescription() bool {
	return p.Description != ""
}

// IsOwnedBy reports whether userID contributed the purchase.
func (p *Purchase) IsOwnedBy(userID uint32) bool {
	return p.UserID == userID
}

// Value is the total value of an installment purchase or the per-cycle value
// of a recurring one.
func (p *Purchase) Value() decimal.Decimal {
	switch c := p.charge.(type) {
	case InstallmentCharge:
		return c.Value
	case RecurringCharge:
		return c.ValuePerCycle
	}
	return decimal.Zero
}

// Installments returns the stored installment count.
func (p *Purchase) Installments() uint32 {
	switch c := p.charge.(type) {
	case InstallmentCharge:
		return c.Installments
	case RecurringCharge:
		return c.Installments
	}
	return MinInstallments
}

// EndDate returns the end date of a recurring purchase, zero otherwise.
func (p *Purchase) EndDate() time.Time {
	if c, ok := p.charge.(RecurringCharge); ok {
		return c.EndDate
	}
	return time.Time{}
}

// SetEndDate stops a recurring purchase at endDate, never later than its
// current end date and never before its start. It reports false for
// installment purchases.
func (p *Purchase) SetEndDate(endDate time.Time) bool {
	c, ok := p.charge.(RecurringCharge)
	if !ok {
		return false
	}
	endDate = TruncateDay(endDate)
	if endDate.After(c.EndDate) {
		endDate = c.EndDate
	}
	if endDate.Before(p.Date) {
		endDate = p.Date
	}
	c.EndDate = endDate
	p.charge = c
	return true
}

// CurrencyPlaces is the precision money amounts are rounded to.
const CurrencyPlaces = 2

// InstallmentValue is the amount billed on each statement, rounded half away
// from zero to currency precision.
func (p *Purchase) InstallmentValue() decimal.Decimal {
	return p.Value().DivRound(decimal.NewFromInt(int64(p.Installments())), CurrencyPlaces)
}

// PaidInstallments returns how many installments were billed by asOf.
//
// A recurring purchase is binary: 1 while asOf lies within
// [Date, closing date of EndDate's month], 0 otherwise. An installment
// purchase counts the closing dates crossed from the statement covering
// Date through asOf, regardless of the installment count.
func (p *Purchase) PaidInstallments(asOf time.Time, closingDay uint32) uint32 {
	asOf = TruncateDay(asOf)

	switch c := p.charge.(type) {
	case RecurringCharge:
		lastClosing := ClosingDateOf(c.EndDate, closingDay)
		if asOf.Before(p.Date) || asOf.After(lastClosing) {
			return 0
		}
		return 1

	case InstallmentCharge:
		var paid uint32
		closing := CoveringClosingDate(p.Date, closingDay)
		for !closing.After(asOf) {
			paid++
			closing = ShiftClosingDate(closing, 1, closingDay)
		}
		return paid
	}

	return 0
}

// IsActive reports whether the purchase is billed on the statement covering asOf.
func (p *Purchase) IsActive(asOf time.Time, closingDay uint32) bool {
	paid := p.PaidInstallments(asOf, closingDay)

	switch p.charge.(type) {
	case RecurringCharge:
		return paid == 1
	case InstallmentCharge:
		return paid >= 1 && paid <= p.Installments()
	}

	return false
}

// IsFullyPaid reports whether the purchase no longer bills the account. An
// installment purchase is paid once one more cycle than its installment count
// has been billed; a recurring purchase once asOf is past its end date.
func (p *Purchase) IsFullyPaid(asOf time.Time, closingDay uint32) bool {
	switch c := p.charge.(type) {
	case RecurringCharge:
		return TruncateDay(asOf).After(c.EndDate)
	case InstallmentCharge:
		return p.PaidInstallments(asOf, closingDay) > c.Installments
	}

	return false
}

// RemainingInstallments returns the installments still to be billed.
func (p *Purchase) RemainingInstallments(asOf time.Time, closingDay uint32) uint32 {
	installments := p.Installments()
	paid := p.PaidInstallments(asOf, closingDay)
	if paid >= installments {
		return 0
	}
	return installments - paid
}

// RemainingValue returns the value not yet billed by asOf.
func (p *Purchase) RemainingValue(asOf time.Time, closingDay uint32, policy RemainingValuePolicy) decimal.Decimal {
	if p.IsFullyPaid(asOf, closingDay) {
		return decimal.Zero
	}

	paid := p.PaidInstallments(asOf, closingDay)
	if policy == RemainingValueLegacy && paid > 0 {
		paid--
	}
	// Rounded installments must not leave a residue once all are billed.
	if paid >= p.Installments() {
		return decimal.Zero
	}

	return p.Value().Sub(p.InstallmentValue().Mul(decimal.NewFromInt(int64(paid))))
}
