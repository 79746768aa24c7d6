package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newInstallmentPurchase(date time.Time, value int64, installments uint32) *Purchase {
	return NewPurchase(0, 0, 0, PurchaseParams{
		Name:         "Notebook",
		Date:         date,
		Type:         PurchaseTypeOther,
		Value:        decimal.NewFromInt(value),
		Installments: installments,
	})
}

func newSubscription(date, endDate time.Time, value int64) *Purchase {
	return NewPurchase(0, 0, 0, PurchaseParams{
		Name:         "Streaming",
		Date:         date,
		Type:         PurchaseTypeSubscription,
		Value:        decimal.NewFromInt(value),
		Installments: 1,
		EndDate:      endDate,
	})
}

func TestPurchase_PaidInstallments_Installment(t *testing.T) {
	purchase := newInstallmentPurchase(Day(2024, time.January, 15), 1200, 12)

	tests := []struct {
		name     string
		asOf     time.Time
		expected uint32
	}{
		{name: "before first closing", asOf: Day(2024, time.January, 16), expected: 0},
		{name: "on first closing", asOf: Day(2024, time.January, 20), expected: 1},
		{name: "after first closing", asOf: Day(2024, time.January, 25), expected: 1},
		{name: "before second closing", asOf: Day(2024, time.February, 18), expected: 1},
		{name: "after second closing", asOf: Day(2024, time.February, 21), expected: 2},
		{name: "last installment", asOf: Day(2024, time.December, 20), expected: 12},
		{name: "one cycle past last installment", asOf: Day(2025, time.January, 20), expected: 13},
		{name: "before purchase", asOf: Day(2023, time.December, 1), expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := purchase.PaidInstallments(tt.asOf, 20)
			if got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestPurchase_PaidInstallments_Recurring(t *testing.T) {
	purchase := newSubscription(Day(2024, time.January, 1), Day(2024, time.June, 1), 50)

	tests := []struct {
		name     string
		asOf     time.Time
		expected uint32
	}{
		{name: "day before start", asOf: Day(2023, time.December, 31), expected: 0},
		{name: "start date", asOf: Day(2024, time.January, 1), expected: 1},
		{name: "mid range", asOf: Day(2024, time.March, 15), expected: 1},
		{name: "end date", asOf: Day(2024, time.June, 1), expected: 1},
		{name: "closing date of end month", asOf: Day(2024, time.June, 10), expected: 1},
		{name: "after closing date of end month", asOf: Day(2024, time.June, 11), expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := purchase.PaidInstallments(tt.asOf, 10)
			if got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}

			active := purchase.IsActive(tt.asOf, 10)
			if active != (tt.expected == 1) {
				t.Errorf("expected active %v, got %v", tt.expected == 1, active)
			}
		})
	}
}

func TestPurchase_InstallmentInvariants(t *testing.T) {
	purchase := newInstallmentPurchase(Day(2024, time.January, 15), 1200, 12)
	closingDay := uint32(20)

	previous := purchase.RemainingInstallments(Day(2024, time.January, 1), closingDay)
	for asOf := Day(2024, time.January, 1); asOf.Before(Day(2025, time.June, 1)); asOf = asOf.AddDate(0, 0, 1) {
		paid := purchase.PaidInstallments(asOf, closingDay)
		remaining := purchase.RemainingInstallments(asOf, closingDay)

		clamped := paid
		if clamped > purchase.Installments() {
			clamped = purchase.Installments()
		}
		if remaining+clamped != purchase.Installments() {
			t.Fatalf("%s: expected remaining %d + paid %d to equal %d", FormatDate(asOf), remaining, clamped, purchase.Installments())
		}

		if remaining > previous {
			t.Fatalf("%s: remaining installments increased from %d to %d", FormatDate(asOf), previous, remaining)
		}
		previous = remaining

		if purchase.IsFullyPaid(asOf, closingDay) != (paid > purchase.Installments()) {
			t.Fatalf("%s: expected fully paid to match paid %d > %d", FormatDate(asOf), paid, purchase.Installments())
		}
	}
}

func TestPurchase_IsFullyPaid_Recurring(t *testing.T) {
	purchase := newSubscription(Day(2024, time.January, 1), Day(2024, time.June, 1), 50)

	if purchase.IsFullyPaid(Day(2024, time.June, 1), 10) {
		t.Error("expected subscription not to be ended on its end date")
	}
	if !purchase.IsFullyPaid(Day(2024, time.June, 2), 10) {
		t.Error("expected subscription to be ended after its end date")
	}
}

func TestPurchase_RemainingValue_Policies(t *testing.T) {
	purchase := newInstallmentPurchase(Day(2024, time.January, 15), 1200, 12)

	tests := []struct {
		name      string
		asOf      time.Time
		canonical int64
		legacy    int64
	}{
		{name: "nothing billed", asOf: Day(2024, time.January, 16), canonical: 1200, legacy: 1200},
		{name: "first installment billed", asOf: Day(2024, time.January, 25), canonical: 1100, legacy: 1200},
		{name: "second installment billed", asOf: Day(2024, time.February, 21), canonical: 1000, legacy: 1100},
		{name: "last installment billed", asOf: Day(2024, time.December, 21), canonical: 0, legacy: 100},
		{name: "fully paid", asOf: Day(2025, time.January, 20), canonical: 0, legacy: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canonical := purchase.RemainingValue(tt.asOf, 20, RemainingValueCanonical)
			if !canonical.Equal(decimal.NewFromInt(tt.canonical)) {
				t.Errorf("expected canonical %d, got %s", tt.canonical, canonical)
			}

			legacy := purchase.RemainingValue(tt.asOf, 20, RemainingValueLegacy)
			if !legacy.Equal(decimal.NewFromInt(tt.legacy)) {
				t.Errorf("expected legacy %d, got %s", tt.legacy, legacy)
			}
		})
	}
}

func TestNewPurchase_Normalizes(t *testing.T) {
	t.Run("clamps installments", func(t *testing.T) {
		if got := newInstallmentPurchase(Day(2024, time.January, 1), 10, 0).Installments(); got != 1 {
			t.Errorf("expected 1, got %d", got)
		}
		if got := newInstallmentPurchase(Day(2024, time.January, 1), 10, 500).Installments(); got != 120 {
			t.Errorf("expected 120, got %d", got)
		}
	})

	t.Run("invalid type falls back to other", func(t *testing.T) {
		purchase := NewPurchase(1, 0, 0, PurchaseParams{Name: "x", Date: Day(2024, time.January, 1), Type: PurchaseType(42)})
		if purchase.Type() != PurchaseTypeOther {
			t.Errorf("expected %v, got %v", PurchaseTypeOther, purchase.Type())
		}
	})

	t.Run("recurring end date never precedes date", func(t *testing.T) {
		purchase := newSubscription(Day(2024, time.March, 1), Day(2024, time.January, 1), 10)
		if !purchase.EndDate().Equal(Day(2024, time.March, 1)) {
			t.Errorf("expected 01/03/2024, got %s", FormatDate(purchase.EndDate()))
		}
	})

	t.Run("trims text fields", func(t *testing.T) {
		purchase := NewPurchase(1, 0, 0, PurchaseParams{Name: "  Market ", Description: " weekly ", Date: Day(2024, time.January, 1)})
		if purchase.Name != "Market" || purchase.Description != "weekly" {
			t.Errorf("expected trimmed fields, got %q and %q", purchase.Name, purchase.Description)
		}
	})

	t.Run("installment purchases carry no end date", func(t *testing.T) {
		purchase := newInstallmentPurchase(Day(2024, time.January, 1), 10, 2)
		if !purchase.EndDate().IsZero() {
			t.Errorf("expected zero end date, got %s", purchase.EndDate())
		}
		if purchase.SetEndDate(Day(2024, time.February, 1)) {
			t.Error("expected SetEndDate to refuse installment purchases")
		}
	})
}

func TestPurchase_Charge(t *testing.T) {
	installment := newInstallmentPurchase(Day(2024, time.January, 1), 300, 3)
	if _, ok := installment.Charge().(InstallmentCharge); !ok {
		t.Errorf("expected InstallmentCharge, got %T", installment.Charge())
	}

	bill := NewPurchase(0, 0, 0, PurchaseParams{
		Date:         Day(2024, time.January, 1),
		Type:         PurchaseTypeBill,
		Value:        decimal.NewFromInt(90),
		Installments: 3,
	})
	charge, ok := bill.Charge().(RecurringCharge)
	if !ok {
		t.Fatalf("expected RecurringCharge, got %T", bill.Charge())
	}
	if charge.Installments != 3 {
		t.Errorf("expected stored installments 3, got %d", charge.Installments)
	}
	if !bill.InstallmentValue().Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected installment value 30, got %s", bill.InstallmentValue())
	}
}

func TestPurchaseType(t *testing.T) {
	tests := []struct {
		name      string
		typ       PurchaseType
		display   string
		recurring bool
	}{
		{name: "utility", typ: PurchaseTypeUtility, display: "Utilities"},
		{name: "subscription", typ: PurchaseTypeSubscription, display: "Subscriptions", recurring: true},
		{name: "transport", typ: PurchaseTypeTransport, display: "Transport"},
		{name: "debt", typ: PurchaseTypeDebt, display: "Debts"},
		{name: "food", typ: PurchaseTypeFood, display: "Food"},
		{name: "bill", typ: PurchaseTypeBill, display: "Bills", recurring: true},
		{name: "other", typ: PurchaseTypeOther, display: "Others"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if int(tt.typ) != i {
				t.Errorf("expected ordinal %d, got %d", i, tt.typ)
			}
			if tt.typ.Name() != tt.display {
				t.Errorf("expected %s, got %s", tt.display, tt.typ.Name())
			}
			if tt.typ.IsRecurring() != tt.recurring {
				t.Errorf("expected recurring %v, got %v", tt.recurring, tt.typ.IsRecurring())
			}
			if ParsePurchaseType(tt.display) != tt.typ {
				t.Errorf("expected %s to parse to %d", tt.display, tt.typ)
			}
		})
	}

	if ParsePurchaseType("Groceries") != PurchaseTypeOther {
		t.Error("expected unknown names to parse to other")
	}
}

func TestPurchase_RoundedInstallments(t *testing.T) {
	purchase := newInstallmentPurchase(Day(2024, time.January, 15), 100, 3)

	if !purchase.InstallmentValue().Equal(decimal.RequireFromString("33.33")) {
		t.Errorf("expected 33.33, got %s", purchase.InstallmentValue())
	}

	tests := []struct {
		name     string
		asOf     time.Time
		expected string
	}{
		{name: "nothing billed", asOf: Day(2024, time.January, 16), expected: "100"},
		{name: "one billed", asOf: Day(2024, time.January, 25), expected: "66.67"},
		{name: "two billed", asOf: Day(2024, time.February, 25), expected: "33.34"},
		{name: "all billed", asOf: Day(2024, time.March, 25), expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := purchase.RemainingValue(tt.asOf, 20, RemainingValueCanonical)
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}

	account := newTestAccount(20, 1000)
	addPurchase(account, 0, installment(Day(2024, time.January, 15), 100, 3))
	asOf := Day(2024, time.March, 25)
	if used := account.UsedLimit(asOf); !used.IsZero() {
		t.Errorf("expected used limit 0, got %s", used)
	}
	if remaining := account.RemainingLimit(asOf); !remaining.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected remaining limit 1000, got %s", remaining)
	}
}
