// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"
)

// DateLayout is the on-disk and wire format for dates (dd/MM/yyyy).
const DateLayout = "02/01/2006"

const (
	// MinClosingDay is the lowest configurable statement closing day.
	MinClosingDay uint32 = 1
	// MaxClosingDay is the highest configurable statement closing day.
	MaxClosingDay uint32 = 30

	// MinInstallments is the lowest installment count of a purchase.
	MinInstallments uint32 = 1
	// MaxInstallments is the highest installment count of a purchase.
	MaxInstallments uint32 = 120
)

// Day returns the calendar day at UTC midnight.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TruncateDay drops the time of day, keeping the calendar date of t.
func TruncateDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return Day(year, month, day)
}

// DaysIn returns the number of days of the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// EffectiveClosingDay clamps the nominal closing day to the length of the month.
// A closing day of 30 in February yields 28 or 29.
func EffectiveClosingDay(year int, month time.Month, closingDay uint32) int {
	day := int(closingDay)
	if day < 1 {
		day = 1
	}
	if days := DaysIn(year, month); day > days {
		return days
	}
	return day
}

// ClosingDate returns the statement closing date of the given month.
func ClosingDate(year int, month time.Month, closingDay uint32) time.Time {
	return Day(year, month, EffectiveClosingDay(year, month, closingDay))
}

// ClosingDateOf returns the closing date of the month date falls in.
func ClosingDateOf(date time.Time, closingDay uint32) time.Time {
	return ClosingDate(date.Year(), date.Month(), closingDay)
}

// ShiftClosingDate moves a closing date by n months. The closing day is
// re-clamped for the target month, so a 30th closing in January lands on
// February 28th and comes back to March 30th.
func ShiftClosingDate(closing time.Time, months int, closingDay uint32) time.Time {
	first := Day(closing.Year(), closing.Month()+time.Month(months), 1)
	return ClosingDate(first.Year(), first.Month(), closingDay)
}

// CoveringClosingDate returns the closing date of the statement a charge made
// on date is billed on: the first closing date on or after date.
func CoveringClosingDate(date time.Time, closingDay uint32) time.Time {
	date = TruncateDay(date)
	closing := ClosingDateOf(date, closingDay)
	if date.After(closing) {
		closing = ShiftClosingDate(closing, 1, closingDay)
	}
	return closing
}

// AddMonths moves date by n calendar months without overflowing into the
// following month: January 31st plus one month is February 28th (or 29th).
func AddMonths(date time.Time, months int) time.Time {
	first := Day(date.Year(), date.Month()+time.Month(months), 1)
	day := date.Day()
	if days := DaysIn(first.Year(), first.Month()); day > days {
		day = days
	}
	return Day(first.Year(), first.Month(), day)
}

// ParseDate parses a dd/MM/yyyy date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a date as dd/MM/yyyy.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// ClampClosingDay clamps a closing day into [MinClosingDay, MaxClosingDay].
func ClampClosingDay(closingDay uint32) uint32 {
	return clamp(closingDay, MinClosingDay, MaxClosingDay)
}

// ClampInstallments clamps an installment count into [MinInstallments, MaxInstallments].
func ClampInstallments(installments uint32) uint32 {
	return clamp(installments, MinInstallments, MaxInstallments)
}

func clamp(value, low, high uint32) uint32 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
