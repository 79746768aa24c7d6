// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statement is a computed snapshot of one billing cycle. Date is the closing
// date the cycle starts on; the cycle runs until the next closing date.
type Statement struct {
	Date          time.Time
	Purchases     []*Purchase // Installment purchases billed this cycle
	Subscriptions []*Purchase // Recurring purchases billed this cycle
	DueAmount     decimal.Decimal
}

func (s *Statement) clone() *Statement {
	clone := *s
	clone.Purchases = clonePurchases(s.Purchases)
	clone.Subscriptions = clonePurchases(s.Subscriptions)
	return &clone
}

func cloneStatements(statements []*Statement) []*Statement {
	if statements == nil {
		return nil
	}
	result := make([]*Statement, len(statements))
	for i, statement := range statements {
		result[i] = statement.clone()
	}
	return result
}

// IsEmpty reports whether nothing is billed on the statement.
func (s *Statement) IsEmpty() bool {
	return len(s.Purchases) == 0 && len(s.Subscriptions) == 0
}

// IsCurrentStatement reports whether date falls within the statement's cycle.
func (s *Statement) IsCurrentStatement(date time.Time) bool {
	date = TruncateDay(date)
	end := AddMonths(s.Date, 1).AddDate(0, 0, -1)
	return !date.Before(s.Date) && !date.After(end)
}

// IsFuture reports whether the statement starts after date.
func (s *Statement) IsFuture(date time.Time) bool {
	return s.Date.After(TruncateDay(date))
}

// IsSameYear reports whether the statement is in the same year as date.
func (s *Statement) IsSameYear(date time.Time) bool {
	return s.Date.Year() == date.Year()
}

// DateBasedHistory groups the statement's purchases by their calendar date,
// in order of first appearance. Each group is a statement-shaped bucket.
func (s *Statement) DateBasedHistory() []*Statement {
	var result []*Statement
	index := make(map[time.Time]*Statement)

	for _, purchase := range s.Purchases {
		bucket, ok := index[purchase.Date]
		if !ok {
			bucket = &Statement{
				Date:      purchase.Date,
				DueAmount: decimal.Zero,
			}
			index[purchase.Date] = bucket
			result = append(result, bucket)
		}

		bucket.Purchases = append(bucket.Purchases, purchase)
		bucket.DueAmount = bucket.DueAmount.Add(purchase.InstallmentValue())
	}

	return result
}
