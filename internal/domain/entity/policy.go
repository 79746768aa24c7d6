// Package entity defines the core business entities for the domain layer.
package entity

import "strings"

// RemainingValuePolicy selects how the outstanding value of an installment
// purchase is derived from its paid installments.
type RemainingValuePolicy string

const (
	// RemainingValueCanonical subtracts every billed installment:
	// value - installmentValue * paid.
	RemainingValueCanonical RemainingValuePolicy = "canonical"
	// RemainingValueLegacy keeps the installment of the open statement as
	// outstanding: value - installmentValue * (paid - 1), floored at zero paid.
	RemainingValueLegacy RemainingValuePolicy = "legacy"
)

// DeletePolicy selects what deleting a purchase does to it.
type DeletePolicy string

const (
	// DeleteRemove removes the purchase from the account and from storage.
	DeleteRemove DeletePolicy = "remove"
	// DeleteEndDate stops a recurring purchase at the deletion date and keeps
	// it for history. Installment purchases carry no end date and are removed.
	DeleteEndDate DeletePolicy = "end_date"
)

// Policies groups the behaviour switches an account computes with.
type Policies struct {
	RemainingValue RemainingValuePolicy
	Delete         DeletePolicy
}

// DefaultPolicies returns the canonical policies.
func DefaultPolicies() Policies {
	return Policies{
		RemainingValue: RemainingValueCanonical,
		Delete:         DeleteRemove,
	}
}

// ParseRemainingValuePolicy parses a policy name, falling back to canonical.
func ParseRemainingValuePolicy(value string) RemainingValuePolicy {
	if RemainingValuePolicy(strings.ToLower(strings.TrimSpace(value))) == RemainingValueLegacy {
		return RemainingValueLegacy
	}
	return RemainingValueCanonical
}

// ParseDeletePolicy parses a policy name, falling back to remove.
func ParseDeletePolicy(value string) DeletePolicy {
	if DeletePolicy(strings.ToLower(strings.TrimSpace(value))) == DeleteEndDate {
		return DeleteEndDate
	}
	return DeleteRemove
}
