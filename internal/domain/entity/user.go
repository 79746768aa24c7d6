// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// User represents a person that owns or shares accounts.
type User struct {
	ID             uint32
	FirstName      string
	LastName       string
	Picture        string // Base64 data URL; empty when unset
	PrimaryColor   string
	SecondaryColor string
}

// UserParams holds the editable profile fields of a user.
type UserParams struct {
	FirstName      string
	LastName       string
	Picture        string
	PrimaryColor   string
	SecondaryColor string
}

// NewUser creates a new User with default colors.
func NewUser(id uint32, params UserParams) *User {
	u := &User{ID: id}
	u.Edit(params)
	return u
}

// Edit replaces the profile fields of the user.
func (u *User) Edit(params UserParams) {
	if params.PrimaryColor == "" {
		params.PrimaryColor = DefaultPrimaryColor
	}
	if params.SecondaryColor == "" {
		params.SecondaryColor = DefaultSecondaryColor
	}

	u.FirstName = strings.TrimSpace(params.FirstName)
	u.LastName = strings.TrimSpace(params.LastName)
	u.Picture = params.Picture
	u.PrimaryColor = params.PrimaryColor
	u.SecondaryColor = params.SecondaryColor
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasPicture reports whether a picture is set.
func (u *User) HasPicture() bool {
	return u.Picture != ""
}

// DueAmount sums the due amount of every Expense account the user owns or
// shares, as of asOf. Accounts the user cannot access are skipped.
func (u *User) DueAmount(accounts []*Account, asOf time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, account := range accounts {
		if !account.IsExpense() || !account.HasAccess(u.ID) {
			continue
		}
		total = total.Add(account.DueAmount(asOf))
	}
	return total
}

// ExpenseMap buckets the installment value of every purchase billed as of
// asOf, and not yet fully paid, by purchase type display name.
func (u *User) ExpenseMap(accounts []*Account, asOf time.Time) map[string]decimal.Decimal {
	expenses := make(map[string]decimal.Decimal)
	for _, account := range accounts {
		if !account.IsExpense() || !account.HasAccess(u.ID) {
			continue
		}

		for name, value := range account.ExpenseMap(asOf) {
			current, ok := expenses[name]
			if !ok {
				current = decimal.Zero
			}
			expenses[name] = current.Add(value)
		}
	}
	return expenses
}
