// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/financy/backend/internal/domain/entity"
)

// AccountModel represents the accounts table in the database.
type AccountModel struct {
	ID             uint32          `gorm:"primaryKey;autoIncrement:false"`
	UserID         uint32          `gorm:"not null;index"`
	SharedUserIDs  []uint32        `gorm:"type:text;serializer:json"`
	Name           string          `gorm:"type:varchar(100);not null"`
	ClosingDay     uint32          `gorm:"not null"`
	Type           int             `gorm:"not null"`
	Limit          decimal.Decimal `gorm:"column:credit_limit;type:decimal(15,2);not null"`
	PrimaryColor   string          `gorm:"type:varchar(20)"`
	SecondaryColor string          `gorm:"type:varchar(20)"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts an AccountModel to a domain Account entity without
// purchases; the ledger attaches them.
func (m *AccountModel) ToEntity() *entity.Account {
	account := entity.NewAccount(m.ID, m.UserID, entity.AccountParams{
		Name:           m.Name,
		ClosingDay:     m.ClosingDay,
		Type:           entity.AccountType(m.Type),
		Limit:          m.Limit,
		PrimaryColor:   m.PrimaryColor,
		SecondaryColor: m.SecondaryColor,
	})
	account.SetSharedUserIDs(m.SharedUserIDs)
	return account
}

// AccountFromEntity creates an AccountModel from a domain Account entity.
func AccountFromEntity(account *entity.Account) *AccountModel {
	shared := account.SharedUserIDs()
	if shared == nil {
		shared = []uint32{}
	}
	details := account.Details()
	return &AccountModel{
		ID:             account.ID,
		UserID:         account.UserID,
		SharedUserIDs:  shared,
		Name:           details.Name,
		ClosingDay:     details.ClosingDay,
		Type:           int(details.Type),
		Limit:          details.Limit,
		PrimaryColor:   details.PrimaryColor,
		SecondaryColor: details.SecondaryColor,
	}
}
