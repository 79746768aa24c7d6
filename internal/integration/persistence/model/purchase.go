// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/financy/backend/internal/domain/entity"
)

// PurchaseModel represents the purchases table in the database.
type PurchaseModel struct {
	ID           uint32          `gorm:"primaryKey;autoIncrement:false"`
	UserID       *uint32         `gorm:"index"` // NULL when stored without a contributor
	AccountID    uint32          `gorm:"not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Description  string          `gorm:"type:text"`
	Date         time.Time       `gorm:"type:date;not null"`
	Type         int             `gorm:"not null"`
	Value        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Installments uint32          `gorm:"not null"`
	EndDate      *time.Time      `gorm:"type:date"` // Recurring types only
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the PurchaseModel.
func (PurchaseModel) TableName() string {
	return "purchases"
}

// ToEntity converts a PurchaseModel to a domain Purchase entity.
func (m *PurchaseModel) ToEntity() *entity.Purchase {
	userID := entity.UnassignedUserID
	if m.UserID != nil {
		userID = *m.UserID
	}

	params := entity.PurchaseParams{
		Name:         m.Name,
		Description:  m.Description,
		Date:         entity.TruncateDay(m.Date),
		Type:         entity.PurchaseType(m.Type),
		Value:        m.Value,
		Installments: m.Installments,
	}
	if m.EndDate != nil {
		params.EndDate = entity.TruncateDay(*m.EndDate)
	}

	return entity.NewPurchase(m.ID, userID, m.AccountID, params)
}

// PurchaseFromEntity creates a PurchaseModel from a domain Purchase entity.
func PurchaseFromEntity(purchase *entity.Purchase) *PurchaseModel {
	m := &PurchaseModel{
		ID:           purchase.ID,
		AccountID:    purchase.AccountID,
		Name:         purchase.Name,
		Description:  purchase.Description,
		Date:         purchase.Date,
		Type:         int(purchase.Type()),
		Value:        purchase.Value(),
		Installments: purchase.Installments(),
	}
	if purchase.UserID != entity.UnassignedUserID {
		userID := purchase.UserID
		m.UserID = &userID
	}
	if purchase.IsRecurring() {
		endDate := purchase.EndDate()
		m.EndDate = &endDate
	}
	return m
}
