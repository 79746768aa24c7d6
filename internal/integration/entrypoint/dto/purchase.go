// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/financy/backend/internal/application/usecase/purchase"
	"github.com/financy/backend/internal/domain/entity"
)

// PurchaseRequest represents the request body for purchase creation and edition.
type PurchaseRequest struct {
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Date         string          `json:"date" binding:"required"`
	Type         *int            `json:"type,omitempty"`
	Value        decimal.Decimal `json:"value"`
	Installments uint32          `json:"installments"`
	EndDate      string          `json:"endDate,omitempty"`
}

// PurchaseType returns the requested type, Other when omitted or unknown.
func (r PurchaseRequest) PurchaseType() entity.PurchaseType {
	if r.Type == nil {
		return entity.PurchaseTypeOther
	}
	t := entity.PurchaseType(*r.Type)
	if !t.IsValid() {
		return entity.PurchaseTypeOther
	}
	return t
}

// PurchaseResponse represents a purchase in API responses.
type PurchaseResponse struct {
	ID               uint32          `json:"id"`
	UserID           uint32          `json:"userId"`
	AccountID        uint32          `json:"accountId"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Date             string          `json:"date"`
	Type             int             `json:"type"`
	TypeName         string          `json:"typeName"`
	Value            decimal.Decimal `json:"value"`
	Installments     uint32          `json:"installments"`
	InstallmentValue decimal.Decimal `json:"installmentValue"`
	EndDate          *string         `json:"endDate,omitempty"`
}

// PurchaseStatusResponse is a purchase with its payment state as of a date.
type PurchaseStatusResponse struct {
	PurchaseResponse
	PaidInstallments      uint32          `json:"paidInstallments"`
	RemainingInstallments uint32          `json:"remainingInstallments"`
	RemainingValue        decimal.Decimal `json:"remainingValue"`
	IsActive              bool            `json:"isActive"`
	IsFullyPaid           bool            `json:"isFullyPaid"`
}

// PurchaseListResponse represents the response for listing purchases.
type PurchaseListResponse struct {
	Date      string                   `json:"date"`
	Purchases []PurchaseStatusResponse `json:"purchases"`
}

// ToPurchaseResponse converts a domain Purchase entity to a PurchaseResponse DTO.
func ToPurchaseResponse(p *entity.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		AccountID:        p.AccountID,
		Name:             p.Name,
		Description:      p.Description,
		Date:             entity.FormatDate(p.Date),
		Type:             int(p.Type()),
		TypeName:         p.TypeName(),
		Value:            p.Value(),
		Installments:     p.Installments(),
		InstallmentValue: p.InstallmentValue(),
		EndDate:          optionalDate(p.EndDate()),
	}
}

// ToPurchaseResponses converts purchases to PurchaseResponse DTOs.
func ToPurchaseResponses(purchases []*entity.Purchase) []PurchaseResponse {
	responses := make([]PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		responses = append(responses, ToPurchaseResponse(p))
	}
	return responses
}

// ToPurchaseListResponse converts list output to a PurchaseListResponse DTO.
func ToPurchaseListResponse(output *purchase.ListPurchasesOutput) PurchaseListResponse {
	response := PurchaseListResponse{
		Date:      entity.FormatDate(output.AsOf),
		Purchases: make([]PurchaseStatusResponse, 0, len(output.Purchases)),
	}
	for _, status := range output.Purchases {
		response.Purchases = append(response.Purchases, PurchaseStatusResponse{
			PurchaseResponse:      ToPurchaseResponse(status.Purchase),
			PaidInstallments:      status.PaidInstallments,
			RemainingInstallments: status.RemainingInstallments,
			RemainingValue:        status.RemainingValue,
			IsActive:              status.IsActive,
			IsFullyPaid:           status.IsFullyPaid,
		})
	}
	return response
}
