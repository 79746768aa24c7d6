// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/financy/backend/internal/application/usecase/account"
	"github.com/financy/backend/internal/domain/entity"
)

// AccountRequest represents the request body for account creation and edition.
type AccountRequest struct {
	Name           string          `json:"name" binding:"required"`
	ClosingDay     uint32          `json:"closingDay"`
	Type           *int            `json:"type,omitempty"`
	Limit          decimal.Decimal `json:"limit"`
	PrimaryColor   string          `json:"primaryColor"`
	SecondaryColor string          `json:"secondaryColor"`
}

// AccountType returns the requested type, Expense when omitted or unknown.
func (r AccountRequest) AccountType() entity.AccountType {
	if r.Type == nil {
		return entity.AccountTypeExpense
	}
	t := entity.AccountType(*r.Type)
	if !t.IsValid() {
		return entity.AccountTypeExpense
	}
	return t
}

// ShareRequest represents the request body for sharing an account.
type ShareRequest struct {
	UserID *uint32 `json:"userId" binding:"required"`
}

// MergeRequest represents the request body for merging an account into another.
type MergeRequest struct {
	TargetID *uint32 `json:"targetId" binding:"required"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID             uint32          `json:"id"`
	UserID         uint32          `json:"userId"`
	Name           string          `json:"name"`
	ClosingDay     uint32          `json:"closingDay"`
	Type           int             `json:"type"`
	TypeName       string          `json:"typeName"`
	Limit          decimal.Decimal `json:"limit"`
	PrimaryColor   string          `json:"primaryColor"`
	SecondaryColor string          `json:"secondaryColor"`
	SharedUserIDs  []uint32        `json:"sharedUserIds"`
}

// AccountListResponse represents the response for listing accounts.
type AccountListResponse struct {
	Owned  []AccountResponse `json:"owned"`
	Shared []AccountResponse `json:"shared"`
}

// DeleteAccountResponse represents the response for account deletion.
type DeleteAccountResponse struct {
	Left             bool `json:"left"`
	RemovedPurchases int  `json:"removedPurchases"`
}

// MergeAccountsResponse represents the response for an account merge.
type MergeAccountsResponse struct {
	Target         AccountResponse `json:"target"`
	MovedPurchases int             `json:"movedPurchases"`
}

// WithholdAccountResponse represents the response for withholding an account.
type WithholdAccountResponse struct {
	Account          AccountResponse `json:"account"`
	RemovedPurchases int             `json:"removedPurchases"`
}

// SummaryResponse represents the limit and due amount of an account as of a date.
type SummaryResponse struct {
	Account        AccountResponse `json:"account"`
	Date           string          `json:"date"`
	StatementDate  string          `json:"statementDate"`
	DueAmount      decimal.Decimal `json:"dueAmount"`
	Limit          decimal.Decimal `json:"limit"`
	UsedLimit      decimal.Decimal `json:"usedLimit"`
	RemainingLimit decimal.Decimal `json:"remainingLimit"`
}

// StatementResponse represents one billing cycle.
type StatementResponse struct {
	Date          string             `json:"date"`
	DueAmount     decimal.Decimal    `json:"dueAmount"`
	Current       bool               `json:"current"`
	Purchases     []PurchaseResponse `json:"purchases"`
	Subscriptions []PurchaseResponse `json:"subscriptions"`
}

// HistoryResponse represents the statement history of an account.
type HistoryResponse struct {
	Account    AccountResponse     `json:"account"`
	Current    *string             `json:"current"`
	Statements []StatementResponse `json:"statements"`
}

// ToAccountResponse converts a domain Account entity to an AccountResponse DTO.
func ToAccountResponse(a *entity.Account) AccountResponse {
	shared := a.SharedUserIDs()
	if shared == nil {
		shared = []uint32{}
	}
	details := a.Details()
	return AccountResponse{
		ID:             a.ID,
		UserID:         a.UserID,
		Name:           details.Name,
		ClosingDay:     details.ClosingDay,
		Type:           int(details.Type),
		TypeName:       details.Type.Name(),
		Limit:          details.Limit,
		PrimaryColor:   details.PrimaryColor,
		SecondaryColor: details.SecondaryColor,
		SharedUserIDs:  shared,
	}
}

// ToAccountResponses converts accounts to AccountResponse DTOs.
func ToAccountResponses(accounts []*entity.Account) []AccountResponse {
	responses := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, ToAccountResponse(a))
	}
	return responses
}

// ToSummaryResponse converts summary output to a SummaryResponse DTO.
func ToSummaryResponse(output *account.GetSummaryOutput) SummaryResponse {
	return SummaryResponse{
		Account:        ToAccountResponse(output.Account),
		Date:           entity.FormatDate(output.AsOf),
		StatementDate:  entity.FormatDate(output.StatementDate),
		DueAmount:      output.DueAmount,
		Limit:          output.Limit,
		UsedLimit:      output.UsedLimit,
		RemainingLimit: output.RemainingLimit,
	}
}

// ToStatementResponse converts a statement to a StatementResponse DTO.
func ToStatementResponse(s *entity.Statement, current bool) StatementResponse {
	return StatementResponse{
		Date:          entity.FormatDate(s.Date),
		DueAmount:     s.DueAmount,
		Current:       current,
		Purchases:     ToPurchaseResponses(s.Purchases),
		Subscriptions: ToPurchaseResponses(s.Subscriptions),
	}
}

// ToHistoryResponse converts statements to a HistoryResponse DTO.
func ToHistoryResponse(a *entity.Account, statements []*entity.Statement, current *entity.Statement) HistoryResponse {
	response := HistoryResponse{
		Account:    ToAccountResponse(a),
		Statements: make([]StatementResponse, 0, len(statements)),
	}
	if current != nil {
		date := entity.FormatDate(current.Date)
		response.Current = &date
	}
	for _, s := range statements {
		response.Statements = append(response.Statements, ToStatementResponse(s, s == current))
	}
	return response
}
