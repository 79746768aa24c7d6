// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/financy/backend/internal/application/usecase/user"
	"github.com/financy/backend/internal/domain/entity"
)

// UserRequest represents the request body for user creation and edition.
type UserRequest struct {
	FirstName      string `json:"firstName" binding:"required"`
	LastName       string `json:"lastName"`
	Picture        string `json:"picture"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
}

// ToInput converts the request into use case input.
func (r UserRequest) ToInput() user.CreateUserInput {
	return user.CreateUserInput{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Picture:        r.Picture,
		PrimaryColor:   r.PrimaryColor,
		SecondaryColor: r.SecondaryColor,
	}
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID             uint32 `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	FullName       string `json:"fullName"`
	Picture        string `json:"picture,omitempty"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
}

// UserListResponse represents the response for listing users.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// DeleteUserResponse represents the response for user deletion.
type DeleteUserResponse struct {
	DeletedAccounts  int `json:"deletedAccounts"`
	LeftAccounts     int `json:"leftAccounts"`
	RemovedPurchases int `json:"removedPurchases"`
}

// ExpenseResponse is the amount spent on one purchase category.
type ExpenseResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// OverviewResponse represents the due amount and spending of the active user.
type OverviewResponse struct {
	User      UserResponse      `json:"user"`
	Date      string            `json:"date"`
	DueAmount decimal.Decimal   `json:"dueAmount"`
	Expenses  []ExpenseResponse `json:"expenses"`
	Owned     []AccountResponse `json:"owned"`
	Shared    []AccountResponse `json:"shared"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		FullName:       u.FullName(),
		Picture:        u.Picture,
		PrimaryColor:   u.PrimaryColor,
		SecondaryColor: u.SecondaryColor,
	}
}

// ToUserListResponse converts users to a UserListResponse DTO.
func ToUserListResponse(users []*entity.User) UserListResponse {
	response := UserListResponse{Users: make([]UserResponse, 0, len(users))}
	for _, u := range users {
		response.Users = append(response.Users, ToUserResponse(u))
	}
	return response
}

// ToOverviewResponse converts overview output to an OverviewResponse DTO.
// Expenses are ordered by purchase type.
func ToOverviewResponse(output *user.GetOverviewOutput) OverviewResponse {
	expenses := make([]ExpenseResponse, 0, len(output.ExpenseMap))
	for category, amount := range output.ExpenseMap {
		expenses = append(expenses, ExpenseResponse{Category: category, Amount: amount})
	}
	sort.Slice(expenses, func(i, j int) bool {
		return entity.ParsePurchaseType(expenses[i].Category) < entity.ParsePurchaseType(expenses[j].Category)
	})

	return OverviewResponse{
		User:      ToUserResponse(output.User),
		Date:      entity.FormatDate(output.AsOf),
		DueAmount: output.DueAmount,
		Expenses:  expenses,
		Owned:     ToAccountResponses(output.Owned),
		Shared:    ToAccountResponses(output.Shared),
	}
}
