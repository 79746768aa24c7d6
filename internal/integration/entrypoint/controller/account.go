// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/financy/backend/internal/application/usecase/account"
	domainerror "github.com/financy/backend/internal/domain/error"
	"github.com/financy/backend/internal/integration/entrypoint/dto"
)

// AccountUseCases groups the account use cases the controller serves.
type AccountUseCases struct {
	List     *account.ListAccountsUseCase
	Create   *account.CreateAccountUseCase
	Edit     *account.EditAccountUseCase
	Delete   *account.DeleteAccountUseCase
	Merge    *account.MergeAccountsUseCase
	Share    *account.ShareAccountUseCase
	Withhold *account.WithholdAccountUseCase
	Select   *account.SelectAccountUseCase
	Deselect *account.DeselectAccountUseCase
	Summary  *account.GetSummaryUseCase
	History  *account.GetHistoryUseCase
}

// AccountController handles account endpoints.
type AccountController struct {
	useCases AccountUseCases
}

// NewAccountController creates a new account controller instance.
func NewAccountController(useCases AccountUseCases) *AccountController {
	return &AccountController{
		useCases: useCases,
	}
}

// List handles GET /accounts requests.
func (c *AccountController) List(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.useCases.List.Execute(ctx.Request.Context(), account.ListAccountsInput{Session: sess})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AccountListResponse{
		Owned:  dto.ToAccountResponses(output.Owned),
		Shared: dto.ToAccountResponses(output.Shared),
	})
}

// Create handles POST /accounts requests.
func (c *AccountController) Create(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req dto.AccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingAccountName))
		return
	}

	output, err := c.useCases.Create.Execute(ctx.Request.Context(), account.CreateAccountInput{
		Session:        sess,
		Name:           req.Name,
		ClosingDay:     req.ClosingDay,
		Type:           req.AccountType(),
		Limit:          req.Limit,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAccountResponse(output.Account))
}

// Update handles PUT /accounts/:id requests.
func (c *AccountController) Update(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	accountID, ok := parseID(ctx, "id", "account")
	if !ok {
		return
	}

	var req dto.AccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingAccountName))
		return
	}

	output, err := c.useCases.Edit.Execute(ctx.Request.Context(), account.EditAccountInput{
		Session:        sess,
		AccountID:      accountID,
		Name:           req.Name,
		ClosingDay:     req.ClosingDay,
		Type:           req.AccountType(),
		Limit:          req.Limit,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountResponse(output.Account))
}

// Delete handles DELETE /accounts/:id requests. The owner deletes the
// account; a sharer leaves it.
func (c *AccountController) Delete(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	accountID, ok := parseID(ctx, "id", "account")
	if !ok {
		return
	}

	output, err := c.useCases.Delete.Execute(ctx.Request.Context(), account.DeleteAccountInput{
		Session:   sess,
		AccountID: accountID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteAccountResponse{
		Left:             output.Left,
		RemovedPurchases: output.RemovedPurchases,
	})
}

// Merge handles POST /accounts/:id/merge requests.
func (c *AccountController) Merge(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	sourceID, ok := parseID(ctx, "id", "account")
	if !ok {
		return
	}

	var req dto.MergeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), "")
		return
	}

	output, err := c.useCases.Merge.Execute(ctx.Request.Context(), account.MergeAccountsInput{
		Session:  sess,
		SourceID: sourceID,
		TargetID: *req.TargetID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MergeAccountsResponse{
		Target:         dto.ToAccountResponse(output.Target),
		MovedPurchases: output.MovedPurchases,
	})
}

// Share handles POST /accounts/:id/share requests.
func (c *AccountController) Share(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	accountID, ok := parseID(ctx, "id", "account")
	if !ok {
		return
	}

	var req dto.ShareRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), "")
		return
	}

	output, err := c.useCases.Share.Execute(ctx.Request.Context(), account.ShareAccountInput{
		Session:   sess,
		AccountID: accountID,
		UserID:    *req.UserID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountResponse(output.Account))
}

// Withhold handles DELETE /accounts/:id/share/:userId requests.
func (c *AccountController) Withhold(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	accountID, ok := parseID(ctx, "id", "account")
	if !ok {
		return
	}

	userID, ok := parseID(ctx, "userId", "user")
	if !ok {
		return
	}

	output, err := c.useCases.Withhold.Execute(ctx.Request.Context(), account.WithholdAccountInput{
		Session:   sess,
		AccountID: accountID,
		UserID:    userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.WithholdAccountResponse{
		Account:          dto.ToAccountResponse(output.Account),
		RemovedPurchases: output.RemovedPurchases,
	})
}

// Select handles POST /accounts/:id/select requests.
func (c *AccountController) Select(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	accountID, ok := parseID(ctx, "id", "account")
	if !ok {
		return
	}

	output, err := c.useCases.Select.Execute(ctx.Request.Context(), account.SelectAccountInput{
		Session:   sess,
		AccountID: accountID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHistoryResponse(output.Account, output.History, output.Current))
}

// Deselect handles POST /accounts/deselect requests.
func (c *AccountController) Deselect(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	if _, err := c.useCases.Deselect.Execute(ctx.Request.Context(), account.DeselectAccountInput{Session: sess}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Summary handles GET /accounts/:id/summary requests.
func (c *AccountController) Summary(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	accountID, ok := parseID(ctx, "id", "account")
	if !ok {
		return
	}

	asOf, err := dto.ParseOptionalDate(ctx.Query("date"))
	if err != nil {
		badRequest(ctx, "Invalid date, expected dd/MM/yyyy", string(domainerror.ErrCodeInvalidAccountDate))
		return
	}

	output, err := c.useCases.Summary.Execute(ctx.Request.Context(), account.GetSummaryInput{
		Session:   sess,
		AccountID: accountID,
		AsOf:      asOf,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}

// Statements handles GET /accounts/:id/statements requests.
func (c *AccountController) Statements(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	accountID, ok := parseID(ctx, "id", "account")
	if !ok {
		return
	}

	output, err := c.useCases.History.Execute(ctx.Request.Context(), account.GetHistoryInput{
		Session:   sess,
		AccountID: accountID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHistoryResponse(output.Account, output.Statements, output.Current))
}
