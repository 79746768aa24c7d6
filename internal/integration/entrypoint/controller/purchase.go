// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/financy/backend/internal/application/usecase/purchase"
	"github.com/financy/backend/internal/domain/entity"
	domainerror "github.com/financy/backend/internal/domain/error"
	"github.com/financy/backend/internal/integration/entrypoint/dto"
)

// PurchaseController handles purchase endpoints.
type PurchaseController struct {
	listUseCase   *purchase.ListPurchasesUseCase
	createUseCase *purchase.CreatePurchaseUseCase
	editUseCase   *purchase.EditPurchaseUseCase
	deleteUseCase *purchase.DeletePurchaseUseCase
}

// NewPurchaseController creates a new purchase controller instance.
func NewPurchaseController(
	listUseCase *purchase.ListPurchasesUseCase,
	createUseCase *purchase.CreatePurchaseUseCase,
	editUseCase *purchase.EditPurchaseUseCase,
	deleteUseCase *purchase.DeletePurchaseUseCase,
) *PurchaseController {
	return &PurchaseController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		editUseCase:   editUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /accounts/:id/purchases requests.
// Query parameters: userId (contributor), date (dd/MM/yyyy) and active.
func (c *PurchaseController) List(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	accountID, ok := parseID(ctx, "id", "account")
	if !ok {
		return
	}

	input := purchase.ListPurchasesInput{
		Session:   sess,
		AccountID: accountID,
	}

	if userIDStr := ctx.Query("userId"); userIDStr != "" {
		userID, err := strconv.ParseUint(userIDStr, 10, 32)
		if err != nil {
			badRequest(ctx, "Invalid user ID format", "")
			return
		}
		contributor := uint32(userID)
		input.ContributorID = &contributor
	}

	asOf, err := dto.ParseOptionalDate(ctx.Query("date"))
	if err != nil {
		badRequest(ctx, "Invalid date, expected dd/MM/yyyy", string(domainerror.ErrCodeInvalidPurchaseDate))
		return
	}
	input.AsOf = asOf

	if activeStr := ctx.Query("active"); activeStr != "" {
		if active, err := strconv.ParseBool(activeStr); err == nil {
			input.ActiveOnly = active
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPurchaseListResponse(output))
}

// Create handles POST /accounts/:id/purchases requests.
func (c *PurchaseController) Create(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	accountID, ok := parseID(ctx, "id", "account")
	if !ok {
		return
	}

	req, date, endDate, ok := bindPurchase(ctx)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), purchase.CreatePurchaseInput{
		Session:      sess,
		AccountID:    accountID,
		Name:         req.Name,
		Description:  req.Description,
		Date:         date,
		Type:         req.PurchaseType(),
		Value:        req.Value,
		Installments: req.Installments,
		EndDate:      endDate,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPurchaseResponse(output.Purchase))
}

// Update handles PUT /accounts/:id/purchases/:purchaseId requests.
func (c *PurchaseController) Update(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	accountID, ok := parseID(ctx, "id", "account")
	if !ok {
		return
	}

	purchaseID, ok := parseID(ctx, "purchaseId", "purchase")
	if !ok {
		return
	}

	req, date, endDate, ok := bindPurchase(ctx)
	if !ok {
		return
	}

	output, err := c.editUseCase.Execute(ctx.Request.Context(), purchase.EditPurchaseInput{
		Session:      sess,
		AccountID:    accountID,
		PurchaseID:   purchaseID,
		Name:         req.Name,
		Description:  req.Description,
		Date:         date,
		Type:         req.PurchaseType(),
		Value:        req.Value,
		Installments: req.Installments,
		EndDate:      endDate,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPurchaseResponse(output.Purchase))
}

// Delete handles DELETE /accounts/:id/purchases/:purchaseId requests.
// A purchase end-dated instead of removed is returned in the body.
func (c *PurchaseController) Delete(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	accountID, ok := parseID(ctx, "id", "account")
	if !ok {
		return
	}

	purchaseID, ok := parseID(ctx, "purchaseId", "purchase")
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), purchase.DeletePurchaseInput{
		Session:    sess,
		AccountID:  accountID,
		PurchaseID: purchaseID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	if output.Ended {
		ctx.JSON(http.StatusOK, dto.ToPurchaseResponse(output.Purchase))
		return
	}
	ctx.Status(http.StatusNoContent)
}

// bindPurchase parses the request body and its dates, writing a 400 on failure.
func bindPurchase(ctx *gin.Context) (dto.PurchaseRequest, time.Time, time.Time, bool) {
	var req dto.PurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeInvalidPurchaseValue))
		return req, time.Time{}, time.Time{}, false
	}

	date, err := entity.ParseDate(req.Date)
	if err != nil {
		badRequest(ctx, "Invalid date, expected dd/MM/yyyy", string(domainerror.ErrCodeInvalidPurchaseDate))
		return req, time.Time{}, time.Time{}, false
	}

	var endDate time.Time
	if req.EndDate != "" {
		endDate, err = entity.ParseDate(req.EndDate)
		if err != nil {
			badRequest(ctx, "Invalid end date, expected dd/MM/yyyy", string(domainerror.ErrCodeInvalidPurchaseDate))
			return req, time.Time{}, time.Time{}, false
		}
	}

	return req, date, endDate, true
}
