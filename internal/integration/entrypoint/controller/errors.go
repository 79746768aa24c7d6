// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/financy/backend/internal/application/session"
	domainerror "github.com/financy/backend/internal/domain/error"
	"github.com/financy/backend/internal/integration/entrypoint/dto"
	"github.com/financy/backend/internal/integration/entrypoint/middleware"
)

// handleError maps domain errors to HTTP responses.
func handleError(ctx *gin.Context, err error) {
	var (
		purchaseErr *domainerror.PurchaseError
		accountErr  *domainerror.AccountError
		userErr     *domainerror.UserError
		storageErr  *domainerror.StorageError
	)

	switch {
	case errors.As(err, &purchaseErr):
		ctx.JSON(purchaseStatus(purchaseErr.Code), dto.ErrorResponse{
			Error: purchaseErr.Message,
			Code:  string(purchaseErr.Code),
		})
	case errors.As(err, &accountErr):
		ctx.JSON(accountStatus(accountErr.Code), dto.ErrorResponse{
			Error: accountErr.Message,
			Code:  string(accountErr.Code),
		})
	case errors.As(err, &userErr):
		ctx.JSON(userStatus(userErr.Code), dto.ErrorResponse{
			Error: userErr.Message,
			Code:  string(userErr.Code),
		})
	case errors.As(err, &storageErr):
		slog.ErrorContext(ctx.Request.Context(), "Storage failure", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: storageErr.Message,
			Code:  string(storageErr.Code),
		})
	default:
		slog.ErrorContext(ctx.Request.Context(), "Request failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

func purchaseStatus(code domainerror.PurchaseErrorCode) int {
	switch code {
	case domainerror.ErrCodePurchaseNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedPurchase:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidPurchaseDate,
		domainerror.ErrCodeInvalidPurchaseValue,
		domainerror.ErrCodeMissingPurchaseName:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func accountStatus(code domainerror.AccountErrorCode) int {
	switch code {
	case domainerror.ErrCodeAccountNotFound,
		domainerror.ErrCodeNoAccountSelected,
		domainerror.ErrCodeShareUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeAccountAccessDenied, domainerror.ErrCodeNotAccountOwner:
		return http.StatusForbidden
	case domainerror.ErrCodeMissingAccountName,
		domainerror.ErrCodeInvalidAccountLimit,
		domainerror.ErrCodeInvalidAccountDate,
		domainerror.ErrCodeMergeSameAccount,
		domainerror.ErrCodeAlreadySharing,
		domainerror.ErrCodeNotSharing,
		domainerror.ErrCodeCannotShareWithOwner:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func userStatus(code domainerror.UserErrorCode) int {
	switch code {
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeSessionNotFound, domainerror.ErrCodeNotLoggedIn:
		return http.StatusUnauthorized
	case domainerror.ErrCodeMissingFirstName, domainerror.ErrCodeInvalidUserDate:
		return http.StatusBadRequest
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// requireSession returns the session resolved by the middleware, writing a
// 401 when there is none.
func requireSession(ctx *gin.Context) (*session.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Session not found",
			Code:  string(domainerror.ErrCodeSessionNotFound),
		})
		return nil, false
	}
	return sess, true
}

// parseID parses a uint32 path parameter, writing a 400 when it is invalid.
func parseID(ctx *gin.Context, param, label string) (uint32, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + label + " ID format",
		})
		return 0, false
	}
	return uint32(id), true
}

func badRequest(ctx *gin.Context, message, code string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
