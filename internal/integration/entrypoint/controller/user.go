// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/financy/backend/internal/application/usecase/user"
	domainerror "github.com/financy/backend/internal/domain/error"
	"github.com/financy/backend/internal/integration/entrypoint/dto"
	"github.com/financy/backend/internal/integration/entrypoint/middleware"
)

// UserController handles user endpoints.
type UserController struct {
	listUseCase     *user.ListUsersUseCase
	createUseCase   *user.CreateUserUseCase
	editUseCase     *user.EditUserUseCase
	deleteUseCase   *user.DeleteUserUseCase
	overviewUseCase *user.GetOverviewUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	listUseCase *user.ListUsersUseCase,
	createUseCase *user.CreateUserUseCase,
	editUseCase *user.EditUserUseCase,
	deleteUseCase *user.DeleteUserUseCase,
	overviewUseCase *user.GetOverviewUseCase,
) *UserController {
	return &UserController{
		listUseCase:     listUseCase,
		createUseCase:   createUseCase,
		editUseCase:     editUseCase,
		deleteUseCase:   deleteUseCase,
		overviewUseCase: overviewUseCase,
	}
}

// List handles GET /users requests.
func (c *UserController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserListResponse(output.Users))
}

// Create handles POST /users requests.
func (c *UserController) Create(ctx *gin.Context) {
	var req dto.UserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingFirstName))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), req.ToInput())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUserResponse(output.User))
}

// Update handles PUT /users/:id requests.
func (c *UserController) Update(ctx *gin.Context) {
	userID, ok := parseID(ctx, "id", "user")
	if !ok {
		return
	}

	var req dto.UserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingFirstName))
		return
	}

	output, err := c.editUseCase.Execute(ctx.Request.Context(), user.EditUserInput{
		UserID:          userID,
		CreateUserInput: req.ToInput(),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// Delete handles DELETE /users/:id requests. A session naming the deleted
// user is logged out.
func (c *UserController) Delete(ctx *gin.Context) {
	userID, ok := parseID(ctx, "id", "user")
	if !ok {
		return
	}

	input := user.DeleteUserInput{UserID: userID}
	if sess, ok := middleware.GetSessionFromContext(ctx); ok {
		input.Session = sess
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteUserResponse{
		DeletedAccounts:  output.DeletedAccounts,
		LeftAccounts:     output.LeftAccounts,
		RemovedPurchases: output.RemovedPurchases,
	})
}

// Overview handles GET /me/overview requests.
func (c *UserController) Overview(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	asOf, err := dto.ParseOptionalDate(ctx.Query("date"))
	if err != nil {
		badRequest(ctx, "Invalid date, expected dd/MM/yyyy", string(domainerror.ErrCodeInvalidUserDate))
		return
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), user.GetOverviewInput{
		Session: sess,
		AsOf:    asOf,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOverviewResponse(output))
}
