// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/financy/backend/internal/application/usecase/user"
	"github.com/financy/backend/internal/integration/entrypoint/dto"
)

// SessionController handles session endpoints.
type SessionController struct {
	createUseCase *user.CreateSessionUseCase
	endUseCase    *user.EndSessionUseCase
	loginUseCase  *user.LoginUserUseCase
	logoutUseCase *user.LogoutUserUseCase
}

// NewSessionController creates a new session controller instance.
func NewSessionController(
	createUseCase *user.CreateSessionUseCase,
	endUseCase *user.EndSessionUseCase,
	loginUseCase *user.LoginUserUseCase,
	logoutUseCase *user.LogoutUserUseCase,
) *SessionController {
	return &SessionController{
		createUseCase: createUseCase,
		endUseCase:    endUseCase,
		loginUseCase:  loginUseCase,
		logoutUseCase: logoutUseCase,
	}
}

// Create handles POST /sessions requests.
func (c *SessionController) Create(ctx *gin.Context) {
	output, err := c.createUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSessionResponse(output.Session))
}

// Get handles GET /sessions requests.
func (c *SessionController) Get(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSessionResponse(sess))
}

// End handles DELETE /sessions requests.
func (c *SessionController) End(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	if err := c.endUseCase.Execute(ctx.Request.Context(), user.EndSessionInput{Session: sess}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Login handles POST /sessions/login/:userId requests.
func (c *SessionController) Login(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	userID, ok := parseID(ctx, "userId", "user")
	if !ok {
		return
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), user.LoginUserInput{
		Session: sess,
		UserID:  userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// Logout handles POST /sessions/logout requests.
func (c *SessionController) Logout(ctx *gin.Context) {
	sess, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.logoutUseCase.Execute(ctx.Request.Context(), user.LogoutUserInput{Session: sess})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}
