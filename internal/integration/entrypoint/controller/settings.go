// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/financy/backend/internal/application/usecase/settings"
	"github.com/financy/backend/internal/domain/entity"
	"github.com/financy/backend/internal/integration/entrypoint/dto"
)

// SettingsController handles application settings endpoints.
type SettingsController struct {
	getUseCase   *settings.GetSettingsUseCase
	themeUseCase *settings.UpdateThemeUseCase
}

// NewSettingsController creates a new settings controller instance.
func NewSettingsController(
	getUseCase *settings.GetSettingsUseCase,
	themeUseCase *settings.UpdateThemeUseCase,
) *SettingsController {
	return &SettingsController{
		getUseCase:   getUseCase,
		themeUseCase: themeUseCase,
	}
}

// Get handles GET /settings requests.
func (c *SettingsController) Get(ctx *gin.Context) {
	output, err := c.getUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(output.Settings))
}

// UpdateTheme handles PUT /settings requests.
func (c *SettingsController) UpdateTheme(ctx *gin.Context) {
	var req dto.ThemeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), "")
		return
	}

	output, err := c.themeUseCase.Execute(ctx.Request.Context(), settings.UpdateThemeInput{
		ColorTheme: entity.ColorTheme(*req.ColorTheme),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(output.Settings))
}
