// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/financy/backend/internal/integration/entrypoint/controller"
	"github.com/financy/backend/internal/integration/entrypoint/middleware"
)

// Controllers groups the HTTP handlers the router serves.
type Controllers struct {
	Health   *controller.HealthController
	Session  *controller.SessionController
	User     *controller.UserController
	Account  *controller.AccountController
	Purchase *controller.PurchaseController
	Settings *controller.SettingsController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine            *gin.Engine
	controllers       Controllers
	sessionMiddleware *middleware.SessionMiddleware
	sessionLimiter    *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	sessionMiddleware *middleware.SessionMiddleware,
	sessionLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		controllers:       controllers,
		sessionMiddleware: sessionMiddleware,
		sessionLimiter:    sessionLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.controllers.Health.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	requireSession := r.sessionMiddleware.Require()

	v1 := r.engine.Group("/api/v1")
	{
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", r.sessionLimiter.Middleware(), r.controllers.Session.Create)
			sessions.GET("", requireSession, r.controllers.Session.Get)
			sessions.DELETE("", requireSession, r.controllers.Session.End)
			sessions.POST("/login/:userId", requireSession, r.controllers.Session.Login)
			sessions.POST("/logout", requireSession, r.controllers.Session.Logout)
		}

		// User management happens before login, so the session is optional
		users := v1.Group("/users")
		users.Use(r.sessionMiddleware.Optional())
		{
			users.GET("", r.controllers.User.List)
			users.POST("", r.controllers.User.Create)
			users.PUT("/:id", r.controllers.User.Update)
			users.DELETE("/:id", r.controllers.User.Delete)
		}

		me := v1.Group("/me")
		me.Use(requireSession)
		{
			me.GET("/overview", r.controllers.User.Overview)
		}

		accounts := v1.Group("/accounts")
		accounts.Use(requireSession)
		{
			accounts.GET("", r.controllers.Account.List)
			accounts.POST("", r.controllers.Account.Create)
			accounts.POST("/deselect", r.controllers.Account.Deselect)
			accounts.PUT("/:id", r.controllers.Account.Update)
			accounts.DELETE("/:id", r.controllers.Account.Delete)
			accounts.POST("/:id/merge", r.controllers.Account.Merge)
			accounts.POST("/:id/share", r.controllers.Account.Share)
			accounts.DELETE("/:id/share/:userId", r.controllers.Account.Withhold)
			accounts.POST("/:id/select", r.controllers.Account.Select)
			accounts.GET("/:id/summary", r.controllers.Account.Summary)
			accounts.GET("/:id/statements", r.controllers.Account.Statements)

			accounts.GET("/:id/purchases", r.controllers.Purchase.List)
			accounts.POST("/:id/purchases", r.controllers.Purchase.Create)
			accounts.PUT("/:id/purchases/:purchaseId", r.controllers.Purchase.Update)
			accounts.DELETE("/:id/purchases/:purchaseId", r.controllers.Purchase.Delete)
		}

		settings := v1.Group("/settings")
		{
			settings.GET("", r.controllers.Settings.Get)
			settings.PUT("", r.controllers.Settings.UpdateTheme)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
