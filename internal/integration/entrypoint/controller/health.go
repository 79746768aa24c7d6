// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	storageDriver  string
	storageHealthy func() bool
	now            func() time.Time
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Storage   string `json:"storage"`
	Driver    string `json:"driver"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(storageDriver string, storageHealthy func() bool) *HealthController {
	return &HealthController{
		storageDriver:  storageDriver,
		storageHealthy: storageHealthy,
		now:            time.Now,
	}
}

// Check handles GET /health requests.
// It reports whether the configured storage answers.
func (h *HealthController) Check(c *gin.Context) {
	status := "ok"
	storage := "available"
	code := http.StatusOK
	if h.storageHealthy != nil && !h.storageHealthy() {
		status = "degraded"
		storage = "unavailable"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Storage:   storage,
		Driver:    h.storageDriver,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}
