package handler

import (
	"net/http"

	"energy-marketplace/internal/adapter/http/dto"
	"energy-marketplace/internal/core/ports"
	"energy-marketplace/pkg/response"

	"github.com/gin-gonic/gin"
)

// SessionHandler handles session endpoints.
type SessionHandler struct {
	actions ports.ActionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(actions ports.ActionService) *SessionHandler {
	return &SessionHandler{actions: actions}
}

// Open handles POST /api/v1/sessions.
func (h *SessionHandler) Open(c *gin.Context) {
	token, err := h.actions.Open(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewSessionResponse(token))
}

// HealthCheck handles GET /health, pinging every dependency.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
