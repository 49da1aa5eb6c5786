package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/project-dashboard-api/internal/errors"
	"github.com/yukikurage/project-dashboard-api/internal/services"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// ProjectAnalytics returns aggregate statistics over all projects
func (h *AnalyticsHandler) ProjectAnalytics(c *gin.Context) {
	analytics, err := h.analyticsService.ProjectAnalytics()
	if err != nil {
		apierrors.InternalError(c, "Failed to compute project analytics")
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// TaskAnalytics returns aggregate statistics over all tasks
func (h *AnalyticsHandler) TaskAnalytics(c *gin.Context) {
	analytics, err := h.analyticsService.TaskAnalytics()
	if err != nil {
		apierrors.InternalError(c, "Failed to compute task analytics")
		return
	}

	c.JSON(http.StatusOK, analytics)
}
