package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/project-dashboard-api/internal/errors"
	"github.com/yukikurage/project-dashboard-api/internal/metrics"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"github.com/yukikurage/project-dashboard-api/internal/services"
)

// InsightCache is the handler-side view of the insight report cache. Every
// mutation that can change a project's report goes through Invalidate: task
// create, update and delete, and project deletion.
type InsightCache interface {
	Get(ctx context.Context, projectID string) (services.InsightsReport, bool)
	Set(ctx context.Context, projectID string, report services.InsightsReport)
	Invalidate(ctx context.Context, projectID string)
}

type InsightHandler struct {
	projectService *services.ProjectService
	insightService *services.InsightService
	taskRepo       repository.TaskRepository
	insightCache   InsightCache
}

func NewInsightHandler(projectService *services.ProjectService, insightService *services.InsightService, taskRepo repository.TaskRepository, insightCache InsightCache) *InsightHandler {
	return &InsightHandler{
		projectService: projectService,
		insightService: insightService,
		taskRepo:       taskRepo,
		insightCache:   insightCache,
	}
}

// ProjectInsights returns the derived health report for a project. The
// project must exist; its task set is loaded here and handed to the pure
// insight engine.
func (h *InsightHandler) ProjectInsights(c *gin.Context) {
	projectID := c.Param("project_id")
	ctx := c.Request.Context()

	if report, ok := h.insightCache.Get(ctx, projectID); ok {
		metrics.IncrementInsightReport("cache")
		c.JSON(http.StatusOK, report)
		return
	}

	project, err := h.projectService.Get(projectID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			apierrors.NotFound(c, "Project not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch project")
		return
	}

	tasks, err := h.taskRepo.FindByProjectID(projectID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch project tasks")
		return
	}

	report := h.insightService.ComputeInsights(project, tasks)
	metrics.IncrementInsightReport("computed")

	h.insightCache.Set(ctx, projectID, report)

	c.JSON(http.StatusOK, report)
}
