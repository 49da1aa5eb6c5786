package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/project-dashboard-api/internal/errors"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	insightCache   InsightCache
}

func NewProjectHandler(projectService *services.ProjectService, insightCache InsightCache) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		insightCache:   insightCache,
	}
}

// CreateProject creates a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Name        string               `json:"name" binding:"required"`
		Description string               `json:"description" binding:"required"`
		Status      models.ProjectStatus `json:"status"`
		StartDate   *time.Time           `json:"start_date"`
		EndDate     *time.Time           `json:"end_date"`
		OwnerID     string               `json:"owner_id" binding:"required"`
		TeamMembers []string             `json:"team_members"`
		Budget      *float64             `json:"budget"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Create(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		OwnerID:     req.OwnerID,
		TeamMembers: req.TeamMembers,
		Budget:      req.Budget,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidProjectStatus) {
			apierrors.BadRequest(c, "Invalid project status")
			return
		}
		apierrors.InternalError(c, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, project)
}

// ListProjects returns all projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetProject returns a specific project by ID
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			apierrors.NotFound(c, "Project not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch project")
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject applies a partial update to a project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	type UpdateProjectRequest struct {
		Name        *string               `json:"name"`
		Description *string               `json:"description"`
		Status      *models.ProjectStatus `json:"status"`
		StartDate   *time.Time            `json:"start_date"`
		EndDate     *time.Time            `json:"end_date"`
		OwnerID     *string               `json:"owner_id"`
		TeamMembers *[]string             `json:"team_members"`
		Progress    *float64              `json:"progress"`
		Budget      *float64              `json:"budget"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Update(c.Param("id"), services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		OwnerID:     req.OwnerID,
		TeamMembers: req.TeamMembers,
		Progress:    req.Progress,
		Budget:      req.Budget,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoUpdateData):
			apierrors.BadRequest(c, "No update data provided")
		case errors.Is(err, services.ErrInvalidProjectStatus):
			apierrors.BadRequest(c, "Invalid project status")
		case errors.Is(err, services.ErrProjectNotFound):
			apierrors.NotFound(c, "Project not found")
		default:
			apierrors.InternalError(c, "Failed to update project")
		}
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject removes a project and all tasks referencing it. The cached
// insight report is dropped as well, so the insights endpoint 404s instead of
// serving a report for a project that no longer exists.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id := c.Param("id")
	if err := h.projectService.Delete(id); err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			apierrors.NotFound(c, "Project not found")
			return
		}
		apierrors.InternalError(c, "Failed to delete project")
		return
	}

	h.insightCache.Invalidate(c.Request.Context(), id)

	c.JSON(http.StatusOK, gin.H{"message": "Project and associated tasks deleted successfully"})
}
