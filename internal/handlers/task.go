package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/project-dashboard-api/internal/dto"
	apierrors "github.com/yukikurage/project-dashboard-api/internal/errors"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"github.com/yukikurage/project-dashboard-api/internal/services"
	"github.com/yukikurage/project-dashboard-api/internal/utils"
)

type TaskHandler struct {
	taskService  *services.TaskService
	insightCache InsightCache
}

func NewTaskHandler(taskService *services.TaskService, insightCache InsightCache) *TaskHandler {
	return &TaskHandler{
		taskService:  taskService,
		insightCache: insightCache,
	}
}

// CreateTask creates a new task. The referenced project must exist.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title          string              `json:"title" binding:"required"`
		Description    string              `json:"description"`
		Status         models.TaskStatus   `json:"status"`
		Priority       models.TaskPriority `json:"priority"`
		ProjectID      string              `json:"project_id" binding:"required"`
		AssigneeID     *string             `json:"assignee_id"`
		DueDate        *time.Time          `json:"due_date"`
		EstimatedHours *float64            `json:"estimated_hours"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(services.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		ProjectID:      req.ProjectID,
		AssigneeID:     req.AssigneeID,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			apierrors.NotFound(c, "Project not found")
		case errors.Is(err, services.ErrInvalidTaskStatus):
			apierrors.BadRequest(c, "Invalid task status")
		case errors.Is(err, services.ErrInvalidTaskPriority):
			apierrors.BadRequest(c, "Invalid task priority")
		default:
			apierrors.InternalError(c, "Failed to create task")
		}
		return
	}

	h.insightCache.Invalidate(c.Request.Context(), task.ProjectID)

	c.JSON(http.StatusCreated, task)
}

// ListTasks returns tasks, optionally filtered by project_id and status
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.TaskFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if projectID := c.Query("project_id"); projectID != "" {
		filter.ProjectID = &projectID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TaskStatus(statusStr)
		if !status.Valid() {
			apierrors.BadRequest(c, "Invalid task status")
			return
		}
		filter.Status = &status
	}

	tasks, total, err := h.taskService.List(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks: tasks,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, "Task not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch task")
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask applies a partial update to a task. A patch that carries status
// triggers the progress recompute on the owning project.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	type UpdateTaskRequest struct {
		Title          *string              `json:"title"`
		Description    *string              `json:"description"`
		Status         *models.TaskStatus   `json:"status"`
		Priority       *models.TaskPriority `json:"priority"`
		AssigneeID     *string              `json:"assignee_id"`
		DueDate        *time.Time           `json:"due_date"`
		EstimatedHours *float64             `json:"estimated_hours"`
		ActualHours    *float64             `json:"actual_hours"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Update(c.Param("id"), services.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		AssigneeID:     req.AssigneeID,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoUpdateData):
			apierrors.BadRequest(c, "No update data provided")
		case errors.Is(err, services.ErrInvalidTaskStatus):
			apierrors.BadRequest(c, "Invalid task status")
		case errors.Is(err, services.ErrInvalidTaskPriority):
			apierrors.BadRequest(c, "Invalid task priority")
		case errors.Is(err, services.ErrTaskNotFound):
			apierrors.NotFound(c, "Task not found")
		default:
			apierrors.InternalError(c, "Failed to update task")
		}
		return
	}

	h.insightCache.Invalidate(c.Request.Context(), task.ProjectID)

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task and recomputes the owning project's progress
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, err := h.taskService.Delete(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, "Task not found")
			return
		}
		apierrors.InternalError(c, "Failed to delete task")
		return
	}

	h.insightCache.Invalidate(c.Request.Context(), task.ProjectID)

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
