package dto

import (
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/utils"
)

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []models.Task            `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}
