package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
)

// TaskService handles task business logic and chains the progress recompute
// after status-changing updates and deletions.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	progress    *ProgressService
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, progress *ProgressService) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		progress:    progress,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title          string
	Description    string
	Status         models.TaskStatus
	Priority       models.TaskPriority
	ProjectID      string
	AssigneeID     *string
	DueDate        *time.Time
	EstimatedHours *float64
}

// UpdateTaskInput represents input for updating a task; nil fields are left
// untouched. A non-nil Status is what triggers the progress recompute.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Status         *models.TaskStatus
	Priority       *models.TaskPriority
	AssigneeID     *string
	DueDate        *time.Time
	EstimatedHours *float64
	ActualHours    *float64
}

// Empty reports whether the patch carries no fields at all.
func (in UpdateTaskInput) Empty() bool {
	return in.Title == nil && in.Description == nil && in.Status == nil &&
		in.Priority == nil && in.AssigneeID == nil && in.DueDate == nil &&
		in.EstimatedHours == nil && in.ActualHours == nil
}

// Create creates a new task. The referenced project must exist; this is the
// only point where the reference is validated. Progress is deliberately not
// recomputed here, so the new task widens the denominator only once a later
// status update or deletion triggers a recompute.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	if _, err := s.projectRepo.FindByID(input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to verify project: %w", err)
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidTaskStatus
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidTaskPriority
	}

	task := &models.Task{
		ID:             uuid.NewString(),
		Title:          input.Title,
		Description:    input.Description,
		Status:         input.Status,
		Priority:       input.Priority,
		ProjectID:      input.ProjectID,
		AssigneeID:     input.AssigneeID,
		DueDate:        input.DueDate,
		EstimatedHours: input.EstimatedHours,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// List returns tasks matching the filter
func (s *TaskService) List(filter repository.TaskFilter) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// Get returns a task by ID
func (s *TaskService) Get(id string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// Update applies a partial update to a task. When the patch sets status, the
// owning project's progress is recomputed afterwards, best-effort: a
// recompute failure never fails the update.
func (s *TaskService) Update(id string, input UpdateTaskInput) (*models.Task, error) {
	if input.Empty() {
		return nil, ErrNoUpdateData
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrInvalidTaskStatus
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return nil, ErrInvalidTaskPriority
	}

	task, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.AssigneeID != nil {
		task.AssigneeID = input.AssigneeID
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.EstimatedHours != nil {
		task.EstimatedHours = input.EstimatedHours
	}
	if input.ActualHours != nil {
		task.ActualHours = input.ActualHours
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if input.Status != nil {
		s.progress.RecomputeBestEffort(task.ProjectID)
	}

	return task, nil
}

// Delete removes a task and recomputes the owning project's progress. The
// task is resolved once, before the delete, and returned so callers can act
// on the owning project without refetching.
func (s *TaskService) Delete(id string) (*models.Task, error) {
	task, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	s.progress.RecomputeBestEffort(task.ProjectID)

	return task, nil
}
