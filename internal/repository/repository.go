package repository

import (
	"time"

	"github.com/yukikurage/project-dashboard-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindAll retrieves all users
	FindAll() ([]models.User, error)

	// Update saves changes to a user
	Update(user *models.User) error

	// Delete removes a user
	Delete(id string) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id string) (*models.Project, error)

	// FindAll retrieves all projects
	FindAll() ([]models.Project, error)

	// Update saves changes to a project
	Update(project *models.Project) error

	// UpdateProgress persists a recomputed progress value and bumps updated_at
	UpdateProgress(id string, progress float64, updatedAt time.Time) error

	// DeleteWithTasks removes a project and all tasks referencing it in a
	// single transaction
	DeleteWithTasks(id string) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID *string
	Status    *models.TaskStatus
	Page      int
	PageSize  int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// FindByProjectID retrieves the full task set of a project
	FindByProjectID(projectID string) ([]models.Task, error)

	// Update saves changes to a task
	Update(task *models.Task) error

	// Delete removes a task
	Delete(id string) error
}
