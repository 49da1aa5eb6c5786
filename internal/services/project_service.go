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
	ErrProjectNotFound      = errors.New("project not found")
	ErrInvalidProjectStatus = errors.New("invalid project status")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description string
	Status      models.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	OwnerID     string
	TeamMembers []string
	Budget      *float64
}

// UpdateProjectInput represents input for updating a project; nil fields are
// left untouched.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *models.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	OwnerID     *string
	TeamMembers *[]string
	Progress    *float64
	Budget      *float64
}

// Create creates a new project with progress starting at zero
func (s *ProjectService) Create(input CreateProjectInput) (*models.Project, error) {
	if input.Status == "" {
		input.Status = models.ProjectStatusPlanning
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidProjectStatus
	}

	teamMembers := input.TeamMembers
	if teamMembers == nil {
		teamMembers = []string{}
	}

	project := &models.Project{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		OwnerID:     input.OwnerID,
		TeamMembers: teamMembers,
		Progress:    0,
		Budget:      input.Budget,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// List returns all projects
func (s *ProjectService) List() ([]models.Project, error) {
	projects, err := s.projectRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Get returns a project by ID
func (s *ProjectService) Get(id string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// Empty reports whether the patch carries no fields at all.
func (in UpdateProjectInput) Empty() bool {
	return in.Name == nil && in.Description == nil && in.Status == nil &&
		in.StartDate == nil && in.EndDate == nil && in.OwnerID == nil &&
		in.TeamMembers == nil && in.Progress == nil && in.Budget == nil
}

// Update applies a partial update to a project and bumps updated_at; nil
// input fields are ignored
func (s *ProjectService) Update(id string, input UpdateProjectInput) (*models.Project, error) {
	if input.Empty() {
		return nil, ErrNoUpdateData
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrInvalidProjectStatus
	}

	project, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}
	if input.OwnerID != nil {
		project.OwnerID = *input.OwnerID
	}
	if input.TeamMembers != nil {
		project.TeamMembers = *input.TeamMembers
	}
	if input.Progress != nil {
		project.Progress = *input.Progress
	}
	if input.Budget != nil {
		project.Budget = input.Budget
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// Delete removes a project and cascades to its tasks
func (s *ProjectService) Delete(id string) error {
	if err := s.projectRepo.DeleteWithTasks(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
