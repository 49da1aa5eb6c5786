package repository

import (
	"time"

	"github.com/yukikurage/project-dashboard-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id string) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindAll retrieves all projects ordered by creation time
func (r *GormProjectRepository) FindAll() ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update saves changes to a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// UpdateProgress persists a recomputed progress value and bumps updated_at.
// Plain read-then-write, last write wins; concurrent recomputes for the same
// project are not serialized.
func (r *GormProjectRepository) UpdateProgress(id string, progress float64, updatedAt time.Time) error {
	result := r.db.Model(&models.Project{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"progress":   progress,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteWithTasks removes a project and all tasks referencing it in a single
// transaction, so no partial-delete state is observable at the API boundary.
func (r *GormProjectRepository) DeleteWithTasks(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Project{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
