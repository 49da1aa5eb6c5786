package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yukikurage/project-dashboard-api/internal/metrics"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
)

// ProgressService keeps a project's progress percentage consistent with its
// task set. Recompute is triggered after task status updates and task
// deletions; callers treat a failure as a degraded mode, never as a reason to
// roll back the task operation that triggered it.
type ProgressService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewProgressService creates a new ProgressService
func NewProgressService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, logger *zap.Logger) *ProgressService {
	return &ProgressService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// Recompute recalculates the progress of a project from its current task set
// and persists it together with a fresh updated_at. A project with no tasks
// keeps whatever progress it last had.
func (s *ProgressService) Recompute(projectID string) error {
	tasks, err := s.taskRepo.FindByProjectID(projectID)
	if err != nil {
		metrics.IncrementProgressRecompute("error")
		return fmt.Errorf("failed to fetch tasks for project %s: %w", projectID, err)
	}

	if len(tasks) == 0 {
		metrics.IncrementProgressRecompute("noop")
		return nil
	}

	progress := Progress(tasks)

	if err := s.projectRepo.UpdateProgress(projectID, progress, s.now()); err != nil {
		metrics.IncrementProgressRecompute("error")
		return fmt.Errorf("failed to persist progress for project %s: %w", projectID, err)
	}

	metrics.IncrementProgressRecompute("success")
	return nil
}

// RecomputeBestEffort runs Recompute and swallows any failure after logging
// it. Progress staleness is acceptable; failing the triggering task mutation
// is not.
func (s *ProgressService) RecomputeBestEffort(projectID string) {
	if err := s.Recompute(projectID); err != nil {
		s.logger.Error("progress recompute failed, leaving stored progress stale",
			zap.String("project_id", projectID),
			zap.Error(err),
		)
	}
}

// Progress returns the completion percentage of a task set at full float
// precision. The caller guards the empty set.
func Progress(tasks []models.Task) float64 {
	done := 0
	for _, t := range tasks {
		if t.Status == models.TaskStatusDone {
			done++
		}
	}
	return 100.0 * float64(done) / float64(len(tasks))
}
