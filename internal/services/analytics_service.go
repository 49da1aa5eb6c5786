package services

import (
	"fmt"
	"time"

	"github.com/yukikurage/project-dashboard-api/internal/dto"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
)

// AnalyticsService aggregates dashboard-level statistics over all projects
// and tasks.
type AnalyticsService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	now         func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *AnalyticsService {
	return &AnalyticsService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		now:         time.Now,
	}
}

// ProjectAnalytics returns counts by status, counts by creation month, and the
// mean time to completion in days (nil when no project has completed).
func (s *AnalyticsService) ProjectAnalytics() (dto.ProjectAnalytics, error) {
	projects, err := s.projectRepo.FindAll()
	if err != nil {
		return dto.ProjectAnalytics{}, fmt.Errorf("failed to fetch projects: %w", err)
	}

	byStatus := map[string]int{}
	byMonth := map[string]int{}
	var completionDays []float64

	for _, p := range projects {
		byStatus[string(p.Status)]++
		byMonth[p.CreatedAt.Format("2006-01")]++

		if p.Status == models.ProjectStatusCompleted {
			completionDays = append(completionDays, p.UpdatedAt.Sub(p.CreatedAt).Hours()/24)
		}
	}

	analytics := dto.ProjectAnalytics{
		TotalProjects:    len(projects),
		ProjectsByStatus: byStatus,
		ProjectsByMonth:  byMonth,
	}

	if len(completionDays) > 0 {
		sum := 0.0
		for _, d := range completionDays {
			sum += d
		}
		avg := sum / float64(len(completionDays))
		analytics.AverageCompletionTime = &avg
	}

	return analytics, nil
}

// TaskAnalytics returns counts by status and priority plus the overdue total.
func (s *AnalyticsService) TaskAnalytics() (dto.TaskAnalytics, error) {
	tasks, _, err := s.taskRepo.List(repository.TaskFilter{})
	if err != nil {
		return dto.TaskAnalytics{}, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	now := s.now()
	byStatus := map[string]int{}
	byPriority := map[string]int{}
	overdue := 0

	for _, t := range tasks {
		byStatus[string(t.Status)]++
		byPriority[string(t.Priority)]++
		if t.Overdue(now) {
			overdue++
		}
	}

	return dto.TaskAnalytics{
		TotalTasks:      len(tasks),
		TasksByStatus:   byStatus,
		TasksByPriority: byPriority,
		OverdueTasks:    overdue,
	}, nil
}
