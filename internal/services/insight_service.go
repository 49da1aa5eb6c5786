package services

import (
	"fmt"
	"time"

	"github.com/yukikurage/project-dashboard-api/internal/constants"
	"github.com/yukikurage/project-dashboard-api/internal/models"
)

// InsightsReport is the derived, non-persisted health bundle for a project.
type InsightsReport struct {
	ProjectID           string   `json:"project_id"`
	ProjectHealth       string   `json:"project_health"`
	Recommendations     []string `json:"recommendations"`
	RiskFactors         []string `json:"risk_factors"`
	PredictedCompletion *string  `json:"predicted_completion"`
}

// InsightService derives health, recommendations, risk factors and a
// completion prediction from a project snapshot and its task set. It is pure:
// it never mutates the inputs and touches no storage.
type InsightService struct {
	now func() time.Time
}

// NewInsightService creates a new InsightService
func NewInsightService() *InsightService {
	return &InsightService{now: time.Now}
}

// ComputeInsights evaluates all four signals at the current wall-clock time.
func (s *InsightService) ComputeInsights(project *models.Project, tasks []models.Task) InsightsReport {
	now := s.now()
	return InsightsReport{
		ProjectID:           project.ID,
		ProjectHealth:       projectHealth(tasks, now),
		Recommendations:     recommendations(tasks, now),
		RiskFactors:         riskFactors(project, tasks, now),
		PredictedCompletion: predictedCompletion(project, tasks, now),
	}
}

// projectHealth classifies the task set with an ordered decision list; the
// first matching tier wins. Rate bounds are exclusive, so boundary values fall
// through to the stricter tier.
func projectHealth(tasks []models.Task, now time.Time) string {
	if len(tasks) == 0 {
		return "No tasks available"
	}

	total := float64(len(tasks))
	completionRate := float64(countByStatus(tasks, models.TaskStatusDone)) / total
	overdueRate := float64(countOverdue(tasks, now)) / total

	switch {
	case completionRate > constants.ExcellentCompletionRate && overdueRate < constants.ExcellentOverdueRate:
		return "Excellent"
	case completionRate > constants.GoodCompletionRate && overdueRate < constants.GoodOverdueRate:
		return "Good"
	case completionRate > constants.AverageCompletionRate && overdueRate < constants.AverageOverdueRate:
		return "Average"
	default:
		return "Needs Attention"
	}
}

// recommendations accumulates independent suggestions; checks are not
// mutually exclusive and their order is stable.
func recommendations(tasks []models.Task, now time.Time) []string {
	if len(tasks) == 0 {
		return []string{"Add tasks to begin tracking project progress"}
	}

	recs := []string{}
	total := float64(len(tasks))

	if float64(countByStatus(tasks, models.TaskStatusDone))/total < constants.LowCompletionRate {
		recs = append(recs, "Focus on completing more tasks to improve project progress")
	}

	if float64(countByStatus(tasks, models.TaskStatusInProgress)) > total*constants.InProgressOverloadRate {
		recs = append(recs, "Too many tasks in progress - consider focusing on completing current tasks")
	}

	highPriority := 0
	for _, t := range tasks {
		switch t.Priority {
		case models.TaskPriorityHigh, models.TaskPriorityCritical:
			highPriority++
		}
	}
	if highPriority > 0 {
		recs = append(recs, fmt.Sprintf("%d high-priority tasks need attention", highPriority))
	}

	if overdue := countOverdue(tasks, now); overdue > 0 {
		recs = append(recs, fmt.Sprintf("Address %d overdue tasks to get back on track", overdue))
	}

	return recs
}

// riskFactors accumulates schedule and staffing risks.
func riskFactors(project *models.Project, tasks []models.Task, now time.Time) []string {
	risks := []string{}

	if project.EndDate != nil {
		deadline := *project.EndDate
		if deadline.Before(now) {
			risks = append(risks, "Project deadline has passed")
		} else if deadline.Before(now.AddDate(0, 0, constants.DeadlineWarningDays)) {
			risks = append(risks, "Project deadline is approaching within a week")
		}
	}

	unassigned := 0
	for _, t := range tasks {
		if t.AssigneeID == nil {
			unassigned++
		}
	}
	if unassigned > 0 {
		risks = append(risks, fmt.Sprintf("%d tasks are unassigned", unassigned))
	}

	if project.Progress < constants.BehindScheduleProgress && project.EndDate != nil {
		timePassed := now.Sub(project.CreatedAt)
		totalTime := project.EndDate.Sub(project.CreatedAt)
		// Skip the check entirely when the timeline is degenerate.
		if totalTime > 0 && timePassed.Seconds()/totalTime.Seconds() > constants.BehindScheduleElapsed {
			risks = append(risks, "Project progress is behind schedule")
		}
	}

	return risks
}

// predictedCompletion extrapolates a finish date from the observed completion
// pace. Each ratio guards its denominator; a zero denominator degrades to the
// documented literal instead of an error.
func predictedCompletion(project *models.Project, tasks []models.Task, now time.Time) *string {
	if len(tasks) == 0 {
		return nil
	}

	completed := countByStatus(tasks, models.TaskStatusDone)
	total := len(tasks)

	if completed == 0 {
		return stringPtr("Cannot predict - no completed tasks yet")
	}
	if completed >= total {
		return stringPtr("Project completed")
	}

	projectAgeDays := now.Sub(project.CreatedAt).Hours() / 24
	if projectAgeDays <= 0 {
		return stringPtr("Cannot predict completion date")
	}

	daysPerTask := projectAgeDays / float64(completed)
	remaining := float64(total - completed)
	estimated := now.Add(time.Duration(remaining * daysPerTask * 24 * float64(time.Hour)))

	return stringPtr(estimated.Format("2006-01-02"))
}

func countByStatus(tasks []models.Task, status models.TaskStatus) int {
	n := 0
	for _, t := range tasks {
		if t.Status == status {
			n++
		}
	}
	return n
}

func countOverdue(tasks []models.Task, now time.Time) int {
	n := 0
	for _, t := range tasks {
		if t.Overdue(now) {
			n++
		}
	}
	return n
}

func stringPtr(s string) *string {
	return &s
}
