package dto

// ProjectAnalytics is the aggregate view over all projects.
type ProjectAnalytics struct {
	TotalProjects         int            `json:"total_projects"`
	ProjectsByStatus      map[string]int `json:"projects_by_status"`
	ProjectsByMonth       map[string]int `json:"projects_by_month"`
	AverageCompletionTime *float64       `json:"average_completion_time"`
}

// TaskAnalytics is the aggregate view over all tasks.
type TaskAnalytics struct {
	TotalTasks      int            `json:"total_tasks"`
	TasksByStatus   map[string]int `json:"tasks_by_status"`
	TasksByPriority map[string]int `json:"tasks_by_priority"`
	OverdueTasks    int            `json:"overdue_tasks"`
}
