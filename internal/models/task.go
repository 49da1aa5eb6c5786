package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

// Valid reports whether s is one of the closed task status values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "low"
	TaskPriorityMedium   TaskPriority = "medium"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityCritical TaskPriority = "critical"
)

// Valid reports whether p is one of the closed task priority values.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

type Task struct {
	ID             string       `gorm:"primarykey;type:varchar(36)" json:"id"`
	Title          string       `gorm:"not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description"`
	Status         TaskStatus   `gorm:"type:varchar(20);not null;default:'todo';index" json:"status"`
	Priority       TaskPriority `gorm:"type:varchar(20);not null;default:'medium';index" json:"priority"`
	ProjectID      string       `gorm:"not null;index" json:"project_id"`
	AssigneeID     *string      `json:"assignee_id"`
	DueDate        *time.Time   `gorm:"index" json:"due_date"`
	EstimatedHours *float64     `json:"estimated_hours"`
	ActualHours    *float64     `json:"actual_hours"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Overdue reports whether the task has a due date in the past and is not done.
// The same rule is used by the insight engine and the task analytics.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskStatusDone
}
