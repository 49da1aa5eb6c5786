package models

import "time"

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusOnHold     ProjectStatus = "on_hold"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

// Valid reports whether s is one of the closed project status values.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusOnHold,
		ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

type Project struct {
	ID          string        `gorm:"primarykey;type:varchar(36)" json:"id"`
	Name        string        `gorm:"not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'planning'" json:"status"`
	StartDate   *time.Time    `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`
	OwnerID     string        `gorm:"not null;index" json:"owner_id"`
	TeamMembers []string      `gorm:"serializer:json" json:"team_members"`
	// Progress is derived from the task set; see services.ProgressService.
	Progress  float64   `gorm:"not null;default:0" json:"progress"`
	Budget    *float64  `json:"budget"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
