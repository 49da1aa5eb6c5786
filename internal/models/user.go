package models

import "time"

type User struct {
	ID        string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Role      string    `gorm:"not null" json:"role"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}
