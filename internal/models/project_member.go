package models

import (
	"time"
)

// ProjectMember links a user to a project. The composite unique index keeps
// the membership set free of duplicates.
type ProjectMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"projectId"`
	UserID    uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ProjectMember) TableName() string { return "project_members" }
