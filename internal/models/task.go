package models

import (
	"time"

	"gorm.io/gorm"
)

// Task status values. Statuses are stored as free strings; these are the ones
// the frontend board renders, and "Done" drives the progress percentage.
const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusDone       = "Done"
)

// Task is a unit of work inside a project, optionally assigned to a user.
type Task struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"size:2000" json:"description"`
	ProjectID   uint           `gorm:"index;not null" json:"projectId"`
	AssignedTo  *uint          `gorm:"index" json:"assignedTo"`
	Status      string         `gorm:"size:50;default:To Do" json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Task) TableName() string { return "tasks" }
