package models

import "time"

// ActivityLog records a mutation against the store for auditing.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   string    `gorm:"size:36;index" json:"eventId"`
	Action    string    `gorm:"size:50;index" json:"action"` // create, update, delete, add_member, register
	Entity    string    `gorm:"size:50;index" json:"entity"` // user, project, task
	EntityID  uint      `json:"entityId"`
	ActorID   *uint     `json:"actorId"`
	Detail    string    `gorm:"type:text" json:"detail"` // JSON extra data
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
