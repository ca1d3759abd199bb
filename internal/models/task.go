package models

import (
	"time"

	"github.com/teamtrackhq/teamtrack-api/internal/authz"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not-started"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether the status is one of the three lifecycle states.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Status        TaskStatus     `gorm:"type:varchar(20);not null;default:'not-started'" json:"status"`
	AssigneeID    uint64         `gorm:"not null;index" json:"assignee_id"`
	CreatorID     uint64         `gorm:"not null;index" json:"creator_id"`
	AssignedDate  time.Time      `json:"assigned_date"`
	TargetDate    *time.Time     `json:"target_date"`
	CompletedDate *time.Time     `json:"completed_date"`
	Remarks       string         `gorm:"type:text" json:"remarks"`
	LastUpdated   time.Time      `gorm:"index" json:"last_updated"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Assignee *User `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Creator  *User `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

// Snapshot returns the point-in-time copy of the task consumed by the
// authorization policy.
func (t Task) Snapshot() authz.TaskSnapshot {
	return authz.TaskSnapshot{
		ID:         t.ID,
		CreatorID:  t.CreatorID,
		AssigneeID: t.AssigneeID,
	}
}
