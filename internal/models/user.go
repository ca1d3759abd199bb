package models

import (
	"time"

	"github.com/teamtrackhq/teamtrack-api/internal/authz"
	"gorm.io/gorm"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusPending UserStatus = "pending_approval"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         authz.Role     `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	Status       UserStatus     `gorm:"type:varchar(20);not null;default:'pending_approval'" json:"status"`
	AvatarURL    string         `gorm:"type:varchar(512)" json:"avatar_url"`
	SupervisorID *uint64        `gorm:"index" json:"supervisor_id"`
	ManagerID    *uint64        `gorm:"index" json:"manager_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations, resolved on read
	Supervisor *User `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
	Manager    *User `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
}

// Snapshot returns the point-in-time copy of the user consumed by the
// authorization policy.
func (u User) Snapshot() authz.UserSnapshot {
	return authz.UserSnapshot{
		ID:           u.ID,
		Role:         u.Role,
		Active:       u.Status == UserStatusActive,
		SupervisorID: u.SupervisorID,
		ManagerID:    u.ManagerID,
	}
}

// Ref returns the resolved hierarchy link form of the user, used by the
// assignment validator.
func (u User) Ref() authz.UserRef {
	return authz.UserRef{
		ID:     u.ID,
		Role:   u.Role,
		Active: u.Status == UserStatusActive,
	}
}
