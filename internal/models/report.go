package models

import (
	"time"

	"gorm.io/gorm"
)

type ReportType string

const (
	ReportTypeDaily   ReportType = "daily"
	ReportTypeWeekly  ReportType = "weekly"
	ReportTypeMonthly ReportType = "monthly"
)

// Valid reports whether the report type is one of the three known periods.
func (t ReportType) Valid() bool {
	switch t {
	case ReportTypeDaily, ReportTypeWeekly, ReportTypeMonthly:
		return true
	}
	return false
}

// Report is an immutable snapshot of task activity over a period. The task
// list is frozen at generation time and never recomputed.
type Report struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Reference   string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Type        ReportType     `gorm:"type:varchar(20);not null" json:"type"`
	GeneratedAt time.Time      `json:"generated_at"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Tasks []ReportTask `gorm:"foreignKey:ReportID" json:"tasks,omitempty"`
}

// ReportTask pins one task into a report snapshot.
type ReportTask struct {
	ReportID uint64 `gorm:"primarykey" json:"report_id"`
	TaskID   uint64 `gorm:"primarykey" json:"task_id"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
