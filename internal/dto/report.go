package dto

import (
	"time"

	"github.com/teamtrackhq/teamtrack-api/internal/models"
)

// ReportDTO represents a report in API responses
type ReportDTO struct {
	ID          uint64            `json:"id"`
	Reference   string            `json:"reference"`
	Title       string            `json:"title"`
	Type        models.ReportType `json:"type"`
	GeneratedAt time.Time         `json:"generated_at"`
	TaskIDs     []uint64          `json:"task_ids"`
	Tasks       []TaskDTO         `json:"tasks,omitempty"`
}

// ToReportDTO converts a Report model to ReportDTO. Snapshot tasks are
// embedded only when loaded.
func ToReportDTO(report models.Report, includeTasks bool) ReportDTO {
	dto := ReportDTO{
		ID:          report.ID,
		Reference:   report.Reference,
		Title:       report.Title,
		Type:        report.Type,
		GeneratedAt: report.GeneratedAt,
		TaskIDs:     make([]uint64, len(report.Tasks)),
	}
	for i, entry := range report.Tasks {
		dto.TaskIDs[i] = entry.TaskID
		if includeTasks && entry.Task.ID != 0 {
			dto.Tasks = append(dto.Tasks, ToTaskDTO(entry.Task))
		}
	}
	return dto
}

// ToReportDTOs converts a slice of Report models
func ToReportDTOs(reports []models.Report) []ReportDTO {
	dtos := make([]ReportDTO, len(reports))
	for i, report := range reports {
		dtos[i] = ToReportDTO(report, false)
	}
	return dtos
}
