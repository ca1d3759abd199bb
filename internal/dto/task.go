package dto

import (
	"time"

	"github.com/teamtrackhq/teamtrack-api/internal/models"
	"github.com/teamtrackhq/teamtrack-api/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID            uint64            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Status        models.TaskStatus `json:"status"`
	AssigneeID    uint64            `json:"assignee_id"`
	CreatorID     uint64            `json:"creator_id"`
	AssignedDate  time.Time         `json:"assigned_date"`
	TargetDate    *time.Time        `json:"target_date"`
	CompletedDate *time.Time        `json:"completed_date"`
	Remarks       string            `json:"remarks,omitempty"`
	LastUpdated   time.Time         `json:"last_updated"`
	Assignee      *UserSummaryDTO   `json:"assignee,omitempty"`
	Creator       *UserSummaryDTO   `json:"creator,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Status:        task.Status,
		AssigneeID:    task.AssigneeID,
		CreatorID:     task.CreatorID,
		AssignedDate:  task.AssignedDate,
		TargetDate:    task.TargetDate,
		CompletedDate: task.CompletedDate,
		Remarks:       task.Remarks,
		LastUpdated:   task.LastUpdated,
	}
	if task.Assignee != nil {
		summary := ToUserSummaryDTO(*task.Assignee)
		dto.Assignee = &summary
	}
	if task.Creator != nil {
		summary := ToUserSummaryDTO(*task.Creator)
		dto.Creator = &summary
	}
	return dto
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
