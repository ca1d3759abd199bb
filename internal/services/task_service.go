package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/teamtrackhq/teamtrack-api/internal/authz"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
	"github.com/teamtrackhq/teamtrack-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTitleRequired     = errors.New("title is required")
	ErrTitleEmpty        = errors.New("title cannot be empty")
	ErrAssigneeRequired  = errors.New("an assignee is required")
	ErrInvalidAssignee   = errors.New("assignee must be an active user within your reporting line")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// TaskService handles task business logic. Field-level edit permissions are
// delegated to the authorization policy: details (title, description, target
// date) belong to the creator, status and remarks to the assignee's chain.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	AssigneeID *uint64
	CreatorID  *uint64
	Status     *models.TaskStatus
	Page       int
	PageSize   int
}

// ListTasks returns tasks visible to the actor with the given filters.
func (s *TaskService) ListTasks(input ListTasksInput, actor models.User) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Scope:      authz.RosterScope(actor.Snapshot()),
		ActorID:    actor.ID,
		AssigneeID: input.AssigneeID,
		CreatorID:  input.CreatorID,
		Status:     input.Status,
		Page:       input.Page,
		PageSize:   input.PageSize,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task with related data
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Assignee", "Creator")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	AssigneeID  uint64
	TargetDate  *time.Time
	Remarks     string
}

// CreateTask creates a task assigned to a user inside the actor's downward
// reporting set.
func (s *TaskService) CreateTask(input CreateTaskInput, actor models.User) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.AssigneeID == 0 {
		return nil, ErrAssigneeRequired
	}

	assignee, err := s.loadActiveUser(input.AssigneeID)
	if err != nil {
		return nil, err
	}

	snapshot := assignee.Snapshot()
	if !authz.Can(actor.Snapshot(), authz.ActionCreateTask, authz.Target{NewAssignee: &snapshot}) {
		if actor.Role == authz.RoleMember {
			return nil, ErrPermissionDenied
		}
		return nil, ErrInvalidAssignee
	}

	now := time.Now()
	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		Status:       models.TaskStatusNotStarted,
		AssigneeID:   input.AssigneeID,
		CreatorID:    actor.ID,
		AssignedDate: now,
		TargetDate:   input.TargetDate,
		Remarks:      input.Remarks,
		LastUpdated:  now,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Assignee", "Creator")
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// untouched.
type UpdateTaskInput struct {
	Title           *string
	Description     *string
	TargetDate      *time.Time
	ClearTargetDate bool
	AssigneeID      *uint64
	Status          *models.TaskStatus
	Remarks         *string
}

// UpdateTask applies a partial update, checking each touched field group
// against the authorization policy. The completed date is stamped on the
// transition into "completed" and cleared on the transition out; setting the
// current status again is a no-op for the completed date.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput, actor models.User) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	assignee, err := s.userRepo.FindByID(task.AssigneeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to resolve assignee: %w", err)
	}

	actorSnap := actor.Snapshot()
	taskSnap := task.Snapshot()
	target := authz.Target{Task: &taskSnap}
	if assignee != nil {
		snap := assignee.Snapshot()
		target.Assignee = &snap
	}

	editsDetails := input.Title != nil || input.Description != nil ||
		input.TargetDate != nil || input.ClearTargetDate
	editsAssignee := input.AssigneeID != nil && *input.AssigneeID != task.AssigneeID
	editsStatus := input.Status != nil || input.Remarks != nil

	if editsDetails && !authz.Can(actorSnap, authz.ActionEditTaskDetails, target) {
		return nil, ErrPermissionDenied
	}

	var newAssignee *models.User
	if editsAssignee {
		newAssignee, err = s.loadActiveUser(*input.AssigneeID)
		if err != nil {
			return nil, err
		}
		snap := newAssignee.Snapshot()
		target.NewAssignee = &snap

		if !authz.Can(actorSnap, authz.ActionEditTaskAssignee, target) {
			return nil, ErrPermissionDenied
		}
	}

	if editsStatus && !authz.Can(actorSnap, authz.ActionEditTaskStatus, target) {
		return nil, ErrPermissionDenied
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ClearTargetDate {
		task.TargetDate = nil
	} else if input.TargetDate != nil {
		task.TargetDate = input.TargetDate
	}
	if editsAssignee {
		task.AssigneeID = newAssignee.ID
	}
	if input.Remarks != nil {
		task.Remarks = *input.Remarks
	}

	now := time.Now()
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidTaskStatus
		}
		if *input.Status != task.Status {
			if *input.Status == models.TaskStatusCompleted {
				task.CompletedDate = &now
			} else if task.Status == models.TaskStatusCompleted {
				task.CompletedDate = nil
			}
			task.Status = *input.Status
		}
	}

	task.LastUpdated = now

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Assignee", "Creator")
}

// DeleteTask deletes a task if the actor is the creator or a super admin.
func (s *TaskService) DeleteTask(taskID uint64, actor models.User) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	taskSnap := task.Snapshot()
	if !authz.Can(actor.Snapshot(), authz.ActionDeleteTask, authz.Target{Task: &taskSnap}) {
		return ErrPermissionDenied
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// loadActiveUser resolves an assignee reference to an active user.
func (s *TaskService) loadActiveUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidAssignee
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.Status != models.UserStatusActive {
		return nil, ErrInvalidAssignee
	}
	return user, nil
}
