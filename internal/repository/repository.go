package repository

import (
	"time"

	"github.com/teamtrackhq/teamtrack-api/internal/authz"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ListActive lists active users visible inside the given roster scope
	ListActive(scope authz.Scope) ([]models.User, error)

	// ListPending lists users awaiting approval
	ListPending() ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete soft deletes a user
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Scope      authz.Scope
	ActorID    uint64
	AssigneeID *uint64
	CreatorID  *uint64
	Status     *models.TaskStatus
	Page       int
	PageSize   int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error

	// ListIDsUpdatedSince returns ids of tasks whose last_updated is on or
	// after the given boundary
	ListIDsUpdatedSince(since time.Time) ([]uint64, error)
}

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	// Create persists a report together with its frozen task snapshot
	Create(report *models.Report, taskIDs []uint64) error

	// FindByID finds a report by ID with its snapshot
	FindByID(id uint64) (*models.Report, error)

	// List lists reports, newest first
	List() ([]models.Report, error)
}
