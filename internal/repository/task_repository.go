package repository

import (
	"time"

	"github.com/teamtrackhq/teamtrack-api/internal/database"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
	"github.com/teamtrackhq/teamtrack-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination. Visibility follows the
// actor's roster scope: own tasks plus tasks assigned to their downward
// reporting set.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	tasks := []models.Task{}

	query := r.db.Model(&models.Task{})

	if !filter.Scope.All {
		own := r.db.Where("tasks.assignee_id = ? OR tasks.creator_id = ?", filter.ActorID, filter.ActorID)

		switch {
		case filter.Scope.ManagerID != nil:
			teamSubQuery := r.db.Model(&models.User{}).
				Select("1").
				Where("users.id = tasks.assignee_id").
				Where("users.manager_id = ?", *filter.Scope.ManagerID).
				Where("users.deleted_at IS NULL")
			query = query.Where(own.Or("EXISTS (?)", teamSubQuery))
		case filter.Scope.SupervisorID != nil:
			teamSubQuery := r.db.Model(&models.User{}).
				Select("1").
				Where("users.id = tasks.assignee_id").
				Where("users.supervisor_id = ?", *filter.Scope.SupervisorID).
				Where("users.deleted_at IS NULL")
			query = query.Where(own.Or("EXISTS (?)", teamSubQuery))
		default:
			query = query.Where(own)
		}
	}

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.AssigneeID != nil {
		query = query.Where("tasks.assignee_id = ?", *filter.AssigneeID)
	}
	if filter.CreatorID != nil {
		query = query.Where("tasks.creator_id = ?", *filter.CreatorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.last_updated DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Preload("Assignee").Preload("Creator").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// ListIDsUpdatedSince returns ids of tasks whose last_updated is on or after
// the given boundary
func (r *GormTaskRepository) ListIDsUpdatedSince(since time.Time) ([]uint64, error) {
	ids := []uint64{}
	err := r.db.Model(&models.Task{}).
		Where("last_updated >= ?", since).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}
