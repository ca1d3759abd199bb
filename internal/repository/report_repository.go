package repository

import (
	"github.com/teamtrackhq/teamtrack-api/internal/models"
	"gorm.io/gorm"
)

// GormReportRepository is a GORM implementation of ReportRepository
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &GormReportRepository{db: db}
}

// Create persists a report together with its frozen task snapshot
func (r *GormReportRepository) Create(report *models.Report, taskIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return err
		}

		if len(taskIDs) == 0 {
			return nil
		}

		entries := make([]models.ReportTask, len(taskIDs))
		for i, taskID := range taskIDs {
			entries[i] = models.ReportTask{
				ReportID: report.ID,
				TaskID:   taskID,
			}
		}

		return tx.Create(&entries).Error
	})
}

// FindByID finds a report by ID with its snapshot
func (r *GormReportRepository) FindByID(id uint64) (*models.Report, error) {
	var report models.Report
	if err := r.db.Preload("Tasks").Preload("Tasks.Task").First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// List lists reports, newest first
func (r *GormReportRepository) List() ([]models.Report, error) {
	reports := []models.Report{}
	if err := r.db.Preload("Tasks").Order("generated_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
