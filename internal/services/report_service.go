package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
	"github.com/teamtrackhq/teamtrack-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound    = errors.New("report not found")
	ErrInvalidReportType = errors.New("report type must be daily, weekly or monthly")
)

// ReportService generates immutable period reports. A report snapshots the
// ids of tasks touched since the period boundary and is never recomputed.
type ReportService struct {
	reportRepo repository.ReportRepository
	taskRepo   repository.TaskRepository
	now        func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo repository.ReportRepository, taskRepo repository.TaskRepository) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		taskRepo:   taskRepo,
		now:        time.Now,
	}
}

// PeriodStart returns the inclusive lower boundary for a report generated at
// t: local midnight for daily, the most recent Sunday midnight for weekly,
// the first of the month for monthly.
func PeriodStart(t time.Time, reportType models.ReportType) time.Time {
	switch reportType {
	case models.ReportTypeDaily:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case models.ReportTypeWeekly:
		midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		return midnight.AddDate(0, 0, -int(t.Weekday()))
	case models.ReportTypeMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
	return t
}

// GenerateReport creates a report for the period ending now. The task list is
// frozen at generation time.
func (s *ReportService) GenerateReport(title string, reportType models.ReportType) (*models.Report, error) {
	if !reportType.Valid() {
		return nil, ErrInvalidReportType
	}

	generatedAt := s.now()
	if title == "" {
		title = fmt.Sprintf("%s report %s", reportType, generatedAt.Format("2006-01-02"))
	}

	boundary := PeriodStart(generatedAt, reportType)
	taskIDs, err := s.taskRepo.ListIDsUpdatedSince(boundary)
	if err != nil {
		return nil, fmt.Errorf("failed to collect tasks for report: %w", err)
	}

	report := &models.Report{
		Reference:   uuid.NewString(),
		Title:       title,
		Type:        reportType,
		GeneratedAt: generatedAt,
	}

	if err := s.reportRepo.Create(report, taskIDs); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	return s.reportRepo.FindByID(report.ID)
}

// ListReports returns all reports, newest first.
func (s *ReportService) ListReports() ([]models.Report, error) {
	reports, err := s.reportRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// GetReport returns a report with its frozen task snapshot.
func (s *ReportService) GetReport(id uint64) (*models.Report, error) {
	report, err := s.reportRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return report, nil
}
