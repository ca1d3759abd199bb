package services

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
)

// SchedulerService generates daily, weekly and monthly reports on a cron
// schedule, so reports exist even when nobody asks for one by hand.
type SchedulerService struct {
	cron    *cron.Cron
	reports *ReportService
}

// NewSchedulerService creates a new SchedulerService running in the given
// location. Period boundaries are computed in the same location.
func NewSchedulerService(loc *time.Location, reports *ReportService) *SchedulerService {
	return &SchedulerService{
		cron:    cron.New(cron.WithLocation(loc)),
		reports: reports,
	}
}

// Start registers the report jobs and starts the scheduler. Each job runs at
// the end of its period so the snapshot covers the whole period.
func (s *SchedulerService) Start() error {
	jobs := []struct {
		spec       string
		reportType models.ReportType
		guard      func(time.Time) bool
	}{
		{"59 23 * * *", models.ReportTypeDaily, nil},
		{"59 23 * * 6", models.ReportTypeWeekly, nil},
		// Cron cannot express "last day of month"; fire on 28-31 and let the
		// guard keep only the actual last day.
		{"59 23 28-31 * *", models.ReportTypeMonthly, func(t time.Time) bool {
			return t.AddDate(0, 0, 1).Day() == 1
		}},
	}

	for _, job := range jobs {
		reportType := job.reportType
		guard := job.guard
		_, err := s.cron.AddFunc(job.spec, func() {
			if guard != nil && !guard(time.Now()) {
				return
			}
			if _, err := s.reports.GenerateReport("", reportType); err != nil {
				log.Printf("Scheduled %s report failed: %v", reportType, err)
				return
			}
			log.Printf("Scheduled %s report generated", reportType)
		})
		if err != nil {
			return err
		}
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
