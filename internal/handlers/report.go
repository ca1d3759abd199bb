package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamtrackhq/teamtrack-api/internal/dto"
	apierrors "github.com/teamtrackhq/teamtrack-api/internal/errors"
	"github.com/teamtrackhq/teamtrack-api/internal/models"
	"github.com/teamtrackhq/teamtrack-api/internal/services"
)

// ReportHandler coordinates report HTTP handlers.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GenerateReport creates a report snapshot on demand.
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	type GenerateReportRequest struct {
		Title string `json:"title"`
		Type  string `json:"type" binding:"required"`
	}

	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.reportService.GenerateReport(req.Title, models.ReportType(req.Type))
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReportDTO(*report, false))
}

// ListReports returns all generated reports.
func (h *ReportHandler) ListReports(c *gin.Context) {
	reports, err := h.reportService.ListReports()
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": dto.ToReportDTOs(reports)})
}

// GetReport returns a report with its frozen task snapshot.
func (h *ReportHandler) GetReport(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetReport(id)
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReportDTO(*report, true))
}

func respondReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReportNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidReportType):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
