package handlers

import (
	"net/http"

	"ecohaven_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the back-office dashboard.
type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// GetDashboardSummary provides a summary of key metrics for the dashboard.
func (h *ReportHandler) GetDashboardSummary(c *gin.Context) {
	summary, err := h.reportService.GetDashboardSummary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetDashboardSummary: Error from reportService.GetDashboardSummary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
