package handlers

import (
	"net/http"
	"time"

	"petstore_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService   services.ReportService
	reminderService services.ReminderService
}

func NewReportHandler(reportService services.ReportService, reminderService services.ReminderService) *ReportHandler {
	return &ReportHandler{reportService: reportService, reminderService: reminderService}
}

func (h *ReportHandler) Sales(c *gin.Context) {
	end := time.Now()
	start := end.AddDate(0, -1, 0)
	if parsed, err := time.Parse("2006-01-02", c.Query("start_date")); err == nil {
		start = parsed
	}
	if parsed, err := time.Parse("2006-01-02", c.Query("end_date")); err == nil {
		end = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}

	summary, err := h.reportService.GetSalesSummary(start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ReportHandler) OrderStatus(c *gin.Context) {
	counts, err := h.reportService.GetOrderStatusBreakdown()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *ReportHandler) Attendance(c *gin.Context) {
	startDate := c.DefaultQuery("start_date", time.Now().AddDate(0, -1, 0).Format("2006-01-02"))
	endDate := c.DefaultQuery("end_date", time.Now().Format("2006-01-02"))

	counts, err := h.reportService.GetAttendanceSummary(startDate, endDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// RunReminders triggers the due-payment sweep on demand.
func (h *ReportHandler) RunReminders(c *gin.Context) {
	sent, err := h.reminderService.ProcessDuePayments(time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders_sent": sent})
}
