package handlers

import (
	"net/http"
	"time"

	"petstore_manager/internal/middleware"
	"petstore_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct {
	attendanceService services.AttendanceService
}

func NewAttendanceHandler(attendanceService services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req struct {
		Notes string `json:"notes"`
	}
	c.ShouldBindJSON(&req)

	record, err := h.attendanceService.CheckIn(middleware.ActorFrom(c).UserID, time.Now(), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	record, err := h.attendanceService.CheckOut(middleware.ActorFrom(c).UserID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Cutoffs tells the dashboard whether checking in or out right now would count
// as late or as an early leave.
func (h *AttendanceHandler) Cutoffs(c *gin.Context) {
	isLate, isEarlyLeave, err := h.attendanceService.CurrentCutoffs(time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"is_late":        isLate,
		"is_early_leave": isEarlyLeave,
	})
}

func (h *AttendanceHandler) List(c *gin.Context) {
	startDate := c.DefaultQuery("start_date", time.Now().AddDate(0, -1, 0).Format("2006-01-02"))
	endDate := c.DefaultQuery("end_date", time.Now().Format("2006-01-02"))

	actor := middleware.ActorFrom(c)
	if actor.IsAdmin() && c.Query("all") == "true" {
		records, err := h.attendanceService.GetByDateRange(startDate, endDate)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, records)
		return
	}

	records, err := h.attendanceService.GetByUser(actor.UserID, startDate, endDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Override lets an admin correct a derived status by hand.
func (h *AttendanceHandler) Override(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	record, err := h.attendanceService.OverrideStatus(middleware.ActorFrom(c), id, req.Status, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}
