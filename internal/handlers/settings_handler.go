package handlers

import (
	"net/http"

	"petstore_manager/internal/middleware"
	"petstore_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService services.SettingsService
}

func NewSettingsHandler(settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) GetBusinessHours(c *gin.Context) {
	hours, err := h.settingsService.GetBusinessHours()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hours)
}

func (h *SettingsHandler) UpdateBusinessHours(c *gin.Context) {
	var input services.BusinessHoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	hours, err := h.settingsService.UpdateBusinessHours(middleware.ActorFrom(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hours)
}
