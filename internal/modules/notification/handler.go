package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"barbershop/internal/domain"
	"barbershop/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/locations/:id/notification-settings", h.GetSettings)
	rg.PUT("/locations/:id/notification-settings", h.SaveSettings)
	rg.GET("/locations/:id/notification-logs", h.GetLogs)
}

func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.service.Settings(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "internal_error", "Something went wrong")
		return
	}
	if settings == nil {
		settings = &domain.NotificationSettings{LocationID: c.Param("id")}
	}
	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}

func (h *Handler) SaveSettings(c *gin.Context) {
	var settings domain.NotificationSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}
	settings.LocationID = c.Param("id")
	if err := h.service.SaveSettings(c.Request.Context(), &settings); err != nil {
		response.Error(c, http.StatusInternalServerError, "internal_error", "Failed to save settings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}

func (h *Handler) GetLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	logs, err := h.service.Logs(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "internal_error", "Something went wrong")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"logs": logs})
}
