package schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"barbershop/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/barbers/:id/working-hours", h.GetBarberHours)
	rg.GET("/barbers/:id/open-intervals", h.GetOpenIntervals)
}

func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.PUT("/barbers/:id/working-hours", h.SaveBarberHours)
	rg.DELETE("/barbers/:id/working-hours", h.ClearBarberHours)
	rg.GET("/locations/:id/working-hours", h.GetLocationHours)
	rg.PUT("/locations/:id/working-hours", h.SaveLocationHours)
	rg.POST("/time-off", h.CreateTimeOff)
	rg.GET("/barbers/:id/time-off", h.ListTimeOff)
	rg.DELETE("/time-off/:id", h.DeleteTimeOff)
}

func (h *Handler) GetBarberHours(c *gin.Context) {
	rules, err := h.service.ListBarberRules(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rules": rules})
}

// GetOpenIntervals returns the resolved bookable windows for ?date=YYYY-MM-DD.
func (h *Handler) GetOpenIntervals(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, http.StatusBadRequest, "validation_error", "date query parameter is required")
		return
	}

	open, err := h.service.OpenIntervals(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]OpenIntervalResponse, 0, len(open))
	for _, iv := range open {
		out = append(out, OpenIntervalResponse{
			Start: iv.Start.Format(time.RFC3339),
			End:   iv.End.Format(time.RFC3339),
		})
	}
	response.Success(c, http.StatusOK, gin.H{"intervals": out})
}

func (h *Handler) SaveBarberHours(c *gin.Context) {
	var req SaveRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}
	if err := h.service.SaveBarberRules(c.Request.Context(), c.Param("id"), req.Rules); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) ClearBarberHours(c *gin.Context) {
	if err := h.service.ClearBarberRules(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cleared": true})
}

func (h *Handler) GetLocationHours(c *gin.Context) {
	rules, err := h.service.ListLocationRules(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rules": rules})
}

func (h *Handler) SaveLocationHours(c *gin.Context) {
	var req SaveRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}
	if err := h.service.SaveLocationRules(c.Request.Context(), c.Param("id"), req.Rules); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) CreateTimeOff(c *gin.Context) {
	var req TimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}
	t, err := h.service.CreateTimeOff(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"time_off": t})
}

func (h *Handler) ListTimeOff(c *gin.Context) {
	items, err := h.service.ListTimeOff(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"time_off": items})
}

func (h *Handler) DeleteTimeOff(c *gin.Context) {
	if err := h.service.DeleteTimeOff(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid schedule data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "not_found", "Resource not found")
	default:
		response.Error(c, http.StatusInternalServerError, "internal_error", "Something went wrong")
	}
}
