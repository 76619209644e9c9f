package catalog

import (
	"errors"
	"net/http"

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
	rg.GET("/services", h.GetServices)
	rg.GET("/barbers", h.GetBarbers)
	rg.GET("/locations", h.GetLocations)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/services", h.GetAllServices)
	rg.POST("/services", h.CreateService)
	rg.PUT("/services/:id", h.UpdateService)
	rg.POST("/barbers", h.CreateBarber)
	rg.PUT("/barbers/:id", h.UpdateBarber)
	rg.POST("/locations", h.CreateLocation)
	rg.PUT("/locations/:id", h.UpdateLocation)
}

func (h *Handler) GetServices(c *gin.Context) {
	services, err := h.service.ActiveServices(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": services})
}

// GetBarbers handles GET /barbers?service_id= for the booking form.
func (h *Handler) GetBarbers(c *gin.Context) {
	barbers, err := h.service.ActiveBarbers(c.Request.Context(), c.Query("service_id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]BarberResponse, 0, len(barbers))
	for i := range barbers {
		out = append(out, BarberResponse{
			ID:       barbers[i].ID,
			Name:     barbers[i].FullName(),
			Bio:      barbers[i].Bio,
			Rating:   barbers[i].Rating,
			PhotoURL: barbers[i].PhotoURL,
		})
	}
	response.Success(c, http.StatusOK, gin.H{"barbers": out})
}

func (h *Handler) GetLocations(c *gin.Context) {
	locations, err := h.service.Locations(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"locations": locations})
}

func (h *Handler) GetAllServices(c *gin.Context) {
	services, err := h.service.AllServices(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": services})
}

func (h *Handler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}
	svc, err := h.service.CreateService(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"service": svc})
}

func (h *Handler) UpdateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}
	svc, err := h.service.UpdateService(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service": svc})
}

func (h *Handler) CreateBarber(c *gin.Context) {
	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}
	b, err := h.service.CreateBarber(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"barber": b})
}

func (h *Handler) UpdateBarber(c *gin.Context) {
	var req BarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}
	b, err := h.service.UpdateBarber(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"barber": b})
}

func (h *Handler) CreateLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}
	l, err := h.service.CreateLocation(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"location": l})
}

func (h *Handler) UpdateLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}
	l, err := h.service.UpdateLocation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"location": l})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid catalog data")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "not_found", "Resource not found")
	default:
		response.Error(c, http.StatusInternalServerError, "internal_error", "Something went wrong")
	}
}
