package availability

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability", h.GetSlots)
	rg.GET("/availability/first", h.GetFirstAvailable)
}

// GetSlots handles GET /availability?barber_id=&service_id=&date=
func (h *Handler) GetSlots(c *gin.Context) {
	barberID := c.Query("barber_id")
	serviceID := c.Query("service_id")
	date := c.Query("date")
	if barberID == "" || serviceID == "" || date == "" {
		response.Error(c, http.StatusBadRequest, "validation_error", "barber_id, service_id and date are required")
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD")
		return
	}

	slots, err := h.service.Slots(c.Request.Context(), barberID, serviceID, date)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Format(time.RFC3339))
	}
	response.Success(c, http.StatusOK, SlotsResponse{
		BarberID:  barberID,
		ServiceID: serviceID,
		Date:      date,
		Slots:     out,
	})
}

// GetFirstAvailable handles GET /availability/first?service_id=&date=
func (h *Handler) GetFirstAvailable(c *gin.Context) {
	serviceID := c.Query("service_id")
	date := c.Query("date")
	if serviceID == "" || date == "" {
		response.Error(c, http.StatusBadRequest, "validation_error", "service_id and date are required")
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD")
		return
	}

	entries, err := h.service.FirstAvailable(c.Request.Context(), serviceID, date)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]FirstAvailableEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, FirstAvailableEntry{
			BarberID:   e.Barber.ID,
			BarberName: e.Barber.FullName(),
			PhotoURL:   e.Barber.PhotoURL,
			Rating:     e.Barber.Rating,
			Start:      e.Start.Format(time.RFC3339),
		})
	}
	response.Success(c, http.StatusOK, gin.H{"barbers": out, "date": date})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrServiceNotFound):
		response.Error(c, http.StatusNotFound, "service_not_found", "Service not found")
	case errors.Is(err, ErrBarberNotFound):
		response.Error(c, http.StatusNotFound, "not_found", "Barber not found")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid availability query")
	default:
		response.Error(c, http.StatusInternalServerError, "internal_error", "Something went wrong")
	}
}
