package booking

import (
	"errors"
	"net/http"
	"time"

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/appointments", h.Create)
	rg.GET("/appointments", h.ListMine)
	rg.GET("/appointments/:id", h.Get)
	rg.PATCH("/appointments/:id/reschedule", h.Reschedule)
	rg.POST("/appointments/:id/cancel", h.Cancel)
	rg.POST("/appointments/:id/confirm", h.Confirm)
	rg.PATCH("/appointments/:id/status", h.UpdateStatus)
	rg.GET("/barbers/:id/appointments", h.ListForBarber)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}

	appt, err := h.service.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"appointment": toResponse(appt)})
}

func (h *Handler) Reschedule(c *gin.Context) {
	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}

	appt, err := h.service.Reschedule(c.Request.Context(), actorFrom(c), c.Param("id"), req.StartAt)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"appointment": toResponse(appt)})
}

func (h *Handler) Cancel(c *gin.Context) {
	if err := h.service.Cancel(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) Confirm(c *gin.Context) {
	appt, err := h.service.Confirm(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"appointment": toResponse(appt)})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}

	appt, err := h.service.UpdateStatus(c.Request.Context(), actorFrom(c), c.Param("id"), domain.AppointmentStatus(req.Status))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"appointment": toResponse(appt)})
}

func (h *Handler) Get(c *gin.Context) {
	appt, err := h.service.Get(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"appointment": toResponse(appt)})
}

func (h *Handler) ListMine(c *gin.Context) {
	appts, err := h.service.ListMine(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]AppointmentResponse, 0, len(appts))
	for i := range appts {
		out = append(out, toResponse(&appts[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"appointments": out})
}

// ListForBarber handles GET /barbers/:id/appointments?from=&to= for the
// staff calendar.
func (h *Handler) ListForBarber(c *gin.Context) {
	from, err1 := time.Parse(time.RFC3339, c.Query("from"))
	to, err2 := time.Parse(time.RFC3339, c.Query("to"))
	if err1 != nil || err2 != nil || !to.After(from) {
		response.Error(c, http.StatusBadRequest, "validation_error", "from and to must be RFC3339 instants")
		return
	}

	appts, err := h.service.ListForBarber(c.Request.Context(), actorFrom(c), c.Param("id"), from, to)
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]AppointmentResponse, 0, len(appts))
	for i := range appts {
		out = append(out, toResponse(&appts[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"appointments": out})
}

func toResponse(a *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:        a.ID,
		BarberID:  a.BarberID,
		ServiceID: a.ServiceID,
		StartAt:   a.StartAt,
		EndAt:     a.EndAt,
		Status:    string(a.Status),
		Note:      a.Note,
	}
}

func actorFrom(c *gin.Context) Actor {
	return Actor{
		UserID: c.GetString("user_id"),
		Role:   c.GetString("user_role"),
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid appointment data")
	case errors.Is(err, ErrServiceNotFound):
		response.Error(c, http.StatusNotFound, "service_not_found", "Service not found or not offered")
	case errors.Is(err, ErrAppointmentNotFound):
		response.Error(c, http.StatusNotFound, "appointment_not_found", "Appointment not found")
	case errors.Is(err, ErrBarberUnavailable):
		response.Error(c, http.StatusConflict, "barber_unavailable", "Barber is not taking appointments")
	case errors.Is(err, ErrOutsideWorkingHours):
		response.Error(c, http.StatusConflict, "outside_working_hours", "Requested time is outside working hours")
	case errors.Is(err, ErrSlotTaken):
		response.Error(c, http.StatusConflict, "slot_taken", "Requested time is already booked")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "forbidden", "You cannot modify this appointment")
	default:
		response.Error(c, http.StatusInternalServerError, "internal_error", "Something went wrong")
	}
}
