package calendar

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"barbershop/internal/modules/booking"
	"barbershop/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Staff calendar is same-origin behind auth; origin checks happen
	// at the reverse proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	service *Service
	hub     *Hub
	log     *zap.Logger
}

func NewHandler(service *Service, hub *Hub, log *zap.Logger) *Handler {
	return &Handler{service: service, hub: hub, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/calendar", h.GetDay)
	rg.POST("/calendar/appointments/:id/move", h.Move)
	rg.GET("/calendar/feed", h.Feed)
}

// GetDay handles GET /calendar?from=&to= across all barbers.
func (h *Handler) GetDay(c *gin.Context) {
	from, err1 := time.Parse(time.RFC3339, c.Query("from"))
	to, err2 := time.Parse(time.RFC3339, c.Query("to"))
	if err1 != nil || err2 != nil || !to.After(from) {
		response.Error(c, http.StatusBadRequest, "validation_error", "from and to must be RFC3339 instants")
		return
	}

	appts, err := h.service.appointments.ListRange(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "internal_error", "Something went wrong")
		return
	}

	out := make([]DayAppointment, 0, len(appts))
	for _, a := range appts {
		entry := DayAppointment{
			ID:       a.ID,
			BarberID: a.BarberID,
			StartAt:  a.StartAt.Format(time.RFC3339),
			EndAt:    a.EndAt.Format(time.RFC3339),
			Status:   string(a.Status),
		}
		if a.Barber != nil {
			entry.BarberName = a.Barber.FullName()
		}
		if a.Service != nil {
			entry.Service = a.Service.Name
		}
		if a.Client != nil {
			entry.Client = a.Client.FullName
		}
		out = append(out, entry)
	}
	response.Success(c, http.StatusOK, gin.H{"appointments": out})
}

func (h *Handler) Move(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD")
		return
	}

	actor := booking.Actor{UserID: c.GetString("user_id"), Role: c.GetString("user_role")}
	res, err := h.service.Move(c.Request.Context(), actor, c.Param("id"), req.Date, req.RawStartMin)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Feed upgrades to a websocket and streams appointment change events
// until the client goes away.
func (h *Handler) Feed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("calendar feed upgrade failed", zap.Error(err))
		return
	}

	h.hub.Register(conn)
	defer h.hub.Unregister(conn)

	// Reads are discarded; the read loop only notices the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrAppointmentNotFound):
		response.Error(c, http.StatusNotFound, "appointment_not_found", "Appointment not found")
	case errors.Is(err, booking.ErrForbidden):
		response.Error(c, http.StatusForbidden, "forbidden", "You cannot modify this appointment")
	case errors.Is(err, booking.ErrSlotTaken):
		response.Error(c, http.StatusConflict, "slot_taken", "Requested time is already booked")
	case errors.Is(err, booking.ErrOutsideWorkingHours):
		response.Error(c, http.StatusConflict, "outside_working_hours", "Requested time is outside working hours")
	case errors.Is(err, booking.ErrBarberUnavailable):
		response.Error(c, http.StatusConflict, "barber_unavailable", "Barber is not taking appointments")
	case errors.Is(err, booking.ErrValidation):
		response.Error(c, http.StatusBadRequest, "validation_error", "Invalid move request")
	default:
		response.Error(c, http.StatusInternalServerError, "internal_error", "Something went wrong")
	}
}
