package booking

import "time"

// Actor identifies who is performing the operation; the role decides
// which appointments they may touch.
type Actor struct {
	UserID string
	Role   string
}

type CreateAppointmentRequest struct {
	BarberID  string `json:"barber_id" binding:"required"`
	ServiceID string `json:"service_id" binding:"required"`
	StartAt   string `json:"start_at" binding:"required"`
	Note      string `json:"note"`
	// ClientID is honored for staff callers only; clients always book
	// for themselves.
	ClientID string `json:"client_id"`
}

type RescheduleRequest struct {
	StartAt string `json:"start_at" binding:"required"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AppointmentResponse struct {
	ID        string    `json:"id"`
	BarberID  string    `json:"barber_id"`
	ServiceID string    `json:"service_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
}
