package domain

import "time"

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentNoShow    AppointmentStatus = "no_show"
)

// Appointment is the canonical booked-time record. Two non-cancelled
// appointments for the same barber must never have overlapping
// [StartAt, EndAt) intervals.
type Appointment struct {
	ID         string            `json:"id" gorm:"primaryKey"`
	ClientID   *string           `json:"client_id,omitempty"` // nil for guest/walk-in
	BarberID   string            `json:"barber_id"`
	ServiceID  string            `json:"service_id"`
	LocationID string            `json:"location_id"`
	StartAt    time.Time         `json:"start_at"`
	EndAt      time.Time         `json:"end_at"`
	Status     AppointmentStatus `json:"status"`
	Note       string            `json:"note,omitempty" gorm:"type:text"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	Client  *User    `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Barber  *Barber  `json:"barber,omitempty" gorm:"foreignKey:BarberID"`
	Service *Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCancelled,
		AppointmentCompleted, AppointmentNoShow:
		return true
	}
	return false
}

// Busy reports whether the appointment blocks its time interval.
func (a *Appointment) Busy() bool {
	return a.Status != AppointmentCancelled
}
