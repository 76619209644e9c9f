package booking

import (
	"context"
	"time"

	"barbershop/internal/domain"
	"barbershop/internal/pkg/interval"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	HasOverlap(ctx context.Context, barberID string, start, end time.Time, excludeID string) (bool, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Appointment, error)
	ListForBarberRange(ctx context.Context, barberID string, from, to time.Time) ([]domain.Appointment, error)
	UpdateInterval(ctx context.Context, id string, start, end time.Time, status domain.AppointmentStatus) error
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
}

type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Service, error)
}

type BarberRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Barber, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Barber, error)
}

type ScheduleResolver interface {
	OpenIntervals(ctx context.Context, barberID, dateStr string) ([]interval.Interval, error)
	LocalDate(ctx context.Context, barberID string, at time.Time) (string, error)
}

// Notifier fans an appointment lifecycle event out to the configured
// channels. Dispatch failures never affect the booking result.
type Notifier interface {
	Dispatch(ctx context.Context, appointmentID, event string) error
}

// Broadcaster pushes appointment changes to live calendar subscribers.
type Broadcaster interface {
	AppointmentChanged(appointmentID, barberID, event string)
}
