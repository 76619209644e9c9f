package availability

import (
	"context"
	"time"

	"barbershop/internal/domain"
	"barbershop/internal/pkg/interval"
)

type ScheduleResolver interface {
	OpenIntervals(ctx context.Context, barberID, dateStr string) ([]interval.Interval, error)
}

type AppointmentRepository interface {
	ListForBarberRange(ctx context.Context, barberID string, from, to time.Time) ([]domain.Appointment, error)
}

type BarberRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Barber, error)
	ListActiveOffering(ctx context.Context, serviceID string) ([]domain.Barber, error)
}

type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Service, error)
}
