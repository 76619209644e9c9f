package calendar

import (
	"context"
	"time"

	"barbershop/internal/domain"
	"barbershop/internal/modules/booking"
	"barbershop/internal/pkg/interval"
)

type Booker interface {
	Get(ctx context.Context, actor booking.Actor, id string) (*domain.Appointment, error)
	Reschedule(ctx context.Context, actor booking.Actor, id, startAt string) (*domain.Appointment, error)
}

type ScheduleResolver interface {
	OpenIntervals(ctx context.Context, barberID, dateStr string) ([]interval.Interval, error)
}

type AppointmentRepository interface {
	ListForBarberRange(ctx context.Context, barberID string, from, to time.Time) ([]domain.Appointment, error)
	ListRange(ctx context.Context, from, to time.Time) ([]domain.Appointment, error)
}
