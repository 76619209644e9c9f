package schedule

import (
	"context"
	"time"

	"barbershop/internal/domain"
)

// WorkingHoursRepository supplies weekly rules for locations and barbers.
type WorkingHoursRepository interface {
	GetLocationRule(ctx context.Context, locationID string, weekday int) (*domain.LocationWorkingHours, error)
	GetBarberRule(ctx context.Context, barberID string, weekday int) (*domain.BarberWorkingHours, error)
	ListLocationRules(ctx context.Context, locationID string) ([]domain.LocationWorkingHours, error)
	ListBarberRules(ctx context.Context, barberID string) ([]domain.BarberWorkingHours, error)
	ReplaceBarberRules(ctx context.Context, barberID string, rules []domain.BarberWorkingHours) error
	ClearBarberRules(ctx context.Context, barberID string) error
	ReplaceLocationRules(ctx context.Context, locationID string, rules []domain.LocationWorkingHours) error
}

type TimeOffRepository interface {
	Create(ctx context.Context, t *domain.TimeOff) error
	Delete(ctx context.Context, id string) error
	ListForBarberRange(ctx context.Context, barberID string, from, to time.Time) ([]domain.TimeOff, error)
	ListForBarber(ctx context.Context, barberID string) ([]domain.TimeOff, error)
}

type BarberRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Barber, error)
}

type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Location, error)
}
