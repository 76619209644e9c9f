package catalog

import (
	"context"

	"barbershop/internal/domain"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) error
	Update(ctx context.Context, s *domain.Service) error
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	ListActive(ctx context.Context) ([]domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
}

type BarberRepository interface {
	Create(ctx context.Context, b *domain.Barber) error
	Update(ctx context.Context, b *domain.Barber) error
	GetByID(ctx context.Context, id string) (*domain.Barber, error)
	ListActive(ctx context.Context) ([]domain.Barber, error)
	ListActiveOffering(ctx context.Context, serviceID string) ([]domain.Barber, error)
	SetServices(ctx context.Context, barberID string, serviceIDs []string) error
}

type LocationRepository interface {
	Create(ctx context.Context, l *domain.Location) error
	Update(ctx context.Context, l *domain.Location) error
	GetByID(ctx context.Context, id string) (*domain.Location, error)
	List(ctx context.Context) ([]domain.Location, error)
}
