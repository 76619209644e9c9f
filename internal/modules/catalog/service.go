package catalog

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"barbershop/internal/domain"
)

type Service struct {
	services  ServiceRepository
	barbers   BarberRepository
	locations LocationRepository
}

func NewService(services ServiceRepository, barbers BarberRepository, locations LocationRepository) *Service {
	return &Service{
		services:  services,
		barbers:   barbers,
		locations: locations,
	}
}

/* ---------- public catalog ---------- */

func (s *Service) ActiveServices(ctx context.Context) ([]domain.Service, error) {
	return s.services.ListActive(ctx)
}

// ActiveBarbers lists bookable barbers, optionally narrowed to those
// offering a service.
func (s *Service) ActiveBarbers(ctx context.Context, serviceID string) ([]domain.Barber, error) {
	if serviceID != "" {
		return s.barbers.ListActiveOffering(ctx, serviceID)
	}
	return s.barbers.ListActive(ctx)
}

func (s *Service) Locations(ctx context.Context) ([]domain.Location, error) {
	return s.locations.List(ctx)
}

/* ---------- admin ---------- */

func (s *Service) AllServices(ctx context.Context) ([]domain.Service, error) {
	return s.services.List(ctx)
}

func (s *Service) CreateService(ctx context.Context, req ServiceRequest) (*domain.Service, error) {
	if req.DurationMin <= 0 || req.DurationMin%5 != 0 {
		return nil, ErrValidation
	}
	svc := &domain.Service{
		Name:        req.Name,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		IsActive:    true,
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) UpdateService(ctx context.Context, id string, req ServiceRequest) (*domain.Service, error) {
	if req.DurationMin <= 0 || req.DurationMin%5 != 0 {
		return nil, ErrValidation
	}
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	svc.Name = req.Name
	svc.DurationMin = req.DurationMin
	svc.Price = req.Price
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) CreateBarber(ctx context.Context, req BarberRequest) (*domain.Barber, error) {
	if _, err := s.locations.GetByID(ctx, req.LocationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}
	b := &domain.Barber{
		UserID:          req.UserID,
		LocationID:      req.LocationID,
		Bio:             req.Bio,
		PhotoURL:        req.PhotoURL,
		IsActive:        true,
		TelegramChatID:  req.TelegramChatID,
		TelegramEnabled: req.TelegramEnabled,
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if err := s.barbers.Create(ctx, b); err != nil {
		return nil, err
	}
	if len(req.ServiceIDs) > 0 {
		if err := s.barbers.SetServices(ctx, b.ID, req.ServiceIDs); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (s *Service) UpdateBarber(ctx context.Context, id string, req BarberRequest) (*domain.Barber, error) {
	b, err := s.barbers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	b.LocationID = req.LocationID
	b.Bio = req.Bio
	b.PhotoURL = req.PhotoURL
	b.TelegramChatID = req.TelegramChatID
	b.TelegramEnabled = req.TelegramEnabled
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if err := s.barbers.Update(ctx, b); err != nil {
		return nil, err
	}
	if req.ServiceIDs != nil {
		if err := s.barbers.SetServices(ctx, b.ID, req.ServiceIDs); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (s *Service) CreateLocation(ctx context.Context, req LocationRequest) (*domain.Location, error) {
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return nil, ErrValidation
	}
	l := &domain.Location{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Timezone: req.Timezone,
	}
	if err := s.locations.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) UpdateLocation(ctx context.Context, id string, req LocationRequest) (*domain.Location, error) {
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return nil, ErrValidation
	}
	l, err := s.locations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	l.Name = req.Name
	l.Address = req.Address
	l.Phone = req.Phone
	l.Timezone = req.Timezone
	if err := s.locations.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}
