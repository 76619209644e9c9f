package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"barbershop/internal/domain"
)

type BarberRepository struct {
	db *gorm.DB
}

func NewBarberRepository(db *gorm.DB) *BarberRepository {
	return &BarberRepository{db: db}
}

func (r *BarberRepository) Create(ctx context.Context, b *domain.Barber) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BarberRepository) Update(ctx context.Context, b *domain.Barber) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BarberRepository) GetByID(ctx context.Context, id string) (*domain.Barber, error) {
	var b domain.Barber
	tx := r.db.WithContext(ctx).Preload("User").First(&b, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &b, nil
}

func (r *BarberRepository) GetByUserID(ctx context.Context, userID string) (*domain.Barber, error) {
	var b domain.Barber
	tx := r.db.WithContext(ctx).Preload("User").First(&b, "user_id = ?", userID)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &b, nil
}

// ListActive returns active barbers in insertion order. That order is the
// tie-break for first-available slot searches.
func (r *BarberRepository) ListActive(ctx context.Context) ([]domain.Barber, error) {
	var out []domain.Barber
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("is_active = ?", true).
		Order("created_at").
		Find(&out).Error
	return out, err
}

// ListActiveOffering returns active barbers linked to the service.
func (r *BarberRepository) ListActiveOffering(ctx context.Context, serviceID string) ([]domain.Barber, error) {
	var out []domain.Barber
	err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN barber_services bs ON bs.barber_id = barbers.id AND bs.service_id = ?", serviceID).
		Where("barbers.is_active = ?", true).
		Order("barbers.created_at").
		Find(&out).Error
	return out, err
}

func (r *BarberRepository) SetServices(ctx context.Context, barberID string, serviceIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).Delete(&domain.BarberService{}).Error; err != nil {
			return err
		}
		if len(serviceIDs) == 0 {
			return nil
		}
		links := make([]domain.BarberService, 0, len(serviceIDs))
		for _, sid := range serviceIDs {
			links = append(links, domain.BarberService{BarberID: barberID, ServiceID: sid})
		}
		return tx.Create(&links).Error
	})
}
