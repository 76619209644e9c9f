package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"barbershop/internal/domain"
)

type TimeOffRepository struct {
	db *gorm.DB
}

func NewTimeOffRepository(db *gorm.DB) *TimeOffRepository {
	return &TimeOffRepository{db: db}
}

func (r *TimeOffRepository) Create(ctx context.Context, t *domain.TimeOff) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TimeOffRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.TimeOff{}, "id = ?", id).Error
}

// ListForBarberRange returns time-off windows intersecting [from, to).
func (r *TimeOffRepository) ListForBarberRange(ctx context.Context, barberID string, from, to time.Time) ([]domain.TimeOff, error) {
	var out []domain.TimeOff
	err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Where("start_at < ? AND end_at > ?", to, from).
		Order("start_at").
		Find(&out).Error
	return out, err
}

func (r *TimeOffRepository) ListForBarber(ctx context.Context, barberID string) ([]domain.TimeOff, error) {
	var out []domain.TimeOff
	err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("start_at").
		Find(&out).Error
	return out, err
}
