package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"barbershop/internal/domain"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(ctx context.Context, l *domain.Location) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LocationRepository) Update(ctx context.Context, l *domain.Location) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LocationRepository) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	var l domain.Location
	tx := r.db.WithContext(ctx).First(&l, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &l, nil
}

func (r *LocationRepository) List(ctx context.Context) ([]domain.Location, error) {
	var out []domain.Location
	err := r.db.WithContext(ctx).Order("created_at").Find(&out).Error
	return out, err
}
