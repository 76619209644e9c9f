package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"barbershop/internal/domain"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// GetSettings returns the location's notification settings, or nil when
// none are configured (all channels off).
func (r *NotificationRepository) GetSettings(ctx context.Context, locationID string) (*domain.NotificationSettings, error) {
	var s domain.NotificationSettings
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *NotificationRepository) UpsertSettings(ctx context.Context, s *domain.NotificationSettings) error {
	existing, err := r.GetSettings(ctx, s.LocationID)
	if err != nil {
		return err
	}
	if existing != nil {
		s.ID = existing.ID
		return r.db.WithContext(ctx).Save(s).Error
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *NotificationRepository) CreateLog(ctx context.Context, l *domain.NotificationLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *NotificationRepository) ListLogs(ctx context.Context, locationID string, limit int) ([]domain.NotificationLog, error) {
	var out []domain.NotificationLog
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
