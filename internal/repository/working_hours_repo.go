package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"barbershop/internal/domain"
)

type WorkingHoursRepository struct {
	db *gorm.DB
}

func NewWorkingHoursRepository(db *gorm.DB) *WorkingHoursRepository {
	return &WorkingHoursRepository{db: db}
}

// GetLocationRule returns the location default for the weekday, or nil
// when the location has no rule for that day.
func (r *WorkingHoursRepository) GetLocationRule(ctx context.Context, locationID string, weekday int) (*domain.LocationWorkingHours, error) {
	var rule domain.LocationWorkingHours
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND weekday = ?", locationID, weekday).
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

// GetBarberRule returns the barber override for the weekday, or nil when
// the barber has none. An override fully replaces the location default.
func (r *WorkingHoursRepository) GetBarberRule(ctx context.Context, barberID string, weekday int) (*domain.BarberWorkingHours, error) {
	var rule domain.BarberWorkingHours
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *WorkingHoursRepository) ListLocationRules(ctx context.Context, locationID string) ([]domain.LocationWorkingHours, error) {
	var rules []domain.LocationWorkingHours
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("weekday").
		Find(&rules).Error
	return rules, err
}

func (r *WorkingHoursRepository) ListBarberRules(ctx context.Context, barberID string) ([]domain.BarberWorkingHours, error) {
	var rules []domain.BarberWorkingHours
	err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("weekday").
		Find(&rules).Error
	return rules, err
}

// ReplaceBarberRules swaps the barber's whole weekly override in one
// transaction, the way the admin schedule form saves it.
func (r *WorkingHoursRepository) ReplaceBarberRules(ctx context.Context, barberID string, rules []domain.BarberWorkingHours) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).Delete(&domain.BarberWorkingHours{}).Error; err != nil {
			return err
		}
		for i := range rules {
			rules[i].BarberID = barberID
			if rules[i].ID == "" {
				rules[i].ID = uuid.NewString()
			}
		}
		if len(rules) == 0 {
			return nil
		}
		return tx.Create(&rules).Error
	})
}

func (r *WorkingHoursRepository) ClearBarberRules(ctx context.Context, barberID string) error {
	return r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Delete(&domain.BarberWorkingHours{}).Error
}

func (r *WorkingHoursRepository) ReplaceLocationRules(ctx context.Context, locationID string, rules []domain.LocationWorkingHours) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("location_id = ?", locationID).Delete(&domain.LocationWorkingHours{}).Error; err != nil {
			return err
		}
		for i := range rules {
			rules[i].LocationID = locationID
			if rules[i].ID == "" {
				rules[i].ID = uuid.NewString()
			}
		}
		if len(rules) == 0 {
			return nil
		}
		return tx.Create(&rules).Error
	})
}
