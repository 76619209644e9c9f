package domain

import "time"

// Service is a bookable offering; DurationMin drives slot length.
type Service struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" validate:"required"`
	DurationMin int       `json:"duration_min" validate:"required,gt=0"`
	Price       float64   `json:"price" validate:"gte=0"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
