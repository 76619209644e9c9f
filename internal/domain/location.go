package domain

import "time"

type Location struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" validate:"required"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Timezone  string    `json:"timezone"` // IANA name, e.g. Europe/Moscow
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
