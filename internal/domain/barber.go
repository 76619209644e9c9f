package domain

import "time"

type Barber struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	UserID          string    `json:"user_id"`
	LocationID      string    `json:"location_id"`
	Bio             string    `json:"bio,omitempty"`
	Rating          float64   `json:"rating"`
	PhotoURL        string    `json:"photo_url,omitempty"`
	IsActive        bool      `json:"is_active"`
	TelegramChatID  string    `json:"-"`
	TelegramEnabled bool      `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// FullName resolves the display name through the linked user record.
func (b *Barber) FullName() string {
	if b.User != nil {
		return b.User.FullName
	}
	return ""
}

// BarberService links a barber to a service they offer.
type BarberService struct {
	BarberID  string `json:"barber_id" gorm:"primaryKey"`
	ServiceID string `json:"service_id" gorm:"primaryKey"`
}
