package domain

import "time"

// NotificationSettings configures per-location delivery channels and
// message templates for the notification dispatcher.
type NotificationSettings struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	LocationID       string    `json:"location_id" gorm:"uniqueIndex"`
	TelegramEnabled  bool      `json:"telegram_enabled"`
	TelegramChatID   string    `json:"telegram_chat_id,omitempty"`
	TelegramTemplate string    `json:"telegram_template,omitempty" gorm:"type:text"`
	SMSEnabled       bool      `json:"sms_enabled"`
	SMSSender        string    `json:"sms_sender,omitempty"`
	SMSTemplate      string    `json:"sms_template,omitempty" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type NotificationLogStatus string

const (
	NotificationSent    NotificationLogStatus = "sent"
	NotificationError   NotificationLogStatus = "error"
	NotificationSkipped NotificationLogStatus = "skipped"
)

// NotificationLog records one delivery attempt per channel. Writes are
// best-effort and must never fail a booking operation.
type NotificationLog struct {
	ID            string                `json:"id" gorm:"primaryKey"`
	LocationID    string                `json:"location_id"`
	AppointmentID string                `json:"appointment_id"`
	BarberID      string                `json:"barber_id,omitempty"`
	Channel       string                `json:"channel"` // telegram_admin, telegram_barber, sms
	Recipient     string                `json:"recipient,omitempty"`
	Status        NotificationLogStatus `json:"status"`
	Detail        string                `json:"detail,omitempty"`
	Message       string                `json:"message,omitempty" gorm:"type:text"`
	CreatedAt     time.Time             `json:"created_at"`
}
