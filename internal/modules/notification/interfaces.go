package notification

import (
	"context"

	"barbershop/internal/domain"
)

type AppointmentRepository interface {
	GetDetailed(ctx context.Context, id string) (*domain.Appointment, error)
}

type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Location, error)
}

type SettingsRepository interface {
	GetSettings(ctx context.Context, locationID string) (*domain.NotificationSettings, error)
	UpsertSettings(ctx context.Context, s *domain.NotificationSettings) error
	CreateLog(ctx context.Context, l *domain.NotificationLog) error
	ListLogs(ctx context.Context, locationID string, limit int) ([]domain.NotificationLog, error)
}

// Sender performs the actual delivery. The default implementation only
// logs: wiring real Telegram and SMS gateways is deployment-specific
// and swapped in at startup.
type Sender interface {
	SendTelegram(ctx context.Context, chatID, text string) error
	SendSMS(ctx context.Context, sender, destination, text string) error
}
