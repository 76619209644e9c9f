package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"barbershop/internal/domain"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

type Service struct {
	appointments AppointmentRepository
	locations    LocationRepository
	settings     SettingsRepository
	sender       Sender
	log          *zap.Logger
}

func NewService(
	appointments AppointmentRepository,
	locations LocationRepository,
	settings SettingsRepository,
	sender Sender,
	log *zap.Logger,
) *Service {
	return &Service{
		appointments: appointments,
		locations:    locations,
		settings:     settings,
		sender:       sender,
		log:          log,
	}
}

// Dispatch renders and delivers the event to every enabled channel,
// writing a notification log row per attempt. Log writes are best
// effort. A missing location or missing settings means the salon never
// configured notifications, which is a silent skip, not an error.
func (s *Service) Dispatch(ctx context.Context, appointmentID, event string) error {
	appt, err := s.appointments.GetDetailed(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}
	if appt.LocationID == "" {
		return nil
	}

	location, err := s.locations.GetByID(ctx, appt.LocationID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	settings, err := s.settings.GetSettings(ctx, appt.LocationID)
	if err != nil {
		return err
	}
	if settings == nil {
		return nil
	}

	barberChatID := ""
	barberTelegram := false
	if appt.Barber != nil {
		barberChatID = appt.Barber.TelegramChatID
		barberTelegram = appt.Barber.TelegramEnabled && barberChatID != ""
	}
	locationTelegram := settings.TelegramEnabled && settings.TelegramChatID != ""
	sms := settings.SMSEnabled && settings.SMSSender != ""

	if !locationTelegram && !barberTelegram && !sms {
		return nil
	}

	tplCtx := s.templateContext(appt, location, event)

	telegramTemplate := settings.TelegramTemplate
	if telegramTemplate == "" {
		telegramTemplate = defaultTelegramTemplate
	}
	telegramMessage := renderTemplate(telegramTemplate, tplCtx)

	smsTemplate := settings.SMSTemplate
	if smsTemplate == "" {
		smsTemplate = defaultSMSTemplate
	}
	smsMessage := sanitizeSMS(renderTemplate(smsTemplate, tplCtx))

	var errs []error

	if locationTelegram {
		err := s.sender.SendTelegram(ctx, settings.TelegramChatID, telegramMessage)
		s.writeLog(ctx, appt, "telegram_admin", settings.TelegramChatID, telegramMessage, err, "")
		if err != nil {
			errs = append(errs, fmt.Errorf("telegram_admin: %w", err))
		}
	}

	if barberTelegram {
		if locationTelegram && barberChatID == settings.TelegramChatID {
			// тот же чат, второй раз не шлём
			s.writeLog(ctx, appt, "telegram_barber", barberChatID, telegramMessage, nil, "duplicate_chat_id")
		} else {
			err := s.sender.SendTelegram(ctx, barberChatID, telegramMessage)
			s.writeLog(ctx, appt, "telegram_barber", barberChatID, telegramMessage, err, "")
			if err != nil {
				errs = append(errs, fmt.Errorf("telegram_barber: %w", err))
			}
		}
	}

	if sms {
		clientPhone := ""
		if appt.Client != nil {
			clientPhone = appt.Client.Phone
		}
		destination := normalizePhone(clientPhone)
		if destination == "" {
			s.writeLog(ctx, appt, "sms", clientPhone, smsMessage, nil, "missing_phone")
		} else {
			err := s.sender.SendSMS(ctx, settings.SMSSender, destination, smsMessage)
			s.writeLog(ctx, appt, "sms", destination, smsMessage, err, "")
			if err != nil {
				errs = append(errs, fmt.Errorf("sms: %w", err))
			}
		}
	}

	return errors.Join(errs...)
}

func (s *Service) Settings(ctx context.Context, locationID string) (*domain.NotificationSettings, error) {
	return s.settings.GetSettings(ctx, locationID)
}

func (s *Service) SaveSettings(ctx context.Context, settings *domain.NotificationSettings) error {
	return s.settings.UpsertSettings(ctx, settings)
}

func (s *Service) Logs(ctx context.Context, locationID string, limit int) ([]domain.NotificationLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.settings.ListLogs(ctx, locationID, limit)
}

func (s *Service) templateContext(appt *domain.Appointment, location *domain.Location, event string) map[string]string {
	tz := "Europe/Moscow"
	locName, locAddress, locPhone := "", "", ""
	if location != nil {
		if location.Timezone != "" {
			tz = location.Timezone
		}
		locName = location.Name
		locAddress = location.Address
		locPhone = location.Phone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	startAt := appt.StartAt.In(loc)

	serviceName := "Услуга"
	if appt.Service != nil {
		serviceName = appt.Service.Name
	}
	barberName := "Мастер"
	if appt.Barber != nil {
		if name := appt.Barber.FullName(); name != "" {
			barberName = name
		}
	}
	clientName, clientPhone := "Клиент", ""
	if appt.Client != nil {
		if appt.Client.FullName != "" {
			clientName = appt.Client.FullName
		}
		clientPhone = appt.Client.Phone
	}

	return map[string]string{
		"event":          eventLabel(event),
		"date":           startAt.Format("02.01.2006"),
		"time":           startAt.Format("15:04"),
		"datetime":       startAt.Format("02.01.2006, 15:04"),
		"service":        serviceName,
		"barber":         barberName,
		"client":         clientName,
		"client_phone":   clientPhone,
		"location":       locName,
		"address":        locAddress,
		"location_phone": locPhone,
		"status":         string(appt.Status),
	}
}

func (s *Service) writeLog(ctx context.Context, appt *domain.Appointment, channel, recipient, message string, sendErr error, skipDetail string) {
	entry := &domain.NotificationLog{
		LocationID:    appt.LocationID,
		AppointmentID: appt.ID,
		BarberID:      appt.BarberID,
		Channel:       channel,
		Recipient:     recipient,
		Status:        domain.NotificationSent,
		Message:       message,
	}
	switch {
	case sendErr != nil:
		entry.Status = domain.NotificationError
		entry.Detail = sendErr.Error()
	case skipDetail != "":
		entry.Status = domain.NotificationSkipped
		entry.Detail = skipDetail
	}
	if err := s.settings.CreateLog(ctx, entry); err != nil && s.log != nil {
		s.log.Warn("notification log write failed",
			zap.String("appointment_id", appt.ID),
			zap.String("channel", channel),
			zap.Error(err))
	}
}

// LogSender is the default delivery backend: it records what would have
// been sent. Real gateways implement Sender and replace it at startup.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendTelegram(ctx context.Context, chatID, text string) error {
	s.log.Info("telegram message",
		zap.String("chat_id", chatID),
		zap.String("text", text))
	return nil
}

func (s *LogSender) SendSMS(ctx context.Context, sender, destination, text string) error {
	s.log.Info("sms message",
		zap.String("sender", sender),
		zap.String("destination", destination),
		zap.String("text", text))
	return nil
}
