package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"barbershop/internal/domain"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

type appointmentModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	ClientID   *string   `gorm:"column:client_id"`
	BarberID   string    `gorm:"column:barber_id;index"`
	ServiceID  string    `gorm:"column:service_id"`
	LocationID string    `gorm:"column:location_id"`
	StartAt    time.Time `gorm:"column:start_at"`
	EndAt      time.Time `gorm:"column:end_at"`
	Status     string    `gorm:"column:status"`
	Note       string    `gorm:"column:note"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (appointmentModel) TableName() string { return "appointments" }

func toDomainAppointment(m appointmentModel) *domain.Appointment {
	return &domain.Appointment{
		ID:         m.ID,
		ClientID:   m.ClientID,
		BarberID:   m.BarberID,
		ServiceID:  m.ServiceID,
		LocationID: m.LocationID,
		StartAt:    m.StartAt,
		EndAt:      m.EndAt,
		Status:     domain.AppointmentStatus(m.Status),
		Note:       m.Note,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toAppointmentModel(a *domain.Appointment) appointmentModel {
	return appointmentModel{
		ID:         a.ID,
		ClientID:   a.ClientID,
		BarberID:   a.BarberID,
		ServiceID:  a.ServiceID,
		LocationID: a.LocationID,
		StartAt:    a.StartAt,
		EndAt:      a.EndAt,
		Status:     string(a.Status),
		Note:       a.Note,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	m := toAppointmentModel(a)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAppointment(m)
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	var m appointmentModel
	tx := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAppointment(m), nil
}

// GetDetailed loads the appointment with its client, barber (+user) and
// service relations; used by the notification dispatcher.
func (r *AppointmentRepository) GetDetailed(ctx context.Context, id string) (*domain.Appointment, error) {
	var a domain.Appointment
	tx := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Barber").
		Preload("Barber.User").
		First(&a, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &a, nil
}

// HasOverlap reports whether any non-cancelled appointment for the barber
// intersects [start, end). excludeID skips the appointment being moved.
func (r *AppointmentRepository) HasOverlap(ctx context.Context, barberID string, start, end time.Time, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&appointmentModel{}).
		Where("barber_id = ?", barberID).
		Where("status <> ?", string(domain.AppointmentCancelled)).
		Where("start_at < ? AND end_at > ?", end, start)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// ListForBarberRange returns the barber's non-cancelled appointments
// intersecting [from, to), ordered chronologically. Intersection, not
// containment: an appointment that starts before the window but runs
// into it still occupies the barber.
func (r *AppointmentRepository) ListForBarberRange(ctx context.Context, barberID string, from, to time.Time) ([]domain.Appointment, error) {
	var models []appointmentModel
	tx := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Where("status <> ?", string(domain.AppointmentCancelled)).
		Where("start_at < ? AND end_at > ?", to, from).
		Order("start_at").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Appointment, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainAppointment(m))
	}
	return out, nil
}

// ListRange returns all non-cancelled appointments intersecting the
// window, across barbers, with names preloaded for the calendar views.
func (r *AppointmentRepository) ListRange(ctx context.Context, from, to time.Time) ([]domain.Appointment, error) {
	var out []domain.Appointment
	tx := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber").
		Preload("Barber.User").
		Where("status <> ?", string(domain.AppointmentCancelled)).
		Where("start_at < ? AND end_at > ?", to, from).
		Order("start_at").
		Find(&out)
	return out, tx.Error
}

func (r *AppointmentRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Appointment, error) {
	var out []domain.Appointment
	tx := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber").
		Preload("Barber.User").
		Where("client_id = ?", clientID).
		Order("start_at").
		Find(&out)
	return out, tx.Error
}

// UpdateInterval replaces the appointment's time range and status in one
// statement; used by reschedule.
func (r *AppointmentRepository) UpdateInterval(ctx context.Context, id string, start, end time.Time, status domain.AppointmentStatus) error {
	return r.db.WithContext(ctx).Model(&appointmentModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"start_at": start,
			"end_at":   end,
			"status":   string(status),
		}).Error
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	return r.db.WithContext(ctx).Model(&appointmentModel{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}
