package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"barbershop/internal/domain"
	"barbershop/internal/pkg/cache"
	"barbershop/internal/pkg/interval"
)

const (
	RoleClient = "client"
	RoleBarber = "barber"
	RoleAdmin  = "admin"
)

type Service struct {
	appointments AppointmentRepository
	services     ServiceRepository
	barbers      BarberRepository
	schedule     ScheduleResolver
	notifs       Notifier
	feed         Broadcaster
	slots        *cache.SlotCache
	log          *zap.Logger

	locks barberLocks
	// notifyWG отслеживает фоновые отправки уведомлений; в тестах на него
	// можно дождаться.
	notifyWG sync.WaitGroup
}

func NewService(
	appointments AppointmentRepository,
	services ServiceRepository,
	barbers BarberRepository,
	schedule ScheduleResolver,
	notifs Notifier,
	feed Broadcaster,
	slots *cache.SlotCache,
	log *zap.Logger,
) *Service {
	return &Service{
		appointments: appointments,
		services:     services,
		barbers:      barbers,
		schedule:     schedule,
		notifs:       notifs,
		feed:         feed,
		slots:        slots,
		log:          log,
	}
}

// Create books an appointment. Checks run in a fixed order so the
// client always sees the most specific failure: unknown or inactive
// service, unavailable barber, outside working hours, then the overlap
// check against existing appointments. The check and the insert are
// serialized per barber; the partial exclusion constraint in Postgres
// catches whatever a concurrent writer on another instance slips past.
func (s *Service) Create(ctx context.Context, actor Actor, req CreateAppointmentRequest) (*domain.Appointment, error) {
	start, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return nil, ErrValidation
	}

	svc, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if !svc.IsActive {
		return nil, ErrServiceNotFound
	}

	barber, err := s.barbers.GetByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBarberUnavailable
		}
		return nil, err
	}
	if !barber.IsActive {
		return nil, ErrBarberUnavailable
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	clientID := actor.UserID
	if actor.Role != RoleClient && req.ClientID != "" {
		clientID = req.ClientID
	}

	mu := s.locks.lock(req.BarberID)
	defer mu.Unlock()

	if err := s.checkSlot(ctx, req.BarberID, start, end, ""); err != nil {
		return nil, err
	}

	appt := &domain.Appointment{
		ClientID:   &clientID,
		BarberID:   req.BarberID,
		ServiceID:  req.ServiceID,
		LocationID: barber.LocationID,
		StartAt:    start,
		EndAt:      end,
		Status:     domain.AppointmentPending,
		Note:       req.Note,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, s.mapWriteError(err)
	}

	s.afterWrite(ctx, appt, "created")
	return appt, nil
}

// Reschedule moves an appointment to a new start, keeping its service
// duration. The move re-runs every booking check minus the appointment
// itself, and resets the status to pending for the barber to re-confirm.
func (s *Service) Reschedule(ctx context.Context, actor Actor, id, startAt string) (*domain.Appointment, error) {
	appt, err := s.getAuthorized(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	start, err := time.Parse(time.RFC3339, startAt)
	if err != nil {
		return nil, ErrValidation
	}

	svc, err := s.services.GetByID(ctx, appt.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	barber, err := s.barbers.GetByID(ctx, appt.BarberID)
	if err != nil || !barber.IsActive {
		return nil, ErrBarberUnavailable
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)
	oldStart := appt.StartAt

	mu := s.locks.lock(appt.BarberID)
	defer mu.Unlock()

	if err := s.checkSlot(ctx, appt.BarberID, start, end, appt.ID); err != nil {
		return nil, err
	}

	if err := s.appointments.UpdateInterval(ctx, appt.ID, start, end, domain.AppointmentPending); err != nil {
		return nil, s.mapWriteError(err)
	}

	appt.StartAt = start
	appt.EndAt = end
	appt.Status = domain.AppointmentPending

	s.afterWrite(ctx, appt, "rescheduled")
	s.invalidateDay(ctx, appt.BarberID, oldStart)
	return appt, nil
}

// Cancel is idempotent: cancelling a cancelled appointment succeeds
// silently and sends nothing.
func (s *Service) Cancel(ctx context.Context, actor Actor, id string) error {
	appt, err := s.getAuthorized(ctx, actor, id)
	if err != nil {
		return err
	}
	if appt.Status == domain.AppointmentCancelled {
		return nil
	}
	if err := s.appointments.UpdateStatus(ctx, appt.ID, domain.AppointmentCancelled); err != nil {
		return err
	}
	appt.Status = domain.AppointmentCancelled
	s.afterWrite(ctx, appt, "cancelled")
	return nil
}

// Confirm moves a pending appointment to confirmed. Staff only.
func (s *Service) Confirm(ctx context.Context, actor Actor, id string) (*domain.Appointment, error) {
	if actor.Role == RoleClient {
		return nil, ErrForbidden
	}
	appt, err := s.getAuthorized(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if appt.Status != domain.AppointmentPending {
		return nil, ErrValidation
	}
	if err := s.appointments.UpdateStatus(ctx, appt.ID, domain.AppointmentConfirmed); err != nil {
		return nil, err
	}
	appt.Status = domain.AppointmentConfirmed
	s.afterWrite(ctx, appt, "confirmed")
	return appt, nil
}

// UpdateStatus records the visit outcome, completed or no_show. Staff only.
func (s *Service) UpdateStatus(ctx context.Context, actor Actor, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	if actor.Role == RoleClient {
		return nil, ErrForbidden
	}
	if status != domain.AppointmentCompleted && status != domain.AppointmentNoShow {
		return nil, ErrValidation
	}
	appt, err := s.getAuthorized(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.appointments.UpdateStatus(ctx, appt.ID, status); err != nil {
		return nil, err
	}
	appt.Status = status
	s.afterWrite(ctx, appt, "status")
	return appt, nil
}

func (s *Service) Get(ctx context.Context, actor Actor, id string) (*domain.Appointment, error) {
	return s.getAuthorized(ctx, actor, id)
}

func (s *Service) ListMine(ctx context.Context, actor Actor) ([]domain.Appointment, error) {
	return s.appointments.ListByClient(ctx, actor.UserID)
}

func (s *Service) ListForBarber(ctx context.Context, actor Actor, barberID string, from, to time.Time) ([]domain.Appointment, error) {
	if actor.Role == RoleClient {
		return nil, ErrForbidden
	}
	if actor.Role == RoleBarber {
		own, err := s.barbers.GetByUserID(ctx, actor.UserID)
		if err != nil || own.ID != barberID {
			return nil, ErrForbidden
		}
	}
	return s.appointments.ListForBarberRange(ctx, barberID, from, to)
}

/* ---------- internals ---------- */

// checkSlot runs under the barber lock.
func (s *Service) checkSlot(ctx context.Context, barberID string, start, end time.Time, excludeID string) error {
	date, err := s.schedule.LocalDate(ctx, barberID, start)
	if err != nil {
		return err
	}
	open, err := s.schedule.OpenIntervals(ctx, barberID, date)
	if err != nil {
		return err
	}

	requested := interval.Interval{Start: start, End: end}
	inside := false
	for _, window := range open {
		if interval.Contains(window, requested) {
			inside = true
			break
		}
	}
	if !inside {
		return ErrOutsideWorkingHours
	}

	taken, err := s.appointments.HasOverlap(ctx, barberID, start, end, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotTaken
	}
	return nil
}

func (s *Service) getAuthorized(ctx context.Context, actor Actor, id string) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	switch actor.Role {
	case RoleAdmin:
		return appt, nil
	case RoleClient:
		if appt.ClientID != nil && *appt.ClientID == actor.UserID {
			return appt, nil
		}
	case RoleBarber:
		own, err := s.barbers.GetByUserID(ctx, actor.UserID)
		if err == nil && own.ID == appt.BarberID {
			return appt, nil
		}
	}
	return nil, ErrForbidden
}

// mapWriteError translates the exclusion constraint firing into the same
// conflict the pre-check reports. 23P01 is exclusion_violation; 23505
// covers older unique-index schemas.
func (s *Service) mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23P01" || pgErr.Code == "23505" {
			return ErrSlotTaken
		}
	}
	return err
}

// afterWrite handles the side effects of a committed change. None of
// them may fail or delay the operation, so dispatch runs in its own
// goroutine on a context detached from the request's cancellation.
func (s *Service) afterWrite(ctx context.Context, appt *domain.Appointment, event string) {
	if s.notifs != nil {
		dispatchCtx := context.WithoutCancel(ctx)
		s.notifyWG.Add(1)
		go func() {
			defer s.notifyWG.Done()
			if err := s.notifs.Dispatch(dispatchCtx, appt.ID, event); err != nil && s.log != nil {
				s.log.Warn("notification dispatch failed",
					zap.String("appointment_id", appt.ID),
					zap.String("event", event),
					zap.Error(err))
			}
		}()
	}
	if s.feed != nil {
		s.feed.AppointmentChanged(appt.ID, appt.BarberID, event)
	}
	s.invalidateDay(ctx, appt.BarberID, appt.StartAt)
}

func (s *Service) invalidateDay(ctx context.Context, barberID string, at time.Time) {
	if s.slots == nil {
		return
	}
	date, err := s.schedule.LocalDate(ctx, barberID, at)
	if err != nil {
		return
	}
	s.slots.InvalidateBarberDay(ctx, barberID, date)
}
