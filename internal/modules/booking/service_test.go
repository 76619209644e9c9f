package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"barbershop/internal/domain"
	"barbershop/internal/pkg/interval"
)

// Mock repositories
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	if a != nil && a.ID == "" {
		a.ID = "appt-1"
	}
	return args.Error(0)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) HasOverlap(ctx context.Context, barberID string, start, end time.Time, excludeID string) (bool, error) {
	args := m.Called(ctx, barberID, start, end, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Appointment, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListForBarberRange(ctx context.Context, barberID string, from, to time.Time) ([]domain.Appointment, error) {
	args := m.Called(ctx, barberID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateInterval(ctx context.Context, id string, start, end time.Time, status domain.AppointmentStatus) error {
	args := m.Called(ctx, id, start, end, status)
	return args.Error(0)
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

type MockBarberRepository struct {
	mock.Mock
}

func (m *MockBarberRepository) GetByID(ctx context.Context, id string) (*domain.Barber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Barber), args.Error(1)
}

func (m *MockBarberRepository) GetByUserID(ctx context.Context, userID string) (*domain.Barber, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Barber), args.Error(1)
}

type MockScheduleResolver struct {
	mock.Mock
}

func (m *MockScheduleResolver) OpenIntervals(ctx context.Context, barberID, dateStr string) ([]interval.Interval, error) {
	args := m.Called(ctx, barberID, dateStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interval.Interval), args.Error(1)
}

func (m *MockScheduleResolver) LocalDate(ctx context.Context, barberID string, at time.Time) (string, error) {
	args := m.Called(ctx, barberID, at)
	return args.String(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Dispatch(ctx context.Context, appointmentID, event string) error {
	args := m.Called(ctx, appointmentID, event)
	return args.Error(0)
}

func at(h, m int) time.Time {
	return time.Date(2026, 9, 2, h, m, 0, 0, time.UTC)
}

func workingDay() []interval.Interval {
	return []interval.Interval{{Start: at(10, 0), End: at(22, 0)}}
}

type fixture struct {
	appts   *MockAppointmentRepository
	svcs    *MockServiceRepository
	barbers *MockBarberRepository
	sched   *MockScheduleResolver
	notifs  *MockNotifier
	service *Service
}

func newFixture() *fixture {
	f := &fixture{
		appts:   new(MockAppointmentRepository),
		svcs:    new(MockServiceRepository),
		barbers: new(MockBarberRepository),
		sched:   new(MockScheduleResolver),
		notifs:  new(MockNotifier),
	}
	f.service = NewService(f.appts, f.svcs, f.barbers, f.sched, f.notifs, nil, nil, nil)
	return f
}

func (f *fixture) activeCatalog() {
	f.svcs.On("GetByID", mock.Anything, "svc1").Return(&domain.Service{ID: "svc1", DurationMin: 60, IsActive: true}, nil)
	f.barbers.On("GetByID", mock.Anything, "b1").Return(&domain.Barber{ID: "b1", LocationID: "l1", IsActive: true}, nil)
	f.sched.On("LocalDate", mock.Anything, "b1", mock.Anything).Return("2026-09-02", nil)
	f.sched.On("OpenIntervals", mock.Anything, "b1", "2026-09-02").Return(workingDay(), nil)
}

func TestCreate_Success(t *testing.T) {
	f := newFixture()
	f.activeCatalog()
	f.appts.On("HasOverlap", mock.Anything, "b1", at(12, 0), at(13, 0), "").Return(false, nil)
	f.appts.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.notifs.On("Dispatch", mock.Anything, "appt-1", "created").Return(nil)

	appt, err := f.service.Create(context.Background(), Actor{UserID: "u1", Role: RoleClient}, CreateAppointmentRequest{
		BarberID:  "b1",
		ServiceID: "svc1",
		StartAt:   "2026-09-02T12:00:00Z",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.AppointmentPending, appt.Status)
	assert.Equal(t, at(13, 0), appt.EndAt)
	assert.Equal(t, "u1", *appt.ClientID)
	f.service.notifyWG.Wait()
	f.notifs.AssertExpectations(t)
}

func TestCreate_UnknownService(t *testing.T) {
	f := newFixture()
	f.svcs.On("GetByID", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	_, err := f.service.Create(context.Background(), Actor{UserID: "u1", Role: RoleClient}, CreateAppointmentRequest{
		BarberID:  "b1",
		ServiceID: "nope",
		StartAt:   "2026-09-02T12:00:00Z",
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreate_InactiveServiceMapsToNotFound(t *testing.T) {
	f := newFixture()
	f.svcs.On("GetByID", mock.Anything, "svc1").Return(&domain.Service{ID: "svc1", DurationMin: 60, IsActive: false}, nil)

	_, err := f.service.Create(context.Background(), Actor{UserID: "u1", Role: RoleClient}, CreateAppointmentRequest{
		BarberID:  "b1",
		ServiceID: "svc1",
		StartAt:   "2026-09-02T12:00:00Z",
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreate_InactiveBarber(t *testing.T) {
	f := newFixture()
	f.svcs.On("GetByID", mock.Anything, "svc1").Return(&domain.Service{ID: "svc1", DurationMin: 60, IsActive: true}, nil)
	f.barbers.On("GetByID", mock.Anything, "b1").Return(&domain.Barber{ID: "b1", IsActive: false}, nil)

	_, err := f.service.Create(context.Background(), Actor{UserID: "u1", Role: RoleClient}, CreateAppointmentRequest{
		BarberID:  "b1",
		ServiceID: "svc1",
		StartAt:   "2026-09-02T12:00:00Z",
	})

	assert.ErrorIs(t, err, ErrBarberUnavailable)
}

func TestCreate_OutsideWorkingHours(t *testing.T) {
	f := newFixture()
	f.activeCatalog()

	// 21:30 + 60 минут вылезает за 22:00
	_, err := f.service.Create(context.Background(), Actor{UserID: "u1", Role: RoleClient}, CreateAppointmentRequest{
		BarberID:  "b1",
		ServiceID: "svc1",
		StartAt:   "2026-09-02T21:30:00Z",
	})

	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	f.appts.AssertNotCalled(t, "HasOverlap", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_SlotTaken(t *testing.T) {
	f := newFixture()
	f.activeCatalog()
	f.appts.On("HasOverlap", mock.Anything, "b1", at(12, 0), at(13, 0), "").Return(true, nil)

	_, err := f.service.Create(context.Background(), Actor{UserID: "u1", Role: RoleClient}, CreateAppointmentRequest{
		BarberID:  "b1",
		ServiceID: "svc1",
		StartAt:   "2026-09-02T12:00:00Z",
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
	f.appts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_NotificationFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture()
	f.activeCatalog()
	f.appts.On("HasOverlap", mock.Anything, "b1", mock.Anything, mock.Anything, "").Return(false, nil)
	f.appts.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.notifs.On("Dispatch", mock.Anything, mock.Anything, "created").Return(assert.AnError)

	appt, err := f.service.Create(context.Background(), Actor{UserID: "u1", Role: RoleClient}, CreateAppointmentRequest{
		BarberID:  "b1",
		ServiceID: "svc1",
		StartAt:   "2026-09-02T12:00:00Z",
	})

	assert.NoError(t, err)
	assert.NotNil(t, appt)
	f.service.notifyWG.Wait()
	f.notifs.AssertExpectations(t)
}

// Запись должна вернуться клиенту сразу, даже если отправка уведомления
// висит на медленном шлюзе.
func TestCreate_ReturnsBeforeNotificationCompletes(t *testing.T) {
	f := newFixture()
	f.activeCatalog()
	f.appts.On("HasOverlap", mock.Anything, "b1", mock.Anything, mock.Anything, "").Return(false, nil)
	f.appts.On("Create", mock.Anything, mock.Anything).Return(nil)

	release := make(chan struct{})
	f.notifs.On("Dispatch", mock.Anything, "appt-1", "created").
		Run(func(mock.Arguments) { <-release }).
		Return(nil)

	appt, err := f.service.Create(context.Background(), Actor{UserID: "u1", Role: RoleClient}, CreateAppointmentRequest{
		BarberID:  "b1",
		ServiceID: "svc1",
		StartAt:   "2026-09-02T12:00:00Z",
	})

	assert.NoError(t, err)
	assert.NotNil(t, appt)

	close(release)
	f.service.notifyWG.Wait()
	f.notifs.AssertExpectations(t)
}

func TestReschedule_ResetsStatusAndExcludesSelf(t *testing.T) {
	f := newFixture()
	clientID := "u1"
	f.appts.On("GetByID", mock.Anything, "a1").Return(&domain.Appointment{
		ID: "a1", ClientID: &clientID, BarberID: "b1", ServiceID: "svc1",
		StartAt: at(12, 0), EndAt: at(13, 0), Status: domain.AppointmentConfirmed,
	}, nil)
	f.activeCatalog()
	f.appts.On("HasOverlap", mock.Anything, "b1", at(15, 0), at(16, 0), "a1").Return(false, nil)
	f.appts.On("UpdateInterval", mock.Anything, "a1", at(15, 0), at(16, 0), domain.AppointmentPending).Return(nil)
	f.notifs.On("Dispatch", mock.Anything, "a1", "rescheduled").Return(nil)

	appt, err := f.service.Reschedule(context.Background(), Actor{UserID: "u1", Role: RoleClient}, "a1", "2026-09-02T15:00:00Z")

	assert.NoError(t, err)
	assert.Equal(t, domain.AppointmentPending, appt.Status)
	assert.Equal(t, at(15, 0), appt.StartAt)
	f.service.notifyWG.Wait()
	f.appts.AssertExpectations(t)
	f.notifs.AssertExpectations(t)
}

func TestReschedule_ForeignAppointmentForbidden(t *testing.T) {
	f := newFixture()
	otherClient := "u2"
	f.appts.On("GetByID", mock.Anything, "a1").Return(&domain.Appointment{
		ID: "a1", ClientID: &otherClient, BarberID: "b1", ServiceID: "svc1",
	}, nil)

	_, err := f.service.Reschedule(context.Background(), Actor{UserID: "u1", Role: RoleClient}, "a1", "2026-09-02T15:00:00Z")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancel_Idempotent(t *testing.T) {
	f := newFixture()
	clientID := "u1"
	f.appts.On("GetByID", mock.Anything, "a1").Return(&domain.Appointment{
		ID: "a1", ClientID: &clientID, BarberID: "b1", Status: domain.AppointmentCancelled,
	}, nil)

	err := f.service.Cancel(context.Background(), Actor{UserID: "u1", Role: RoleClient}, "a1")

	assert.NoError(t, err)
	f.appts.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	f.notifs.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirm_BarberOwnOnly(t *testing.T) {
	f := newFixture()
	clientID := "u9"
	f.appts.On("GetByID", mock.Anything, "a1").Return(&domain.Appointment{
		ID: "a1", ClientID: &clientID, BarberID: "b1", Status: domain.AppointmentPending,
	}, nil)
	f.barbers.On("GetByUserID", mock.Anything, "staff1").Return(&domain.Barber{ID: "b2"}, nil)

	_, err := f.service.Confirm(context.Background(), Actor{UserID: "staff1", Role: RoleBarber}, "a1")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestConfirm_ClientForbidden(t *testing.T) {
	f := newFixture()

	_, err := f.service.Confirm(context.Background(), Actor{UserID: "u1", Role: RoleClient}, "a1")
	assert.ErrorIs(t, err, ErrForbidden)
	f.appts.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdateStatus_RejectsArbitraryStatus(t *testing.T) {
	f := newFixture()

	_, err := f.service.UpdateStatus(context.Background(), Actor{UserID: "adm", Role: RoleAdmin}, "a1", domain.AppointmentPending)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGet_UnknownAppointment(t *testing.T) {
	f := newFixture()
	f.appts.On("GetByID", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	_, err := f.service.Get(context.Background(), Actor{UserID: "adm", Role: RoleAdmin}, "nope")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

/* ---------- concurrency ---------- */

// raceAppointmentRepo is a minimal in-memory store: the overlap check
// and the insert are distinct calls, so only the service's per-barber
// lock keeps them atomic.
type raceAppointmentRepo struct {
	mu    sync.Mutex
	appts []domain.Appointment
}

func (r *raceAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = "race"
	r.appts = append(r.appts, *a)
	return nil
}

func (r *raceAppointmentRepo) HasOverlap(ctx context.Context, barberID string, start, end time.Time, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.appts {
		if a.BarberID == barberID && a.ID != excludeID && a.Busy() &&
			a.StartAt.Before(end) && start.Before(a.EndAt) {
			return true, nil
		}
	}
	return false, nil
}

func (r *raceAppointmentRepo) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *raceAppointmentRepo) ListByClient(ctx context.Context, clientID string) ([]domain.Appointment, error) {
	return nil, nil
}

func (r *raceAppointmentRepo) ListForBarberRange(ctx context.Context, barberID string, from, to time.Time) ([]domain.Appointment, error) {
	return nil, nil
}

func (r *raceAppointmentRepo) UpdateInterval(ctx context.Context, id string, start, end time.Time, status domain.AppointmentStatus) error {
	return nil
}

func (r *raceAppointmentRepo) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	return nil
}

func TestCreate_ConcurrentSameSlot_OneWins(t *testing.T) {
	repo := &raceAppointmentRepo{}
	svcs := new(MockServiceRepository)
	barbers := new(MockBarberRepository)
	sched := new(MockScheduleResolver)

	svcs.On("GetByID", mock.Anything, "svc1").Return(&domain.Service{ID: "svc1", DurationMin: 60, IsActive: true}, nil)
	barbers.On("GetByID", mock.Anything, "b1").Return(&domain.Barber{ID: "b1", IsActive: true}, nil)
	sched.On("LocalDate", mock.Anything, "b1", mock.Anything).Return("2026-09-02", nil)
	sched.On("OpenIntervals", mock.Anything, "b1", "2026-09-02").Return(workingDay(), nil)

	service := NewService(repo, svcs, barbers, sched, nil, nil, nil, nil)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.Create(context.Background(), Actor{UserID: "u1", Role: RoleClient}, CreateAppointmentRequest{
				BarberID:  "b1",
				ServiceID: "svc1",
				StartAt:   "2026-09-02T12:00:00Z",
			})
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, ErrSlotTaken)
		}
	}
	assert.Equal(t, 1, won)
	assert.Len(t, repo.appts, 1)
}
