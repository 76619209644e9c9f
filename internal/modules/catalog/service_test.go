package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"barbershop/internal/domain"
)

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockServiceRepository) ListActive(ctx context.Context) ([]domain.Service, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *MockServiceRepository) List(ctx context.Context) ([]domain.Service, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Service), args.Error(1)
}

type MockBarberRepository struct {
	mock.Mock
}

func (m *MockBarberRepository) Create(ctx context.Context, b *domain.Barber) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBarberRepository) Update(ctx context.Context, b *domain.Barber) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBarberRepository) GetByID(ctx context.Context, id string) (*domain.Barber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Barber), args.Error(1)
}

func (m *MockBarberRepository) ListActive(ctx context.Context) ([]domain.Barber, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Barber), args.Error(1)
}

func (m *MockBarberRepository) ListActiveOffering(ctx context.Context, serviceID string) ([]domain.Barber, error) {
	args := m.Called(ctx, serviceID)
	return args.Get(0).([]domain.Barber), args.Error(1)
}

func (m *MockBarberRepository) SetServices(ctx context.Context, barberID string, serviceIDs []string) error {
	args := m.Called(ctx, barberID, serviceIDs)
	return args.Error(0)
}

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) Create(ctx context.Context, l *domain.Location) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLocationRepository) Update(ctx context.Context, l *domain.Location) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockLocationRepository) List(ctx context.Context) ([]domain.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Location), args.Error(1)
}

func TestCreateService_RejectsOddDuration(t *testing.T) {
	service := NewService(new(MockServiceRepository), new(MockBarberRepository), new(MockLocationRepository))

	_, err := service.CreateService(context.Background(), ServiceRequest{Name: "Стрижка", DurationMin: 47})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.CreateService(context.Background(), ServiceRequest{Name: "Стрижка", DurationMin: 0})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateService_DefaultsActive(t *testing.T) {
	svcs := new(MockServiceRepository)
	svcs.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Service) bool {
		return s.IsActive && s.DurationMin == 60
	})).Return(nil)

	service := NewService(svcs, new(MockBarberRepository), new(MockLocationRepository))

	created, err := service.CreateService(context.Background(), ServiceRequest{Name: "Мужская стрижка", DurationMin: 60, Price: 900})

	assert.NoError(t, err)
	assert.True(t, created.IsActive)
	svcs.AssertExpectations(t)
}

func TestActiveBarbers_FiltersByService(t *testing.T) {
	barbers := new(MockBarberRepository)
	barbers.On("ListActiveOffering", mock.Anything, "svc1").Return([]domain.Barber{{ID: "b1"}}, nil)

	service := NewService(new(MockServiceRepository), barbers, new(MockLocationRepository))

	out, err := service.ActiveBarbers(context.Background(), "svc1")

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	barbers.AssertNotCalled(t, "ListActive", mock.Anything)
}

func TestCreateLocation_RejectsBadTimezone(t *testing.T) {
	service := NewService(new(MockServiceRepository), new(MockBarberRepository), new(MockLocationRepository))

	_, err := service.CreateLocation(context.Background(), LocationRequest{Name: "Istanbul", Timezone: "Mars/Olympus"})
	assert.ErrorIs(t, err, ErrValidation)
}
