package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"barbershop/internal/database"
	"barbershop/internal/domain"
)

func testDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := database.Connect("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func mkAppt(t *testing.T, repo *AppointmentRepository, barberID string, start, end time.Time, status domain.AppointmentStatus) *domain.Appointment {
	t.Helper()
	a := &domain.Appointment{
		BarberID:   barberID,
		ServiceID:  "svc1",
		LocationID: "l1",
		StartAt:    start,
		EndAt:      end,
		Status:     status,
	}
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

func TestListForBarberRange_IncludesStraddlingAppointments(t *testing.T) {
	repo := NewAppointmentRepository(testDB(t, "appt_range_test"))

	day := func(h, m int) time.Time {
		return time.Date(2026, 9, 2, h, m, 0, 0, time.UTC)
	}

	// Начинается до окна, но залезает в него.
	straddling := mkAppt(t, repo, "b1", day(9, 30), day(10, 30), domain.AppointmentPending)
	inside := mkAppt(t, repo, "b1", day(12, 0), day(13, 0), domain.AppointmentConfirmed)
	mkAppt(t, repo, "b1", day(8, 0), day(9, 0), domain.AppointmentPending)                // целиком до окна
	mkAppt(t, repo, "b1", day(22, 0), day(23, 0), domain.AppointmentPending)              // целиком после
	mkAppt(t, repo, "b1", day(11, 0), day(11, 30), domain.AppointmentCancelled)           // отменена
	mkAppt(t, repo, "b2", day(12, 0), day(13, 0), domain.AppointmentPending)              // чужой барбер

	got, err := repo.ListForBarberRange(context.Background(), "b1", day(10, 0), day(22, 0))
	require.NoError(t, err)

	require.Len(t, got, 2)
	require.Equal(t, straddling.ID, got[0].ID)
	require.Equal(t, inside.ID, got[1].ID)
}

func TestListRange_IncludesStraddlingAppointments(t *testing.T) {
	repo := NewAppointmentRepository(testDB(t, "appt_listrange_test"))

	day := func(h, m int) time.Time {
		return time.Date(2026, 9, 2, h, m, 0, 0, time.UTC)
	}

	straddling := mkAppt(t, repo, "b1", day(9, 0), day(10, 15), domain.AppointmentPending)
	mkAppt(t, repo, "b1", day(8, 0), day(9, 0), domain.AppointmentPending)

	got, err := repo.ListRange(context.Background(), day(10, 0), day(22, 0))
	require.NoError(t, err)

	require.Len(t, got, 1)
	require.Equal(t, straddling.ID, got[0].ID)
}
