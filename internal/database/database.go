package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // регистрирует драйвер "sqlite" без cgo

	"barbershop/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates the schema plus the partial unique index that backstops
// the no-double-booking invariant at the storage layer. Postgres only for
// the exclusion index; sqlite (local dev) relies on the per-barber lock.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Location{},
		&domain.Service{},
		&domain.Barber{},
		&domain.BarberService{},
		&domain.LocationWorkingHours{},
		&domain.BarberWorkingHours{},
		&domain.TimeOff{},
		&domain.Appointment{},
		&domain.NotificationSettings{},
		&domain.NotificationLog{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
			return err
		}
		return db.Exec(`
DO $$ BEGIN
  ALTER TABLE appointments
    ADD CONSTRAINT idx_no_double_booking
    EXCLUDE USING gist (
      barber_id WITH =,
      tstzrange(start_at, end_at, '[)') WITH &&
    ) WHERE (status <> 'cancelled');
EXCEPTION WHEN duplicate_object OR duplicate_table THEN NULL;
END $$
`).Error
	}
	return nil
}
