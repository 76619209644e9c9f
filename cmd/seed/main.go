package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"barbershop/internal/database"
	"barbershop/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "barbershop.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Старые данные убираем в порядке внешних ключей
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notification_logs")
	db.Exec("DELETE FROM notification_settings")
	db.Exec("DELETE FROM appointments")
	db.Exec("DELETE FROM time_offs")
	db.Exec("DELETE FROM barber_working_hours")
	db.Exec("DELETE FROM location_working_hours")
	db.Exec("DELETE FROM barber_services")
	db.Exec("DELETE FROM barbers")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM locations")
	db.Exec("DELETE FROM users")

	// ================== LOCATION ==================
	log.Println("Creating location...")
	location := domain.Location{
		ID:       uuid.NewString(),
		Name:     "Istanbul",
		Address:  "ул. Баумана, 17",
		Phone:    "+7 843 210-00-17",
		Timezone: "Europe/Moscow",
	}
	must(db.Create(&location).Error)

	// Салон открыт каждый день 10:00-22:00
	for weekday := 1; weekday <= 7; weekday++ {
		must(db.Create(&domain.LocationWorkingHours{
			ID:         uuid.NewString(),
			LocationID: location.ID,
			Weekday:    weekday,
			OpenTime:   "10:00",
			CloseTime:  "22:00",
		}).Error)
	}

	// ================== USERS ==================
	log.Println("Creating users...")

	admin := createUser(db, "admin@barbershop.ru", "admin123", domain.RoleAdmin, "Администратор", "")
	client := createUser(db, "client@example.com", "client123", domain.RoleClient, "Иван Петров", "+7 912 345-67-89")
	_ = admin
	_ = client

	// ================== SERVICES ==================
	log.Println("Creating services...")

	services := []domain.Service{
		{ID: uuid.NewString(), Name: "Мужская стрижка", DurationMin: 60, Price: 900, IsActive: true},
		{ID: uuid.NewString(), Name: "Стрижка машинкой", DurationMin: 30, Price: 500, IsActive: true},
		{ID: uuid.NewString(), Name: "Стрижка + борода", DurationMin: 90, Price: 1300, IsActive: true},
		{ID: uuid.NewString(), Name: "Оформление бороды", DurationMin: 30, Price: 500, IsActive: true},
	}
	for i := range services {
		must(db.Create(&services[i]).Error)
	}

	// ================== BARBERS ==================
	log.Println("Creating barbers...")

	barberNames := []string{
		"Азамат Хусаинов",
		"Рамиль Сафин",
		"Ильдар Галиуллин",
		"Тимур Мухаметшин",
	}
	for i, name := range barberNames {
		email := fmt.Sprintf("barber%d@barbershop.ru", i+1)
		user := createUser(db, email, "barber123", domain.RoleBarber, name, "")

		barber := domain.Barber{
			ID:         uuid.NewString(),
			UserID:     user.ID,
			LocationID: location.ID,
			Rating:     4.6 + 0.1*float64(i%3),
			IsActive:   true,
		}
		must(db.Create(&barber).Error)

		// каждый барбер оказывает все услуги
		for _, svc := range services {
			must(db.Create(&domain.BarberService{
				BarberID:  barber.ID,
				ServiceID: svc.ID,
			}).Error)
		}
	}

	log.Println("Seed complete.")
}

func createUser(db *gorm.DB, email, password string, role domain.UserRole, fullName, phone string) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	must(err)

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Role:         role,
		FullName:     fullName,
		Phone:        phone,
	}
	must(db.Create(&user).Error)
	return &user
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
