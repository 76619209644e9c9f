package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"barbershop/internal/config"
	"barbershop/internal/database"
	"barbershop/internal/middleware"
	"barbershop/internal/modules/auth"
	"barbershop/internal/modules/availability"
	"barbershop/internal/modules/booking"
	"barbershop/internal/modules/calendar"
	"barbershop/internal/modules/catalog"
	"barbershop/internal/modules/notification"
	"barbershop/internal/modules/schedule"
	"barbershop/internal/pkg/cache"
	jwtsvc "barbershop/internal/pkg/jwt"
	"barbershop/internal/pkg/logger"
	"barbershop/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog := logger.New(cfg.AppEnv)
	defer zlog.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	var slotCache *cache.SlotCache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			zlog.Warn("redis unavailable, slot cache disabled", zap.Error(err))
		} else {
			slotCache = cache.NewSlotCache(redisClient, cfg.SlotCacheTTL)
		}
	}

	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	barberRepo := repository.NewBarberRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	hoursRepo := repository.NewWorkingHoursRepository(db)
	timeOffRepo := repository.NewTimeOffRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(serviceRepo, barberRepo, locationRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	scheduleService := schedule.NewService(hoursRepo, timeOffRepo, barberRepo, locationRepo, cfg.DefaultTimezone)
	scheduleHandler := schedule.NewHandler(scheduleService)

	availabilityService := availability.NewService(scheduleService, appointmentRepo, barberRepo, serviceRepo, slotCache)
	availabilityHandler := availability.NewHandler(availabilityService)

	notificationService := notification.NewService(
		appointmentRepo,
		locationRepo,
		notificationRepo,
		notification.NewLogSender(zlog),
		zlog,
	)
	notificationHandler := notification.NewHandler(notificationService)

	calendarHub := calendar.NewHub()
	defer calendarHub.Close()

	bookingService := booking.NewService(
		appointmentRepo,
		serviceRepo,
		barberRepo,
		scheduleService,
		notificationService,
		calendarHub,
		slotCache,
		zlog,
	)
	bookingHandler := booking.NewHandler(bookingService)

	calendarService := calendar.NewService(bookingService, scheduleService, appointmentRepo)
	calendarHandler := calendar.NewHandler(calendarService, calendarHub, zlog)

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger(zlog))

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		scheduleHandler.RegisterPublicRoutes(v1)
		availabilityHandler.RegisterRoutes(v1)

		// любой аутентифицированный пользователь
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
		}

		// барберы и админы
		staff := v1.Group("/staff")
		staff.Use(middleware.JWTAuth(j), middleware.StaffOnly())
		{
			scheduleHandler.RegisterStaffRoutes(staff)
			calendarHandler.RegisterRoutes(staff)
		}

		// только админы
		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			catalogHandler.RegisterAdminRoutes(admin)
			notificationHandler.RegisterAdminRoutes(admin)
		}
	}

	zlog.Info("api listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
