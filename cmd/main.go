package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/mondihair/MH-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/mondihair/MH-BookingService/internal/api/handlers/create_booking"
	createClosureHandler "github.com/mondihair/MH-BookingService/internal/api/handlers/create_closure"
	deleteClosureHandler "github.com/mondihair/MH-BookingService/internal/api/handlers/delete_closure"
	getAvailableSlotsHandler "github.com/mondihair/MH-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/mondihair/MH-BookingService/internal/api/handlers/get_booking"
	getClosuresHandler "github.com/mondihair/MH-BookingService/internal/api/handlers/get_closures"
	getStaffHandler "github.com/mondihair/MH-BookingService/internal/api/handlers/get_staff"
	getStaffBookingsHandler "github.com/mondihair/MH-BookingService/internal/api/handlers/get_staff_bookings"
	"github.com/mondihair/MH-BookingService/internal/api/middleware"
	"github.com/mondihair/MH-BookingService/internal/catalog"
	"github.com/mondihair/MH-BookingService/internal/config"
	bookingRepo "github.com/mondihair/MH-BookingService/internal/infra/storage/booking"
	closureRepo "github.com/mondihair/MH-BookingService/internal/infra/storage/closure"
	slotLockRepo "github.com/mondihair/MH-BookingService/internal/infra/storage/slotlock"
	"github.com/mondihair/MH-BookingService/internal/integrations/vonage"
	"github.com/mondihair/MH-BookingService/internal/notifications"
	remindersScheduler "github.com/mondihair/MH-BookingService/internal/scheduler/reminders"
	bookingsService "github.com/mondihair/MH-BookingService/internal/service/bookings"
	closuresService "github.com/mondihair/MH-BookingService/internal/service/closures"
	createBookingUC "github.com/mondihair/MH-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/mondihair/MH-BookingService/internal/usecase/get_available_slots"
	"github.com/mondihair/MH-BookingService/pkg/dbmetrics"
	"github.com/mondihair/MH-BookingService/pkg/logger"
	"github.com/mondihair/MH-BookingService/pkg/metrics"
	"github.com/mondihair/MH-BookingService/pkg/phone"
	"github.com/mondihair/MH-BookingService/pkg/simpletxmanager"
	"github.com/mondihair/MH-BookingService/pkg/txmanager"
)

func main() {
	// Secrets come from the environment; .env is for local development.
	_ = godotenv.Load()

	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting MH-BookingService...")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load business timezone: %v", err)
	}

	cat, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		log.Fatal("Failed to load catalog: %v", err)
	}
	log.Info("Catalog loaded from %s: %d staff, %d services",
		cfg.Catalog.File, len(cat.Staff()), len(cat.Services()))

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// SMS provider and the notification dispatcher
	smsClient := vonage.NewClient(
		cfg.SMS.APIKey,
		cfg.SMS.APISecret,
		cfg.SMS.Sender,
		time.Duration(cfg.SMS.Timeout)*time.Second,
		log,
	)
	normalizer := phone.NewNormalizer(cfg.Booking.PhoneCountryCode, cfg.Booking.PhoneNationalLength)
	notifier := notifications.NewService(smsClient, normalizer, cat, cfg.SMS.Phone, log)

	// Repositories and transaction managers, with or without metrics
	type txManagers struct {
		serializable createBookingUC.TransactionManager
		plain        bookingsService.TransactionManager
	}

	var (
		bookingRepository *bookingRepo.Repository
		slotLockRepos     *slotLockRepo.Repository
		closureRepos      *closureRepo.Repository
		txMgr             txManagers
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		slotLockRepos = slotLockRepo.NewRepository(wrappedDB)
		closureRepos = closureRepo.NewRepository(wrappedDB)
		manager := txmanager.NewTransactionManager(wrappedDB)
		txMgr = txManagers{serializable: manager, plain: manager}
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		slotLockRepos = slotLockRepo.NewRepository(db)
		closureRepos = closureRepo.NewRepository(db)
		manager := simpletxmanager.NewTransactionManager(db)
		txMgr = txManagers{serializable: manager, plain: manager}
	}

	// Services and use cases
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotLockRepos,
		cat,
		notifier,
		txMgr.plain,
		log,
	)
	closureSvc := closuresService.NewService(closureRepos, cat, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotLockRepos,
		closureRepos,
		cat,
		normalizer,
		notifier,
		txMgr.serializable,
		location,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		closureRepos,
		cat,
		location,
		log,
	)

	// Reminder scheduler
	var schedulerMetrics remindersScheduler.MetricsCollector
	if cfg.Metrics.Enabled {
		schedulerMetrics = metricsCollector
	}
	scheduler := remindersScheduler.NewScheduler(
		bookingRepository,
		notifier,
		schedulerMetrics,
		location,
		remindersScheduler.Config{
			ServiceName:      cfg.Metrics.ServiceName,
			Interval:         time.Duration(cfg.Booking.ReminderScanMinutes) * time.Minute,
			LeadMinutes:      cfg.Booking.ReminderLeadMinutes,
			ToleranceMinutes: cfg.Booking.ReminderToleranceMinutes,
		},
		log,
	)

	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	go scheduler.Run(schedulerCtx)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getStaff := getStaffHandler.NewHandler(cat, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getStaffBookings := getStaffBookingsHandler.NewHandler(bookingSvc, log)
	createClosure := createClosureHandler.NewHandler(closureSvc, log)
	getClosures := getClosuresHandler.NewHandler(closureSvc, log)
	deleteClosure := deleteClosureHandler.NewHandler(closureSvc, log)

	// Router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes: the booking widget
	api.HandleFunc("/staff", getStaff.Handle).Methods(http.MethodGet)
	api.HandleFunc("/staff/{staffId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Admin routes: require the shared admin token
	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Server.AdminToken, log))

	admin.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/staff/{staffId}/bookings", getStaffBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/staff/{staffId}/closures", createClosure.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/staff/{staffId}/closures", getClosures.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/closures/{closureId}", deleteClosure.Handle).Methods(http.MethodDelete)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopScheduler()
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
