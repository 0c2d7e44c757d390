package app

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-VenueBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	eventRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/event"
	paymentRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/payment"
	scheduleRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/schedule"
	settingsRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/settings"
	throttleRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/throttle"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/notifications"
	bookingsService "github.com/m04kA/SMC-VenueBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/cancellation"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/conflicts"
	settingsService "github.com/m04kA/SMC-VenueBookingService/internal/service/settings"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/throttle"
	"github.com/m04kA/SMC-VenueBookingService/internal/sweeper"
	createBookingUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_booking"
	expirePaymentUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/expire_payment"
	expirePendingUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/expire_pending"
	getFreeWindowsUC "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_free_windows"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/metrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/mq"
	"github.com/m04kA/SMC-VenueBookingService/pkg/txmanager"
)

const throttlePrefix = "sweep:"

// executor соединение, которое принимают репозитории и transaction manager
type executor interface {
	dbmetrics.DBExecutor
	txmanager.TxBeginner
}

// App собранные зависимости сервиса. Используется HTTP-сервером и CLI фоновых задач
type App struct {
	Config  *config.Config
	Log     *logger.Logger
	Metrics *metrics.Metrics // nil, если метрики выключены

	BookingService  *bookingsService.Service
	SettingsService *settingsService.Service

	CreateBooking  *createBookingUC.UseCase
	GetFreeWindows *getFreeWindowsUC.UseCase
	ExpirePending  *expirePendingUC.UseCase
	ExpirePayment  *expirePaymentUC.UseCase

	Leases sweeper.LeaseCleaner // nil для in-memory throttle

	db        *sql.DB
	publisher *mq.Publisher
	stopCh    chan struct{}
}

// New подключается к базе данных и брокеру и собирает сервисы и use cases
func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Log:    log,
		stopCh: make(chan struct{}),
	}

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("app: open database: %w", err)
	}
	a.db = db

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("app: ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var conn executor = db
	if a.Metrics != nil {
		conn = dbmetrics.WrapWithDefault(db, a.Metrics, a.stopCh)
		log.Info("Database metrics collection started")
	}

	// Репозитории
	bookings := bookingRepo.NewRepository(conn)
	events := eventRepo.NewRepository(conn)
	schedules := scheduleRepo.NewRepository(conn)
	venueSettings := settingsRepo.NewRepository(conn)
	payments := paymentRepo.NewRepository(conn)
	txMgr := txmanager.NewTransactionManager(conn)

	// Throttle для фоновых задач
	var store throttle.Store
	switch cfg.Throttle.Backend {
	case config.ThrottleBackendMemory:
		store = throttle.NewMemoryStore()
		log.Warn("In-memory throttle is used: sweeps are not coordinated between hosts")
	default:
		leases := throttleRepo.NewRepository(conn)
		store = leases
		a.Leases = leases
	}
	gate := throttle.NewGate(store, throttlePrefix)

	// Уведомления
	var gateway *notifications.Gateway
	if cfg.RabbitMQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("app: connect to rabbitmq: %w", err)
		}
		a.publisher = publisher
		gateway = notifications.NewGateway(publisher, time.Duration(cfg.Notifications.Timeout)*time.Second, log)
		log.Info("Notifications are published to exchange %s", cfg.RabbitMQ.Exchange)
	} else {
		gateway = notifications.NewGateway(nil, time.Duration(cfg.Notifications.Timeout)*time.Second, log)
		log.Info("RabbitMQ disabled, notifications are only logged")
	}

	// Сервисы
	blocking := cfg.Booking.BlockingBookingStatuses()
	canceller := cancellation.NewService(bookings, payments, gateway, txMgr, log)
	detector := conflicts.NewDetector(bookings, blocking)

	a.ExpirePayment = expirePaymentUC.NewUseCase(
		bookings,
		canceller,
		gate,
		a.Metrics,
		expirePaymentUC.Options{
			Interval:  cfg.Sweepers.PaymentInterval.Duration,
			BatchSize: cfg.Sweepers.BatchSize,
		},
		log,
	)

	a.ExpirePending = expirePendingUC.NewUseCase(
		bookings,
		schedules,
		venueSettings,
		canceller,
		gate,
		gateway,
		a.Metrics,
		expirePendingUC.Options{
			Interval:   cfg.Sweepers.PendingInterval.Duration,
			BatchSize:  cfg.Sweepers.BatchSize,
			WarningTTL: cfg.Sweepers.WarningDedupTTL.Duration,
		},
		log,
	)

	a.BookingService = bookingsService.NewService(bookings, a.ExpirePayment, canceller, log)
	a.SettingsService = settingsService.NewService(venueSettings, log)

	a.CreateBooking = createBookingUC.NewUseCase(
		bookings,
		events,
		schedules,
		detector,
		gateway,
		txMgr,
		createBookingUC.Options{
			LeadTimeMinutes:    cfg.Booking.LeadTimeMinutes,
			MinDurationMinutes: cfg.Booking.MinDurationMinutes,
		},
		log,
	)

	a.GetFreeWindows = getFreeWindowsUC.NewUseCase(
		bookings,
		schedules,
		txMgr,
		getFreeWindowsUC.Options{
			LeadTimeMinutes:    cfg.Booking.LeadTimeMinutes,
			MinDurationMinutes: cfg.Booking.MinDurationMinutes,
			BlockingStatuses:   blocking,
		},
		log,
	)

	return a, nil
}

// SweepLoop цикл фоновых задач автоотмены
func (a *App) SweepLoop() *sweeper.Loop {
	jobs := []sweeper.NamedJob{
		{Name: expirePendingUC.JobName, Job: a.ExpirePending},
		{Name: expirePaymentUC.JobName, Job: a.ExpirePayment},
	}

	var cleaner sweeper.LeaseCleaner
	if a.Leases != nil {
		cleaner = a.Leases
	}

	return sweeper.NewLoop(
		jobs,
		a.Config.Sweepers.LoopTick.Duration,
		cleaner,
		a.Config.Sweepers.LeaseCleanupPeriod.Duration,
		a.Log,
	)
}

// Close останавливает сбор метрик и закрывает соединения
func (a *App) Close() {
	select {
	case <-a.stopCh:
	default:
		close(a.stopCh)
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.Log.Error("Failed to close rabbitmq publisher: %v", err)
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.Log.Error("Failed to close database: %v", err)
		}
	}
}
