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
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	archiveReservationHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/archive_reservation"
	cancelReservationHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/cancel_reservation"
	completeReservationHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/complete_reservation"
	createReservationHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/delete_reservation"
	deleteSalonExceptionHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/delete_salon_exception"
	getAvailabilityHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/get_available_slots"
	getCapacityHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/get_capacity"
	getCustomerReservationsHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/get_customer_reservations"
	getReservationHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/get_reservation"
	getSalonReservationsHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/get_salon_reservations"
	getWeeklyScheduleHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/get_weekly_schedule"
	listScheduleExceptionsHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/list_schedule_exceptions"
	replaceStaffExceptionsHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/replace_staff_exceptions"
	rescheduleReservationHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/reschedule_reservation"
	setSalonExceptionHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/set_salon_exception"
	setWeeklyScheduleHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/set_weekly_schedule"
	updateCapacityHandler "github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers/update_capacity"
	"github.com/atsuki-sakai/bocker-scheduling/internal/api/middleware"
	"github.com/atsuki-sakai/bocker-scheduling/internal/config"
	capacityRepo "github.com/atsuki-sakai/bocker-scheduling/internal/infra/storage/capacity"
	reservationRepo "github.com/atsuki-sakai/bocker-scheduling/internal/infra/storage/reservation"
	scheduleRepo "github.com/atsuki-sakai/bocker-scheduling/internal/infra/storage/schedule"
	catalogServiceClient "github.com/atsuki-sakai/bocker-scheduling/internal/integrations/catalogservice"
	capacityService "github.com/atsuki-sakai/bocker-scheduling/internal/service/capacity"
	reservationsService "github.com/atsuki-sakai/bocker-scheduling/internal/service/reservations"
	schedulesService "github.com/atsuki-sakai/bocker-scheduling/internal/service/schedules"
	createReservationUC "github.com/atsuki-sakai/bocker-scheduling/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/atsuki-sakai/bocker-scheduling/internal/usecase/get_available_slots"
	resolveAvailabilityUC "github.com/atsuki-sakai/bocker-scheduling/internal/usecase/resolve_availability"
	rescheduleReservationUC "github.com/atsuki-sakai/bocker-scheduling/internal/usecase/reschedule_reservation"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/dbmetrics"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/logger"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/metrics"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/simpletxmanager"
	"github.com/atsuki-sakai/bocker-scheduling/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting Bocker-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционного клиента
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		capacityRepository    *capacityRepo.Repository
	)

	// Интерфейс transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		capacityRepository = capacityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		reservationRepository = reservationRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		capacityRepository = capacityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}
	log.Debug("Repositories and transaction manager initialized (metrics=%t)", cfg.Metrics.Enabled)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		txMgr,
		log,
	)
	scheduleSvc := schedulesService.NewService(
		scheduleRepository,
		txMgr,
		log,
	)
	capacitySvc := capacityService.NewService(capacityRepository, log)

	// Инициализируем use cases
	resolveAvailabilityUseCase := resolveAvailabilityUC.NewUseCase(
		scheduleRepository,
		catalogClient,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		resolveAvailabilityUseCase,
		reservationRepository,
		capacityRepository,
		catalogClient,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		capacityRepository,
		resolveAvailabilityUseCase,
		catalogClient,
		txMgr,
		log,
	)

	rescheduleReservationUseCase := rescheduleReservationUC.NewUseCase(
		reservationRepository,
		capacityRepository,
		resolveAvailabilityUseCase,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(resolveAvailabilityUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	rescheduleReservation := rescheduleReservationHandler.NewHandler(rescheduleReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getCustomerReservations := getCustomerReservationsHandler.NewHandler(reservationSvc, log)
	getSalonReservations := getSalonReservationsHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	completeReservation := completeReservationHandler.NewHandler(reservationSvc, log)
	archiveReservation := archiveReservationHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	setWeeklySchedule := setWeeklyScheduleHandler.NewHandler(scheduleSvc, log)
	getWeeklySchedule := getWeeklyScheduleHandler.NewHandler(scheduleSvc, log)
	replaceStaffExceptions := replaceStaffExceptionsHandler.NewHandler(scheduleSvc, log)
	setSalonException := setSalonExceptionHandler.NewHandler(scheduleSvc, log)
	deleteSalonException := deleteSalonExceptionHandler.NewHandler(scheduleSvc, log)
	listScheduleExceptions := listScheduleExceptionsHandler.NewHandler(scheduleSvc, log)
	getCapacity := getCapacityHandler.NewHandler(capacitySvc, log)
	updateCapacity := updateCapacityHandler.NewHandler(capacitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Request ID для трассировки запросов
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Рабочее окно салона/мастера на дату
	api.HandleFunc("/salons/{salonId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Доступные слоты для записи
	api.HandleFunc("/salons/{salonId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Customer-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Брони ---
	// Создание брони
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение брони по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Перенос брони на другое время
	protected.HandleFunc("/reservations/{reservationId}/reschedule", rescheduleReservation.Handle).Methods(http.MethodPatch)

	// Отмена брони
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Завершение визита
	protected.HandleFunc("/reservations/{reservationId}/complete", completeReservation.Handle).Methods(http.MethodPatch)

	// Архивация брони
	protected.HandleFunc("/reservations/{reservationId}/archive", archiveReservation.Handle).Methods(http.MethodPatch)

	// Удаление брони
	protected.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)

	// История броней клиента
	protected.HandleFunc("/customers/{customerId}/reservations", getCustomerReservations.Handle).Methods(http.MethodGet)

	// --- Управление салоном ---
	// Список броней салона
	protected.HandleFunc("/salons/{salonId}/reservations", getSalonReservations.Handle).Methods(http.MethodGet)

	// Недельное расписание салона или мастера
	protected.HandleFunc("/{ownerType:salons|staff}/{ownerId}/weekly-schedules", setWeeklySchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/{ownerType:salons|staff}/{ownerId}/weekly-schedules", getWeeklySchedule.Handle).Methods(http.MethodGet)

	// Исключения расписания
	protected.HandleFunc("/staff/{staffId}/schedule-exceptions", replaceStaffExceptions.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/salons/{salonId}/schedule-exceptions/{date}", setSalonException.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/salons/{salonId}/schedule-exceptions/{date}", deleteSalonException.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/{ownerType:salons|staff}/{ownerId}/schedule-exceptions", listScheduleExceptions.Handle).Methods(http.MethodGet)

	// Вместимость салона
	protected.HandleFunc("/salons/{salonId}/capacity", getCapacity.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/salons/{salonId}/capacity", updateCapacity.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
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
