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
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/RMS-BookingGateway/internal/api/handlers/cancel_booking"
	getAvailableSlotsHandler "github.com/m04kA/RMS-BookingGateway/internal/api/handlers/get_available_slots"
	listAttemptsHandler "github.com/m04kA/RMS-BookingGateway/internal/api/handlers/list_attempts"
	listBookingsHandler "github.com/m04kA/RMS-BookingGateway/internal/api/handlers/list_bookings"
	submitBookingHandler "github.com/m04kA/RMS-BookingGateway/internal/api/handlers/submit_booking"
	"github.com/m04kA/RMS-BookingGateway/internal/api/middleware"
	"github.com/m04kA/RMS-BookingGateway/internal/config"
	bookingCache "github.com/m04kA/RMS-BookingGateway/internal/infra/cache/bookings"
	"github.com/m04kA/RMS-BookingGateway/internal/infra/storage/attemptlog"
	mediastoreClient "github.com/m04kA/RMS-BookingGateway/internal/integrations/mediastore"
	roomlyClient "github.com/m04kA/RMS-BookingGateway/internal/integrations/roomly"
	bookingsService "github.com/m04kA/RMS-BookingGateway/internal/service/bookings"
	"github.com/m04kA/RMS-BookingGateway/internal/service/schedules"
	getAvailableSlotsUC "github.com/m04kA/RMS-BookingGateway/internal/usecase/get_available_slots"
	submitBookingUC "github.com/m04kA/RMS-BookingGateway/internal/usecase/submit_booking"
	"github.com/m04kA/RMS-BookingGateway/pkg/dbmetrics"
	"github.com/m04kA/RMS-BookingGateway/pkg/logger"
	"github.com/m04kA/RMS-BookingGateway/pkg/metrics"
	"github.com/m04kA/RMS-BookingGateway/pkg/types"
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

	log.Info("Starting RMS-BookingGateway...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных (журнал попыток согласования)
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

	// Подключаемся к Redis (кэш списков бронирований)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем интеграционных клиентов
	platformClient := roomlyClient.NewClient(
		cfg.Platform.URL,
		time.Duration(cfg.Platform.Timeout)*time.Second,
		log,
	)
	mediaClient := mediastoreClient.NewClient(
		cfg.Media.URL,
		time.Duration(cfg.Media.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Platform=%s timeout=%ds, Media=%s timeout=%ds)",
		cfg.Platform.URL, cfg.Platform.Timeout, cfg.Media.URL, cfg.Media.Timeout)

	// Репозиторий журнала (с метриками или без)
	var attemptRepository *attemptlog.Repository
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		attemptRepository = attemptlog.NewRepository(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		attemptRepository = attemptlog.NewRepository(db)
	}

	// Кэш списков бронирований
	cache := bookingCache.New(rdb, time.Duration(cfg.Redis.TTL)*time.Second, log)

	// Сервисы расписаний: пробер и секвенсор ремонта
	prober := schedules.NewProber(platformClient, log)

	sequencerOpts := schedules.DefaultSequencerOptions()
	if cfg.Booking.OperatingStart != "" {
		sequencerOpts.OperatingStart = types.TimeString(cfg.Booking.OperatingStart)
	}
	if cfg.Booking.OperatingEnd != "" {
		sequencerOpts.OperatingEnd = types.TimeString(cfg.Booking.OperatingEnd)
	}
	if cfg.Booking.SettleMaxWaitSeconds > 0 {
		sequencerOpts.SettleMaxWait = time.Duration(cfg.Booking.SettleMaxWaitSeconds) * time.Second
	}
	sequencer := schedules.NewSequencer(platformClient, prober, log, sequencerOpts)

	// Сервис бронирований для дашборда
	bookingSvc := bookingsService.NewService(platformClient, cache, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		platformClient,
		prober,
		bookingSvc,
		log,
	)

	bookingOpts := submitBookingUC.DefaultOptions()
	if cfg.Booking.OperatingStart != "" {
		bookingOpts.OperatingStart = types.TimeString(cfg.Booking.OperatingStart)
	}
	if cfg.Booking.OperatingEnd != "" {
		bookingOpts.OperatingEnd = types.TimeString(cfg.Booking.OperatingEnd)
	}
	if cfg.Booking.DefaultTimeZone != "" {
		bookingOpts.DefaultTimeZone = cfg.Booking.DefaultTimeZone
	}

	submitBookingUseCase := submitBookingUC.NewUseCase(
		platformClient,
		sequencer,
		mediaClient,
		attemptRepository,
		cache,
		log,
		bookingOpts,
	)

	// Handlers
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	listAttempts := listAttemptsHandler.NewHandler(attemptRepository, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("HTTP metrics middleware enabled, endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты ресурса на дату
	api.HandleFunc("/resources/{resourceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Admin-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Отправка бронирования с ремонтом расписания
	protected.HandleFunc("/bookings", submitBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Бронирования ресурса на дату
	protected.HandleFunc("/resources/{resourceId}/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Журнал попыток согласования по ресурсу
	protected.HandleFunc("/resources/{resourceId}/attempts", listAttempts.Handle).Methods(http.MethodGet)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
