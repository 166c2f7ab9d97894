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
	"github.com/rs/cors"

	cancelReservationHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/cancel_reservation"
	completeReservationHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/complete_reservation"
	createReservationHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/get_available_slots"
	getManagedReservationsHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/get_managed_reservations"
	getMyReservationsHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/get_my_reservations"
	getReservationHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/get_reservation"
	getStatisticsHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/get_statistics"
	healthHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/health"
	paymentsHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/payments"
	rateReservationHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/rate_reservation"
	resourcesHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/resources"
	slotsHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/slots"
	submitPaymentHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/submit_payment"
	usersHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/users"
	venuesHandler "github.com/m04kA/SMC-VenueBooking/internal/api/handlers/venues"
	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBooking/internal/config"
	"github.com/m04kA/SMC-VenueBooking/internal/infra/blob"
	"github.com/m04kA/SMC-VenueBooking/internal/infra/ratelimit"
	actorRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/actor"
	"github.com/m04kA/SMC-VenueBooking/internal/infra/storage/migrations"
	paymentRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/payment"
	redisStorage "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/redis"
	reservationRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/reservation"
	resourceRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/resource"
	slotRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/slot"
	statisticsRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/statistics"
	venueRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/venue"
	actorsService "github.com/m04kA/SMC-VenueBooking/internal/service/actors"
	paymentsService "github.com/m04kA/SMC-VenueBooking/internal/service/payments"
	reservationsService "github.com/m04kA/SMC-VenueBooking/internal/service/reservations"
	resourcesService "github.com/m04kA/SMC-VenueBooking/internal/service/resources"
	slotsService "github.com/m04kA/SMC-VenueBooking/internal/service/slots"
	venuesService "github.com/m04kA/SMC-VenueBooking/internal/service/venues"
	getAvailableSlotsUC "github.com/m04kA/SMC-VenueBooking/internal/usecase/get_available_slots"
	getStatisticsUC "github.com/m04kA/SMC-VenueBooking/internal/usecase/get_statistics"
	submitPaymentUC "github.com/m04kA/SMC-VenueBooking/internal/usecase/submit_payment"
	"github.com/m04kA/SMC-VenueBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
	"github.com/m04kA/SMC-VenueBooking/pkg/metrics"
	"github.com/m04kA/SMC-VenueBooking/pkg/txmanager"
)

// domainMetrics счетчики бронирований и платежей (*metrics.Metrics или metrics.Nop)
type domainMetrics interface {
	IncReservationEvent(event string)
	IncPaymentEvent(outcome string)
}

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

	log.Info("Starting SMC-VenueBooking...")

	ctx := context.Background()

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		eventMetrics     domainMetrics = metrics.Nop{}
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		eventMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	rawDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer rawDB.Close()

	// Настраиваем connection pool
	rawDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	rawDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	rawDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := rawDB.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if cfg.Database.AutoMigrate {
		if err := migrations.Up(ctx, rawDB, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Обёртка над БД: с метриками или без
	var db *dbmetrics.DB
	if cfg.Metrics.Enabled {
		db = dbmetrics.WrapWithDefault(rawDB, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		db = dbmetrics.New(rawDB)
	}
	txMgr := txmanager.NewTransactionManager(db)

	// Подключаемся к Redis (чеки и rate limit)
	redisClient, err := redisStorage.NewClient(ctx, redisStorage.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal("Failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

	receiptStore := blob.NewReceiptStore(
		redisClient,
		cfg.Receipts.KeyPrefix,
		time.Duration(cfg.Receipts.TTLHours)*time.Hour,
	)

	var limiter ratelimit.Limiter = ratelimit.Noop{}
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.NewRedisLimiter(
			redisClient,
			cfg.RateLimit.MaxRequests,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
			cfg.RateLimit.KeyPrefix,
		)
		log.Info("Rate limit enabled (%d requests per %ds)", cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSeconds)
	}

	// Инициализируем репозитории
	actorRepository := actorRepo.NewRepository(db)
	venueRepository := venueRepo.NewRepository(db)
	resourceRepository := resourceRepo.NewRepository(db)
	slotRepository := slotRepo.NewRepository(db)
	reservationRepository := reservationRepo.NewRepository(db)
	paymentRepository := paymentRepo.NewRepository(db)
	statisticsRepository := statisticsRepo.NewRepository(db)

	// Инициализируем сервисы
	actorSvc := actorsService.NewService(actorRepository, log)
	venueSvc := venuesService.NewService(venueRepository, resourceRepository, log)
	resourceSvc := resourcesService.NewService(resourceRepository, venueRepository, log)
	slotSvc := slotsService.NewService(slotRepository, resourceRepository, txMgr, log)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		slotRepository,
		venueRepository,
		txMgr,
		eventMetrics,
		log,
	)
	paymentSvc := paymentsService.NewService(
		paymentRepository,
		reservationRepository,
		receiptStore,
		eventMetrics,
		log,
	)

	// Инициализируем use cases
	submitPaymentUseCase := submitPaymentUC.NewUseCase(
		reservationRepository,
		paymentRepository,
		receiptStore,
		txMgr,
		eventMetrics,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(slotRepository, resourceRepository, txMgr, log)
	getStatisticsUseCase := getStatisticsUC.NewUseCase(statisticsRepository, txMgr, log)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	completeReservation := completeReservationHandler.NewHandler(reservationSvc, log)
	rateReservation := rateReservationHandler.NewHandler(reservationSvc, log)
	getMyReservations := getMyReservationsHandler.NewHandler(reservationSvc, log)
	getManagedReservations := getManagedReservationsHandler.NewHandler(reservationSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getStatistics := getStatisticsHandler.NewHandler(getStatisticsUseCase, log)
	submitPayment := submitPaymentHandler.NewHandler(submitPaymentUseCase, log)
	payments := paymentsHandler.NewHandler(paymentSvc, log)
	venues := venuesHandler.NewHandler(venueSvc, log)
	resources := resourcesHandler.NewHandler(resourceSvc, log)
	slots := slotsHandler.NewHandler(slotSvc, log)
	users := usersHandler.NewHandler(actorSvc, log)
	health := healthHandler.NewHandler(log,
		healthHandler.Check{Name: "postgres", Ping: rawDB.PingContext},
		healthHandler.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}},
	)

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, log)
	rateLimit := middleware.RateLimit(limiter, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	public := api.NewRoute().Subrouter()
	public.Use(rateLimit)

	// --- Регистрация ---
	public.HandleFunc("/users", users.Register).Methods(http.MethodPost)
	public.HandleFunc("/users/check-email", users.CheckEmail).Methods(http.MethodPost)

	// --- Каталог ---
	public.HandleFunc("/venues", venues.Search).Methods(http.MethodGet)
	public.HandleFunc("/venues/{venueId}", venues.Get).Methods(http.MethodGet)
	public.HandleFunc("/resources", resources.List).Methods(http.MethodGet)
	public.HandleFunc("/resources/{resourceId}", resources.Get).Methods(http.MethodGet)
	public.HandleFunc("/slots", slots.List).Methods(http.MethodGet)
	public.HandleFunc("/slots/{slotId}", slots.Get).Methods(http.MethodGet)

	// Свободные слоты пространства на дату
	public.HandleFunc("/resources/{resourceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.NewRoute().Subrouter()
	protected.Use(auth.Middleware, rateLimit)

	protected.HandleFunc("/me", users.Me).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/reservations/{reservationId}/complete", completeReservation.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/reservations/{reservationId}/rating", rateReservation.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/me/reservations", getMyReservations.Handle).Methods(http.MethodGet)

	// --- Платежи ---
	protected.HandleFunc("/payments", submitPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{paymentId}", payments.Get).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{paymentId}/confirm", payments.Confirm).Methods(http.MethodPut)
	protected.HandleFunc("/receipts/{key}", payments.GetReceipt).Methods(http.MethodGet)

	// --- Управление центрами (для менеджеров) ---
	protected.HandleFunc("/venues", venues.Create).Methods(http.MethodPost)
	protected.HandleFunc("/venues/{venueId}", venues.Update).Methods(http.MethodPut)
	protected.HandleFunc("/venues/{venueId}", venues.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/resources", resources.Create).Methods(http.MethodPost)
	protected.HandleFunc("/resources/{resourceId}", resources.Update).Methods(http.MethodPut)
	protected.HandleFunc("/resources/{resourceId}", resources.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/slots", slots.Create).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{slotId}", slots.Update).Methods(http.MethodPut)
	protected.HandleFunc("/slots/{slotId}", slots.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/slots/{slotId}/status", slots.SetStatus).Methods(http.MethodPut)

	protected.HandleFunc("/manager/venues", venues.ListMine).Methods(http.MethodGet)
	protected.HandleFunc("/manager/reservations", getManagedReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/manager/statistics", getStatistics.Handle).Methods(http.MethodGet)

	// CORS поверх роутера
	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
