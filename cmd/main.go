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
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	exportProfessionalAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/export_professional_availability"
	getAvailableProfessionalsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_professionals"
	getProfessionalAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_professional_availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	companyCache "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/company"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	companyRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/company"
	exceptionRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/exception"
	policyRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/policy"
	professionalRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/professional"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	getAvailableProfessionalsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_professionals"
	getProfessionalAvailabilityUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_professional_availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

func main() {
	// .env необязателен, переменные могут прийти из окружения контейнера
	_ = godotenv.Load()

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

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

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

	// Без метрик обёртка только проксирует вызовы, транзакции работают одинаково
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	professionalRepository := professionalRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	exceptionRepository := exceptionRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	policyRepository := policyRepo.NewRepository(wrappedDB)
	companyRepository := companyRepo.NewRepository(wrappedDB)

	// Данные компании (таймзона) читаются на каждый запрос, поэтому опционально кэшируются в Redis
	var companyProvider getProfessionalAvailabilityUC.CompanyProvider = companyRepository

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Кэш деградирует до чтения из БД, поэтому не фатально
			log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Addr, err)
		}
		cancel()

		companyProvider = companyCache.NewCache(
			companyRepository,
			redisClient,
			cfg.Redis.KeyPrefix,
			cfg.Redis.CacheTTLDuration(),
			log,
		)
		log.Info("Company cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
	}

	// Инициализируем сервис расчета доступности
	resolver := availability.NewResolver(scheduleRepository, exceptionRepository)
	availabilitySvc := availability.NewService(
		resolver,
		bookingRepository,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	getProfessionalAvailabilityUseCase := getProfessionalAvailabilityUC.NewUseCase(
		professionalRepository,
		serviceRepository,
		companyProvider,
		policyRepository,
		availabilitySvc,
		log,
	)

	getAvailableProfessionalsUseCase := getAvailableProfessionalsUC.NewUseCase(
		professionalRepository,
		serviceRepository,
		companyProvider,
		policyRepository,
		availabilitySvc,
		cfg.Availability.PreviewSlots,
		log,
	)

	// Инициализируем handlers
	getAvailableProfessionals := getAvailableProfessionalsHandler.NewHandler(getAvailableProfessionalsUseCase, log)
	getProfessionalAvailability := getProfessionalAvailabilityHandler.NewHandler(getProfessionalAvailabilityUseCase, log)
	exportProfessionalAvailability := exportProfessionalAvailabilityHandler.NewHandler(getProfessionalAvailabilityUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := wrappedDB.PingContext(req.Context()); err != nil {
			log.Error("GET /health - Database ping failed: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "база данных недоступна")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log, stopCh)
		api.Use(limiter.Middleware)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Специалисты со свободным временем на услугу в дату
	api.HandleFunc("/availability/professionals",
		getAvailableProfessionals.Handle).Methods(http.MethodGet)

	// Свободные слоты специалиста на дату: JSON и iCalendar
	api.HandleFunc("/availability/professional-schedule.ics",
		exportProfessionalAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/professional-schedule",
		getProfessionalAvailability.Handle).Methods(http.MethodGet)

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

	// Останавливаем фоновые сборщики (статистика пула, очистка лимитера)
	close(stopCh)

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
