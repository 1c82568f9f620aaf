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
	"github.com/rs/cors"

	addSlotHandler "github.com/m04kA/SMC-SlotInventory/internal/api/handlers/add_slot"
	disableDaySlotsHandler "github.com/m04kA/SMC-SlotInventory/internal/api/handlers/disable_day_slots"
	getCapacitiesHandler "github.com/m04kA/SMC-SlotInventory/internal/api/handlers/get_capacities"
	listSlotsHandler "github.com/m04kA/SMC-SlotInventory/internal/api/handlers/list_slots"
	reconcileLegacySlotsHandler "github.com/m04kA/SMC-SlotInventory/internal/api/handlers/reconcile_legacy_slots"
	reserveSlotHandler "github.com/m04kA/SMC-SlotInventory/internal/api/handlers/reserve_slot"
	toggleSlotHandler "github.com/m04kA/SMC-SlotInventory/internal/api/handlers/toggle_slot"
	watchSlotsHandler "github.com/m04kA/SMC-SlotInventory/internal/api/handlers/watch_slots"
	"github.com/m04kA/SMC-SlotInventory/internal/api/middleware"
	"github.com/m04kA/SMC-SlotInventory/internal/config"
	"github.com/m04kA/SMC-SlotInventory/internal/infra/changefeed"
	slotsRepo "github.com/m04kA/SMC-SlotInventory/internal/infra/storage/slots"
	slotsService "github.com/m04kA/SMC-SlotInventory/internal/service/slots"
	disableDaySlotsUC "github.com/m04kA/SMC-SlotInventory/internal/usecase/disable_day_slots"
	reconcileLegacySlotsUC "github.com/m04kA/SMC-SlotInventory/internal/usecase/reconcile_legacy_slots"
	reserveSlotUC "github.com/m04kA/SMC-SlotInventory/internal/usecase/reserve_slot"
	watchSlotsUC "github.com/m04kA/SMC-SlotInventory/internal/usecase/watch_slots"
	"github.com/m04kA/SMC-SlotInventory/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotInventory/pkg/logger"
	"github.com/m04kA/SMC-SlotInventory/pkg/metrics"
	"github.com/m04kA/SMC-SlotInventory/pkg/submissionlock"
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

	log.Info("Starting SMC-SlotInventory...")
	log.Info("Configuration loaded from config.toml")

	capacities, err := cfg.CapacityTable()
	if err != nil {
		log.Fatal("Invalid capacity table: %v", err)
	}
	log.Info("Capacity table: %v", capacities)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Репозиторий слотов (с метриками или без)
	var executor slotsRepo.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	}
	slotRepository := slotsRepo.NewRepository(executor)

	// Лента изменений: отдельное соединение LISTEN
	feed, err := changefeed.Start(cfg.Database.DSN(), cfg.ChangeFeed.Channel, changefeed.Config{
		MinReconnectInterval: time.Duration(cfg.ChangeFeed.MinReconnectInterval) * time.Second,
		MaxReconnectInterval: time.Duration(cfg.ChangeFeed.MaxReconnectInterval) * time.Second,
		PingInterval:         time.Duration(cfg.ChangeFeed.PingInterval) * time.Second,
	}, log)
	if err != nil {
		log.Fatal("Failed to start change feed: %v", err)
	}
	log.Info("Change feed listening on channel %s", cfg.ChangeFeed.Channel)

	// Инициализируем сервисы
	slotSvc := slotsService.NewService(slotRepository, capacities, metricsCollector, log)

	// Инициализируем use cases
	disableDaySlotsUseCase := disableDaySlotsUC.NewUseCase(slotRepository, log)
	reconcileLegacySlotsUseCase := reconcileLegacySlotsUC.NewUseCase(slotRepository, capacities, log)
	reserveSlotUseCase := reserveSlotUC.NewUseCase(slotRepository, metricsCollector, log)
	watchSlotsUseCase := watchSlotsUC.NewUseCase(slotSvc, feed, log)

	// Инициализируем handlers
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	getCapacities := getCapacitiesHandler.NewHandler(slotSvc)
	addSlot := addSlotHandler.NewHandler(slotSvc, log)
	toggleSlot := toggleSlotHandler.NewHandler(slotSvc, log)
	disableDaySlots := disableDaySlotsHandler.NewHandler(disableDaySlotsUseCase, log)
	reconcileLegacySlots := reconcileLegacySlotsHandler.NewHandler(reconcileLegacySlotsUseCase, log)
	reserveSlot := reserveSlotHandler.NewHandler(reserveSlotUseCase, log)
	watchSlots := watchSlotsHandler.NewHandler(watchSlotsUseCase, cfg.CORS.AllowedOrigins, metricsCollector, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
		r.Use(limiter.Middleware())
		log.Info("Rate limit enabled: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// ADMIN ROUTES (токен с ролью администратора)
	// ============================================================

	admin := api.PathPrefix("/slots").Subrouter()
	// ============================================================
	// BOOKING ROUTES (сервис бронирования или администратор)
	// ============================================================

	booking := api.PathPrefix("/slots").Subrouter()

	if cfg.Auth.Enabled() {
		admin.Use(middleware.Auth(middleware.AuthConfig{
			Secret: []byte(cfg.Auth.JWTSecret),
			Issuer: cfg.Auth.Issuer,
			Roles:  []string{cfg.Auth.AdminRole},
		}, log))
		booking.Use(middleware.Auth(middleware.AuthConfig{
			Secret: []byte(cfg.Auth.JWTSecret),
			Issuer: cfg.Auth.Issuer,
			Roles:  []string{cfg.Auth.ServiceRole, cfg.Auth.AdminRole},
		}, log))
		log.Info("JWT auth enabled (issuer=%q)", cfg.Auth.Issuer)
	} else {
		log.Warn("JWT auth disabled: auth.jwt_secret is empty")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			// guard пропускает запросы, пока Redis недоступен
			log.Warn("Redis is not reachable at %s: %v", cfg.Redis.Addr, err)
		}
		admin.Use(middleware.SubmissionGuard(
			submissionlock.New(redisClient),
			cfg.Redis.SubmissionKeyPrefix,
			time.Duration(cfg.Redis.SubmissionTTL)*time.Second,
			log,
		))
		log.Info("Submission guard enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SubmissionTTL)
	}

	// --- Просмотр ---
	// Статические пути регистрируются раньше шаблонных
	admin.HandleFunc("/capacities", getCapacities.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/watch", watchSlots.Handle).Methods(http.MethodGet)
	admin.HandleFunc("", listSlots.Handle).Methods(http.MethodGet)

	// --- Управление слотами ---
	admin.HandleFunc("", addSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/reconcile", reconcileLegacySlots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/{day}/disable-all", disableDaySlots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/{day}/{category}/{time}/toggle", toggleSlot.Handle).Methods(http.MethodPatch)

	// --- Бронирование мест в слоте ---
	booking.HandleFunc("/{day}/{category}/{time}/reserve", reserveSlot.Handle).Methods(http.MethodPost)
	booking.HandleFunc("/{day}/{category}/{time}/release", reserveSlot.HandleRelease).Methods(http.MethodPost)

	// CORS для браузерной админки
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders:   []string{middleware.HeaderRequestID},
		AllowCredentials: true,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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

	// Закрытие ленты завершает открытые websocket подписки
	if err := feed.Close(); err != nil {
		log.Error("Failed to close change feed: %v", err)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
