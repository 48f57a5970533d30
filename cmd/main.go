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

	cancelBookingHandler "github.com/funpark/TicketingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/funpark/TicketingService/internal/api/handlers/create_booking"
	createRuleHandler "github.com/funpark/TicketingService/internal/api/handlers/create_rule"
	deleteRuleHandler "github.com/funpark/TicketingService/internal/api/handlers/delete_rule"
	getBookingHandler "github.com/funpark/TicketingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/funpark/TicketingService/internal/api/handlers/get_user_bookings"
	listRulesHandler "github.com/funpark/TicketingService/internal/api/handlers/list_rules"
	listSlotsHandler "github.com/funpark/TicketingService/internal/api/handlers/list_slots"
	updateRuleStatusHandler "github.com/funpark/TicketingService/internal/api/handlers/update_rule_status"
	"github.com/funpark/TicketingService/internal/api/middleware"
	"github.com/funpark/TicketingService/internal/config"
	"github.com/funpark/TicketingService/internal/infra/cache"
	bookingRepo "github.com/funpark/TicketingService/internal/infra/storage/booking"
	rulesRepo "github.com/funpark/TicketingService/internal/infra/storage/rules"
	catalogServiceClient "github.com/funpark/TicketingService/internal/integrations/catalogservice"
	bookingsService "github.com/funpark/TicketingService/internal/service/bookings"
	pricingService "github.com/funpark/TicketingService/internal/service/pricing"
	rulesService "github.com/funpark/TicketingService/internal/service/rules"
	createBookingUC "github.com/funpark/TicketingService/internal/usecase/create_booking"
	listSlotsUC "github.com/funpark/TicketingService/internal/usecase/list_slots"
	"github.com/funpark/TicketingService/pkg/dbmetrics"
	"github.com/funpark/TicketingService/pkg/logger"
	"github.com/funpark/TicketingService/pkg/metrics"
	"github.com/funpark/TicketingService/pkg/simpletxmanager"
	"github.com/funpark/TicketingService/pkg/txmanager"
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

	log.Info("Starting TicketingService...")
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

	// Инициализируем клиент каталога, при включённом Redis оборачиваем кешем
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)

	var catalog createBookingUC.CatalogClient = catalogClient
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer rdb.Close()

		catalogCache := cache.NewCatalog(rdb, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		catalog = catalogServiceClient.NewCachedClient(catalogClient, catalogCache, log)
		log.Info("Catalog cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}
	log.Info("CatalogService client initialized (url=%s, timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		rulesRepository   *rulesRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		rulesRepository = rulesRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		rulesRepository = rulesRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	pricingSvc := pricingService.NewService(rulesRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	rulesSvc := rulesService.NewService(rulesRepository, txMgr, log)

	// Инициализируем use cases
	listSlotsUseCase := listSlotsUC.NewUseCase(
		catalog,
		bookingRepository,
		rulesRepository,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		catalog,
		bookingRepository,
		pricingSvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	listSlots := listSlotsHandler.NewHandler(listSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	createRule := createRuleHandler.NewHandler(rulesSvc, log)
	listRules := listRulesHandler.NewHandler(rulesSvc, log)
	updateRuleStatus := updateRuleStatusHandler.NewHandler(rulesSvc, log)
	deleteRule := deleteRuleHandler.NewHandler(rulesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Листинг виртуальных слотов с ценами и доступностью
	api.HandleFunc("/attractions/{attractionId}/slots", listSlots.HandleAttraction).Methods(http.MethodGet)
	api.HandleFunc("/combos/{comboId}/slots", listSlots.HandleCombo).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования по идентификатору виртуального слота
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Правила ценообразования ---
	protected.HandleFunc("/rules/price", createRule.HandlePriceRule).Methods(http.MethodPost)
	protected.HandleFunc("/rules/offer", createRule.HandleOfferRule).Methods(http.MethodPost)
	protected.HandleFunc("/rules", listRules.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rules/{ruleId}/status", updateRuleStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/rules/{ruleId}", deleteRule.Handle).Methods(http.MethodDelete)

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
