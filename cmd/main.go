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

	createEnquiryHandler "github.com/m04kA/SMC-MillService/internal/api/handlers/create_enquiry"
	createHolidayHandler "github.com/m04kA/SMC-MillService/internal/api/handlers/create_holiday"
	deleteHolidayHandler "github.com/m04kA/SMC-MillService/internal/api/handlers/delete_holiday"
	getAvailableSlotsHandler "github.com/m04kA/SMC-MillService/internal/api/handlers/get_available_slots"
	getEnquiryHandler "github.com/m04kA/SMC-MillService/internal/api/handlers/get_enquiry"
	getEnquiryHistoryHandler "github.com/m04kA/SMC-MillService/internal/api/handlers/get_enquiry_history"
	getEnquiryImageHandler "github.com/m04kA/SMC-MillService/internal/api/handlers/get_enquiry_image"
	listEnquiriesHandler "github.com/m04kA/SMC-MillService/internal/api/handlers/list_enquiries"
	listHolidaysHandler "github.com/m04kA/SMC-MillService/internal/api/handlers/list_holidays"
	transitionEnquiryHandler "github.com/m04kA/SMC-MillService/internal/api/handlers/transition_enquiry"
	"github.com/m04kA/SMC-MillService/internal/api/middleware"
	"github.com/m04kA/SMC-MillService/internal/config"
	"github.com/m04kA/SMC-MillService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MillService/internal/infra/storage/booking"
	enquiryRepo "github.com/m04kA/SMC-MillService/internal/infra/storage/enquiry"
	holidayRepo "github.com/m04kA/SMC-MillService/internal/infra/storage/holiday"
	catalogClient "github.com/m04kA/SMC-MillService/internal/integrations/catalog"
	enquiriesService "github.com/m04kA/SMC-MillService/internal/service/enquiries"
	holidaysService "github.com/m04kA/SMC-MillService/internal/service/holidays"
	ledgerService "github.com/m04kA/SMC-MillService/internal/service/ledger"
	createEnquiryUC "github.com/m04kA/SMC-MillService/internal/usecase/create_enquiry"
	getAvailableSlotsUC "github.com/m04kA/SMC-MillService/internal/usecase/get_available_slots"
	transitionEnquiryUC "github.com/m04kA/SMC-MillService/internal/usecase/transition_enquiry"
	"github.com/m04kA/SMC-MillService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MillService/pkg/logger"
	"github.com/m04kA/SMC-MillService/pkg/metrics"
	"github.com/m04kA/SMC-MillService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(config.DefaultPath)
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

	log.Info("Starting SMC-MillService...")

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Failed to load timezone: %v", err)
	}
	staticHolidays, err := cfg.StaticHolidays()
	if err != nil {
		log.Fatal("Failed to load holidays: %v", err)
	}
	hours := cfg.Business.ToBusinessHours()
	policy := cfg.Business.ToPolicy()
	log.Info("Business hours %s-%s, slot=%dmin, timezone=%s, static holidays=%d",
		hours.Open, hours.Close, hours.SlotMinutes, location, len(staticHolidays))

	// Инициализируем метрики (если включены)
	// nil-коллектор ничего не пишет
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

	// Без коллектора обёртка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	enquiryRepository := enquiryRepo.NewRepository(wrappedDB)
	holidayRepository := holidayRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Интеграция со справочником пород; без url ярлыки не подставляются
	var catalog createEnquiryUC.CatalogClient
	if cfg.Catalog.URL != "" {
		catalog = catalogClient.NewClient(cfg.Catalog.URL, time.Duration(cfg.Catalog.Timeout)*time.Second, log)
		log.Info("Catalog client initialized (url=%s timeout=%ds)", cfg.Catalog.URL, cfg.Catalog.Timeout)
	} else {
		log.Warn("Catalog url is not set, wood type labels are disabled")
	}

	// Инициализируем сервисы
	calendar := holidaysService.NewService(staticHolidays, holidayRepository, location, log)
	ledger := ledgerService.NewService(bookingRepository, txMgr, metricsCollector, log)
	enquirySvc := enquiriesService.NewService(enquiryRepository, txMgr, location, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		calendar,
		ledger,
		hours,
		policy.MaxAdvanceDays,
		log,
	)
	createEnquiryUseCase := createEnquiryUC.NewUseCase(
		enquiryRepository,
		ledger,
		calendar,
		catalog,
		txMgr,
		hours,
		policy,
		log,
	)
	transitionEnquiryUseCase := transitionEnquiryUC.NewUseCase(
		enquiryRepository,
		ledger,
		calendar,
		txMgr,
		metricsCollector,
		hours,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createEnquiry := createEnquiryHandler.NewHandler(createEnquiryUseCase, cfg.Business.MaxBodyBytes(), log)
	getEnquiry := getEnquiryHandler.NewHandler(enquirySvc, log)
	listEnquiries := listEnquiriesHandler.NewHandler(enquirySvc, log)
	getEnquiryHistory := getEnquiryHistoryHandler.NewHandler(enquirySvc, log)
	getEnquiryImage := getEnquiryImageHandler.NewHandler(enquirySvc, log)
	cancelEnquiry := transitionEnquiryHandler.NewHandler(transitionEnquiryUseCase, string(domain.ActionCancel), log)
	acceptProposal := transitionEnquiryHandler.NewHandler(transitionEnquiryUseCase, string(domain.ActionAcceptProposal), log)
	adminTransition := transitionEnquiryHandler.NewHandler(transitionEnquiryUseCase, "", log)
	listHolidays := listHolidaysHandler.NewHandler(calendar, log)
	createHoliday := createHolidayHandler.NewHandler(calendar, log)
	deleteHoliday := deleteHolidayHandler.NewHandler(calendar, log)

	enquiryLimiter := middleware.NewRateLimiter(cfg.RateLimit.EnquiriesPerMinute, cfg.RateLimit.Burst)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/services").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты на дату: ?duration=&time=
	api.HandleFunc("/schedule/available/{date}", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Правила выходных дней
	api.HandleFunc("/holidays", listHolidays.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	// admin регистрируется раньше, чтобы /enquiries/{id} не перехватил путь
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth, middleware.RequireStaff)

	admin.HandleFunc("/enquiries", listEnquiries.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/enquiries/{id}/{action}", adminTransition.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/holidays", createHoliday.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/holidays/{id}", deleteHoliday.Handle).Methods(http.MethodDelete)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заявки клиента ---
	protected.Handle("/enquiries", enquiryLimiter.Middleware(http.HandlerFunc(createEnquiry.Handle))).
		Methods(http.MethodPost)
	protected.HandleFunc("/enquiries", listEnquiries.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/enquiries/{id}", getEnquiry.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/enquiries/{id}/history", getEnquiryHistory.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/enquiries/{id}/images/{imageId}", getEnquiryImage.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/enquiries/{id}/cancel", cancelEnquiry.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/enquiries/{id}/accept-proposal", acceptProposal.Handle).Methods(http.MethodPut)

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
	close(stopMetricsCh)

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
