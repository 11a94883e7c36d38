package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	cancelBookingHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/check_availability"
	classifyTimePeriodHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/classify_time_period"
	createBookingHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/create_booking"
	gapRulesHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/gap_rules"
	getBookingHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/get_booking"
	getTimelineHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/get_timeline"
	listBookingsHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/list_bookings"
	pricingRulesHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/pricing_rules"
	quotePriceHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/quote_price"
	specialAreasHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/special_areas"
	timePeriodsHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/time_periods"
	updateBookingStatusHandler "github.com/m04kA/SMC-CleaningService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-CleaningService/internal/api/middleware"
	"github.com/m04kA/SMC-CleaningService/internal/config"
	"github.com/m04kA/SMC-CleaningService/internal/engine/timeline"
	bookingRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-CleaningService/internal/integrations/configbus"
	bookingsService "github.com/m04kA/SMC-CleaningService/internal/service/bookings"
	settingsService "github.com/m04kA/SMC-CleaningService/internal/service/settings"
	snapshotService "github.com/m04kA/SMC-CleaningService/internal/service/snapshot"
	checkAvailabilityUC "github.com/m04kA/SMC-CleaningService/internal/usecase/check_availability"
	classifyTimePeriodUC "github.com/m04kA/SMC-CleaningService/internal/usecase/classify_time_period"
	createBookingUC "github.com/m04kA/SMC-CleaningService/internal/usecase/create_booking"
	getTimelineUC "github.com/m04kA/SMC-CleaningService/internal/usecase/get_timeline"
	quotePriceUC "github.com/m04kA/SMC-CleaningService/internal/usecase/quote_price"
	"github.com/m04kA/SMC-CleaningService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningService/pkg/logger"
	"github.com/m04kA/SMC-CleaningService/pkg/metrics"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
	"github.com/m04kA/SMC-CleaningService/pkg/txmanager"
)

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*configPath)
		},
	}
}

func runServe(configPath string) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-CleaningService...")
	log.Info("Configuration loaded from %s", configPath)

	loc, err := cfg.Scheduling.Location()
	if err != nil {
		return err
	}

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		recorder         = metrics.Nop()
	)
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		recorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обертка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)

	// Снапшот правил
	snapshots := snapshotService.NewService(
		settingsRepository,
		txMgr,
		snapshotService.Options{
			TTL:               cfg.Scheduling.SnapshotTTL(),
			Location:          loc,
			DefaultGapMinutes: cfg.Scheduling.DefaultGapMinutes,
		},
		recorder,
		log,
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Канал инвалидации конфигурации между экземплярами (если Redis включен)
	var publisher settingsService.Publisher
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		redisCtx, cancelRedis := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(redisCtx).Err(); err != nil {
			// Сервис работает и без Redis, снапшот обновится по TTL
			log.Warn("Redis is not reachable at %s: %v", cfg.Redis.Addr, err)
		}
		cancelRedis()

		bus := configbus.NewClient(rdb, cfg.Redis.Channel, log)
		publisher = bus

		go func() {
			err := bus.Subscribe(ctx, func(configbus.Message) {
				snapshots.Invalidate()
			})
			if err != nil {
				// Без подписки снапшот обновится по TTL
				log.Warn("ConfigBus subscription stopped: %v", err)
			}
		}()
		log.Info("Config invalidation channel enabled (redis=%s, channel=%s, source=%s)",
			cfg.Redis.Addr, cfg.Redis.Channel, bus.Source())
	}

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)
	settingsSvc := settingsService.NewService(settingsRepository, txMgr, snapshots, publisher, recorder, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		snapshots,
		txMgr,
		createBookingUC.Options{AllowUnclassified: cfg.Scheduling.AllowUnclassified},
		recorder,
		log,
	)
	quotePriceUseCase := quotePriceUC.NewUseCase(
		snapshots,
		quotePriceUC.Options{AllowUnclassified: cfg.Scheduling.AllowUnclassified},
		recorder,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(bookingRepository, snapshots, log)
	getTimelineUseCase := getTimelineUC.NewUseCase(
		bookingRepository,
		timeline.Window{
			Start: types.MustTimeString(cfg.Scheduling.TimelineStart),
			End:   types.MustTimeString(cfg.Scheduling.TimelineEnd),
		},
		log,
	)
	classifyTimePeriodUseCase := classifyTimePeriodUC.NewUseCase(snapshots, log)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getTimeline := getTimelineHandler.NewHandler(getTimelineUseCase, log)
	classifyTimePeriod := classifyTimePeriodHandler.NewHandler(classifyTimePeriodUseCase, log)
	pricingRules := pricingRulesHandler.NewHandler(settingsSvc, log)
	specialAreas := specialAreasHandler.NewHandler(settingsSvc, log)
	timePeriods := timePeriodsHandler.NewHandler(settingsSvc, log)
	gapRules := gapRulesHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	if cfg.RateLimit.Enabled {
		proxies, err := cfg.RateLimit.TrustedProxyPrefixes()
		if err != nil {
			return err
		}
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, proxies, log)
		api.Use(limiter.Middleware())
		log.Info("Rate limit enabled: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Расчеты и расписание ---
	api.HandleFunc("/pricing/quote", quotePrice.Handle).Methods(http.MethodPost)
	api.HandleFunc("/cleaners/{cleanerId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/timeline", getTimeline.Handle).Methods(http.MethodGet)
	api.HandleFunc("/time-periods/classify", classifyTimePeriod.Handle).Methods(http.MethodGet)

	// --- Настройки ---
	settings := api.PathPrefix("/settings").Subrouter()
	settings.HandleFunc("/channels/{channelId}/pricing-rules", pricingRules.ListChannelRules).Methods(http.MethodGet)
	settings.HandleFunc("/channels/{channelId}/pricing-rules", pricingRules.SupersedeChannelRule).Methods(http.MethodPost)
	settings.HandleFunc("/pricing-rules/{ruleId}/deactivate", pricingRules.DeactivateChannelRule).Methods(http.MethodPatch)
	settings.HandleFunc("/areas", specialAreas.List).Methods(http.MethodGet)
	settings.HandleFunc("/areas", specialAreas.Create).Methods(http.MethodPost)
	settings.HandleFunc("/areas/{areaId}", specialAreas.Update).Methods(http.MethodPut)
	settings.HandleFunc("/areas/{areaCode}/pricing-rules", pricingRules.ListAreaRules).Methods(http.MethodGet)
	settings.HandleFunc("/areas/{areaCode}/pricing-rules", pricingRules.SupersedeAreaRule).Methods(http.MethodPost)
	settings.HandleFunc("/time-periods", timePeriods.List).Methods(http.MethodGet)
	settings.HandleFunc("/time-periods", timePeriods.Create).Methods(http.MethodPost)
	settings.HandleFunc("/time-periods/{periodId}", timePeriods.Update).Methods(http.MethodPut)
	settings.HandleFunc("/gap-rules", gapRules.List).Methods(http.MethodGet)
	settings.HandleFunc("/gap-rules", gapRules.Upsert).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения или падение сервера
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
