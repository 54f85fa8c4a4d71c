package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getRecommendationsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_recommendations"
	listAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/cache/distancecache"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/distancematrix"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/distance"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	getRecommendationsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_recommendations"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

func newServeCmd(configPath *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP сервер",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath, migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "применить миграции перед стартом (postgres)")

	return cmd
}

func runServe(ctx context.Context, configPath string, migrate bool) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from %s", configPath)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	location, err := cfg.Recommendation.Location()
	if err != nil {
		return fmt.Errorf("failed to load timezone: %w", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	store, err := newStorage(ctx, cfg, migrate, metricsCollector, stopMetricsCh, log)
	if err != nil {
		return err
	}
	defer store.close()

	// Стратегии расчета расстояния
	selector, closeCache := newDistanceSelector(ctx, cfg, metricsCollector, log)
	defer closeCache()

	// Инициализируем сервисы и use cases
	appointmentsSvc := appointmentsService.NewService(store.appointments, location, log)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		store.appointments,
		store.workshops,
		store.cars,
		store.txManager,
		log,
	)

	options := getRecommendationsUC.DefaultOptions()
	options.LookaheadDays = cfg.Recommendation.LookaheadDays
	options.SlotDuration = cfg.Recommendation.SlotDuration()
	options.Location = location

	getRecommendationsUseCase := getRecommendationsUC.NewUseCase(
		store.workshops,
		store.cars,
		store.appointments,
		selector,
		options,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, location, log)
	getRecommendations := getRecommendationsHandler.NewHandler(getRecommendationsUseCase, location, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Записи
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Подбор мастерских и слотов
	api.HandleFunc("/recommendations", getRecommendations.Handle).Methods(http.MethodGet)

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

	// Ожидаем сигнал завершения
	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

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

// newDistanceSelector собирает локальную и внешнюю стратегии
// Внешняя стратегия кэшируется в redis, если кэш включен и доступен
func newDistanceSelector(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (*distance.Selector, func()) {
	closeCache := func() {}

	client := distancematrix.NewClient(
		cfg.DistanceMatrix.BaseURL,
		cfg.DistanceMatrix.APIKey,
		cfg.DistanceMatrix.TimeoutDuration(),
		cfg.DistanceMatrix.RequestsPerSecond,
		cfg.DistanceMatrix.Burst,
		log,
	)
	log.Info("Distance matrix client initialized (url=%s, timeout=%ds, api_key_set=%t)",
		cfg.DistanceMatrix.BaseURL, cfg.DistanceMatrix.Timeout, client.HasAPIKey())

	var external distance.Provider = distance.NewExternalProvider(client, cfg.DistanceMatrix.TimeoutDuration())

	switch {
	case cfg.Cache.Enabled && !client.HasAPIKey():
		log.Info("Distance cache skipped: distance matrix api key is not configured")
	case cfg.Cache.Enabled:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()

		if err != nil {
			log.Warn("Redis is unavailable at %s, distance cache disabled: %v", cfg.Cache.Addr, err)
			_ = redisClient.Close()
		} else {
			external = distancecache.NewCachedProvider(external, redisClient, cfg.Cache.TTLDuration(),
				distance.StrategyExternal, m, log)
			closeCache = func() { _ = redisClient.Close() }
			log.Info("Distance cache enabled (addr=%s, ttl=%ds)", cfg.Cache.Addr, cfg.Cache.TTL)
		}
	}

	local := distance.Instrument(distance.NewLocalProvider(), distance.StrategyLocal, m)
	external = distance.Instrument(external, distance.StrategyExternal, m)

	return distance.NewSelector(local, external, client.HasAPIKey()), closeCache
}
