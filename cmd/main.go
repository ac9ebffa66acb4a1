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

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	getAvailableSlotsHandler "github.com/m04kA/KoiConsult-AvailabilityService/internal/api/handlers/get_available_slots"
	getDateAvailabilityHandler "github.com/m04kA/KoiConsult-AvailabilityService/internal/api/handlers/get_date_availability"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/config"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/domain"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/infra/storage/schedulecache"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/integrations/scheduleservice"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/service/availability"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/service/inflight"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/service/occupancy"
	rosterService "github.com/m04kA/KoiConsult-AvailabilityService/internal/service/roster"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/service/schedules"
	getAvailableSlotsUC "github.com/m04kA/KoiConsult-AvailabilityService/internal/usecase/get_available_slots"
	getDateAvailabilityUC "github.com/m04kA/KoiConsult-AvailabilityService/internal/usecase/get_date_availability"
	"github.com/m04kA/KoiConsult-AvailabilityService/internal/worker/cachewarmer"
	"github.com/m04kA/KoiConsult-AvailabilityService/pkg/logger"
	"github.com/m04kA/KoiConsult-AvailabilityService/pkg/metrics"
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

	log.Info("Starting KoiConsult-AvailabilityService...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Кэш расписаний: memory | postgres | redis
	var (
		cache  schedules.Cache
		pruner cachewarmer.Pruner
	)

	switch cfg.Cache.Driver {
	case config.CacheDriverPostgres:
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
		log.Info("Schedule cache: postgres (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		repo := schedulecache.NewRepository(db)
		cache = repo
		pruner = repo

	case config.CacheDriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		log.Info("Schedule cache: redis (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Cache.TTL)

		cache = schedulecache.NewRedisCache(rdb, time.Duration(cfg.Cache.TTL)*time.Second)

	default:
		log.Info("Schedule cache: in-memory")
		cache = schedulecache.NewMemoryCache()
	}

	// Клиент бэкенда расписаний
	scheduleClient := scheduleservice.NewClient(
		cfg.ScheduleService.URL,
		time.Duration(cfg.ScheduleService.Timeout)*time.Second,
		cfg.ScheduleService.RequestsPerSecond,
		cfg.ScheduleService.Burst,
		log,
	)
	log.Info("Schedule backend client initialized (url=%s, timeout=%ds, rps=%.1f)",
		cfg.ScheduleService.URL, cfg.ScheduleService.Timeout, cfg.ScheduleService.RequestsPerSecond)

	// Политика доступности
	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load booking timezone: %v", err)
	}
	scheduleClient.SetLocation(location)
	policy := domain.AvailabilityPolicy{
		MinLeadDays: cfg.Booking.LeadDays(),
		Location:    location,
	}
	log.Info("Availability policy: min_lead_days=%d, timezone=%s", policy.MinLeadDays, location)

	// Инициализируем сервисы
	scheduleSvc := schedules.NewService(
		schedules.NewDefaultChain(scheduleClient, cfg.Resilience.LoopConcurrency),
		cache,
		metricsCollector,
		log,
		schedules.Config{
			MaxAttempts:    cfg.Resilience.MaxAttempts,
			BaseDelay:      cfg.Resilience.BaseDelay(),
			MaxDelay:       cfg.Resilience.MaxDelay(),
			AttemptTimeout: time.Duration(cfg.Resilience.AttemptTimeout) * time.Second,
		},
	)
	rosterSvc := rosterService.NewService(scheduleClient, log, rosterService.Config{
		MaxAttempts: cfg.Resilience.RosterMaxAttempts,
		BaseDelay:   cfg.Resilience.BaseDelay(),
		TTL:         time.Duration(cfg.Resilience.RosterTTL) * time.Second,
	})
	occupancySvc := occupancy.NewService(log)
	resolver := availability.NewResolver(policy, metricsCollector)
	tracker := inflight.NewTracker()

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		scheduleSvc,
		rosterSvc,
		occupancySvc,
		resolver,
		tracker,
		metricsCollector,
		log,
	)
	getDateAvailabilityUseCase := getDateAvailabilityUC.NewUseCase(
		scheduleSvc,
		rosterSvc,
		occupancySvc,
		resolver,
		tracker,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getDateAvailability := getDateAvailabilityHandler.NewHandler(getDateAvailabilityUseCase, log)

	// Фоновое обновление кэша
	var warmer *cachewarmer.Warmer
	if cfg.Warmer.Enabled {
		warmer = cachewarmer.NewWarmer(
			rosterSvc,
			scheduleSvc,
			pruner,
			time.Duration(cfg.Warmer.MaxCacheAge)*time.Hour,
			time.Duration(cfg.Resilience.AttemptTimeout*cfg.Resilience.MaxAttempts*3)*time.Second,
			log,
		)
		if err := warmer.Start(cfg.Warmer.Schedule); err != nil {
			log.Fatal("Failed to start cache warmer: %v", err)
		}
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Слоты даты (четыре фиксированных слота)
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Доступность дней календаря
	api.HandleFunc("/date-availability", getDateAvailability.Handle).Methods(http.MethodGet)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if warmer != nil {
		select {
		case <-warmer.Stop().Done():
			log.Info("Cache warmer stopped")
		case <-shutdownCtx.Done():
			log.Warn("Cache warmer did not stop in time")
		}
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
