package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shareit/internal/api"
	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/logging"
	"shareit/internal/metrics"
	"shareit/internal/repository"
	"shareit/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	cache := initSearchCache(cfg, &logger)

	eventBus := events.NewEventBus()
	auditLogger := logger.With().Str("component", "audit").Logger()
	eventBus.SubscribeAll(func(event *events.Event) error {
		auditLogger.Info().
			Str("event_type", event.Type).
			RawJSON("payload", event.Payload).
			Msg("domain event")
		return nil
	})

	aggregator := service.NewAvailabilityAggregator(db)
	guard := service.NewAuthorizationGuard(db, aggregator)

	services := api.Services{
		Users:    service.NewUserService(db, &logger),
		Items:    service.NewItemService(db, guard, cache, eventBus, &logger),
		Bookings: service.NewBookingService(db, eventBus, &logger),
		Comments: service.NewCommentService(db, guard, eventBus, &logger),
		Requests: service.NewRequestService(db, &logger),
	}

	httpServer := api.NewHTTPServer(cfg.HTTP, services, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startMetrics(ctx, cfg, &logger)

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	logger.Info().Int("http_port", cfg.HTTP.Port).Msg("server started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info().Msg("server stopped")
	return nil
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

// initSearchCache builds the search cache: Redis with in-memory failover
// when Redis is configured, plain in-memory otherwise.
func initSearchCache(cfg *config.Config, logger *zerolog.Logger) domain.SearchCache {
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	memory := repository.NewMemorySearchCache(ttl)

	if !cfg.Redis.Enabled {
		return memory
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, using in-memory search cache")
		return memory
	}
	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")

	primary := repository.NewRedisSearchCache(redisClient, ttl)
	retry := repository.RetryPolicy{
		InitialDelay:  5 * time.Second,
		MaxDelay:      2 * time.Minute,
		BackoffFactor: 2,
	}
	return repository.NewFailoverSearchCache(primary, memory, retry, logger)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
		go func() {
			<-ctx.Done()
			ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctxShutdown)
		}()
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()
}
