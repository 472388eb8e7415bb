package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/cypherlabdev/cashout-simulator-service/internal/cache"
	"github.com/cypherlabdev/cashout-simulator-service/internal/config"
	httpHandler "github.com/cypherlabdev/cashout-simulator-service/internal/handler/http"
	"github.com/cypherlabdev/cashout-simulator-service/internal/messaging"
	"github.com/cypherlabdev/cashout-simulator-service/internal/metrics"
	"github.com/cypherlabdev/cashout-simulator-service/internal/service"
	"github.com/cypherlabdev/cashout-simulator-service/pkg/scenario"
)

const defaultConfigPath = "config/config.yaml"

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig(configPath())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)
	logger.Info().Msg("starting cashout-simulator-service")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evalCache, err := setupCache(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up evaluation cache")
	}
	defer evalCache.Close()

	// Create scenario engine
	engine := scenario.NewEngine(cfg.Engine.ToEngineParams(), logger)
	logger.Info().
		Int("max_unknown_legs", engine.Params().MaxUnknownLegs).
		Int("max_settlements", engine.Params().MaxSettlements).
		Bool("enumerate_placed_without_each_way", engine.Params().EnumeratePlacedWithoutEachWay).
		Msg("scenario engine initialized")

	// Create evaluation service layer
	evaluationService := service.NewEvaluationService(engine, evalCache, logger)
	logger.Info().Msg("evaluation service initialized")

	metrics.InitRegistry()

	if cfg.Kafka.Enabled {
		producer := messaging.NewKafkaProducer(
			messaging.KafkaProducerConfig{
				Brokers: cfg.Kafka.Brokers,
				Topic:   cfg.Kafka.ResultsTopic,
			},
			logger,
		)
		defer producer.Close()

		consumer := messaging.NewKafkaConsumer(
			messaging.KafkaConsumerConfig{
				Brokers: cfg.Kafka.Brokers,
				Topic:   cfg.Kafka.Topic,
				GroupID: cfg.Kafka.GroupID,
			},
			evaluationService,
			producer,
			logger,
		)

		// Start Kafka consumer in goroutine
		go func() {
			if err := consumer.Start(ctx); err != nil {
				logger.Error().Err(err).Msg("Kafka consumer failed")
			}
		}()
	} else {
		logger.Info().Msg("Kafka disabled, serving HTTP only")
	}

	// Initialize HTTP handler
	evaluationHandler := httpHandler.NewEvaluationHandler(evaluationService, setupLimiter(cfg.RateLimit), logger)
	logger.Info().Msg("HTTP handler initialized")

	// Setup HTTP server routes
	mux := http.NewServeMux()

	// Health and monitoring endpoints
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		readyHandler(w, r, evaluationService)
	})
	mux.Handle("/metrics", metrics.Handler())

	// Register API routes
	evaluationHandler.RegisterRoutes(mux)
	logger.Info().Msg("API routes registered")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start HTTP server in goroutine
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down gracefully...")

	// Cancel context to stop consumer
	cancel()

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	logger.Info().Msg("shutdown complete")
}

// configPath returns CASHOUT_SIMULATOR_CONFIG, or the default path when that file exists
func configPath() string {
	if path := os.Getenv("CASHOUT_SIMULATOR_CONFIG"); path != "" {
		return path
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return defaultConfigPath
	}
	return ""
}

// setupCache picks Redis when enabled, otherwise an in-process cache
func setupCache(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (service.Cache, error) {
	if !cfg.Redis.Enabled {
		logger.Info().Dur("ttl", cfg.MemoryCache.TTL).Msg("using in-process evaluation cache")
		return cache.NewMemoryCache(cache.MemoryCacheConfig{TTL: cfg.MemoryCache.TTL}, logger), nil
	}

	redisCache := cache.NewRedisCache(
		cache.RedisCacheConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		},
		logger,
	)

	// Test Redis connection
	if err := redisCache.Ping(ctx); err != nil {
		redisCache.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")

	return redisCache, nil
}

// setupLimiter returns nil when rate limiting is disabled
func setupLimiter(cfg config.RateLimitConfig) *rate.Limiter {
	if cfg.RequestsPerSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
}

// setupLogger configures the logger based on config
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return log.Logger.With().Str("service", "cashout-simulator").Logger()
}

// healthHandler returns 200 if service is running
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// readyHandler returns 200 if the evaluation cache is reachable
func readyHandler(w http.ResponseWriter, r *http.Request, svc *service.EvaluationService) {
	if err := svc.Ready(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("cache unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
