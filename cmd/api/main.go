package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payment-orchestrator/config"
	"payment-orchestrator/internal/adapter/eventlog/kafka"
	"payment-orchestrator/internal/adapter/eventlog/memory"
	httpHandler "payment-orchestrator/internal/adapter/http/handler"
	"payment-orchestrator/internal/adapter/psp"
	pgStorage "payment-orchestrator/internal/adapter/storage/postgres"
	redisStorage "payment-orchestrator/internal/adapter/storage/redis"
	"payment-orchestrator/internal/breaker"
	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/internal/observability"
	"payment-orchestrator/internal/risk"
	"payment-orchestrator/internal/routing"
	"payment-orchestrator/internal/service"
	"payment-orchestrator/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Payment Orchestrator")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	txRepo := pgStorage.NewTransactionRepo(pool)
	refundRepo := pgStorage.NewRefundRepo(pool)
	eventRepo := pgStorage.NewEventRepo(pool)
	alertRepo := pgStorage.NewAlertRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	velocityStore := redisStorage.NewVelocityStore(rdb)

	// Prometheus registry and metric set
	promRegistry := prometheus.NewRegistry()
	metrics := observability.New(promRegistry)

	// Simulated PSP fleet and adapter registry
	registry, err := psp.NewRegistry(defaultFleet(log)...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build adapter registry")
	}

	// Routing: performance window, strategy, breakers
	monitor := observability.NewInstrumentedMonitor(routing.NewPerfRegistry(0), metrics)
	strategy, err := routing.NewStrategy(cfg.Routing.Strategy)
	if err != nil {
		log.Fatal().Err(err).Msg("Unknown routing strategy")
	}
	breakers := breaker.NewManager(breakerConfig(cfg), log, observability.BreakerStateHook(metrics))

	// Two-tier idempotency store (Redis cache over the durable table)
	idemStore := service.NewIdempotencyStore(idempotencyCache, txRepo, cfg.Idempotency.TTL, log)

	// Risk side: aggregation windows, scoring engine, alert sinks
	aggregator := risk.NewAggregator()

	var engine *risk.Engine
	if cfg.Risk.Engine.Enabled {
		var model risk.ModelScorer
		if cfg.Risk.ML.Enabled && cfg.Risk.ML.ServiceURL != "" {
			timeout := time.Duration(cfg.Risk.ML.TimeoutMs) * time.Millisecond
			model = risk.NewModelClient(cfg.Risk.ML.ServiceURL, timeout, nil, log)
			log.Info().Str("url", cfg.Risk.ML.ServiceURL).Msg("Model scoring enabled")
		}
		engine = risk.NewEngine(risk.EngineConfig{
			FailureRate:  cfg.Risk.Thresholds.HighFailureRate,
			Velocity1Min: cfg.Risk.Thresholds.Velocity1Min,
			AlertScore:   cfg.Risk.Thresholds.AlertScore,
		}, model, log)
	} else {
		log.Warn().Msg("Risk engine disabled, events are recorded but not scored")
	}

	alertStore := observability.NewInstrumentedAlertStore(risk.NewRingAlertStore(cfg.Risk.AlertBuffer), metrics)
	dispatcher := risk.NewWebhookDispatcher(risk.DispatcherConfig{
		Timeout:     cfg.Webhook.Timeout,
		MaxAttempts: cfg.Webhook.MaxAttempts,
	}, nil, log)
	defer dispatcher.Close()

	// Event log: Kafka when enabled, otherwise the in-process bus. The alert
	// topic only exists in Kafka mode; the bus routes alerts nowhere because
	// the pipeline already feeds the in-memory ring and the dispatcher.
	var publisher ports.EventPublisher
	if cfg.Kafka.Enabled {
		kafkaPublisher, err := kafka.NewPublisher(cfg.Kafka, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to start Kafka producer")
		}
		defer kafkaPublisher.Close()

		pipeline := risk.NewPipeline(eventRepo, aggregator, engine, alertStore, alertRepo, dispatcher, kafkaPublisher, log)
		consumer, err := kafka.NewConsumer(cfg.Kafka, observability.NewInstrumentedHandler(pipeline, metrics), log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to join Kafka consumer group")
		}
		if err := consumer.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start Kafka consumer")
		}
		defer consumer.Close()

		publisher = kafkaPublisher
	} else {
		pipeline := risk.NewPipeline(eventRepo, aggregator, engine, alertStore, alertRepo, dispatcher, nil, log)
		busCfg := memory.DefaultConfig()
		busCfg.Partitions = cfg.Kafka.Workers
		bus := memory.NewBus(observability.NewInstrumentedHandler(pipeline, metrics), busCfg, log)
		if err := bus.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start event bus")
		}
		defer bus.Close()

		publisher = bus
	}

	// Orchestrators
	paymentSvc := service.NewPaymentOrchestrator(
		registry,
		strategy,
		monitor,
		breakers,
		idemStore,
		txRepo,
		publisher,
		service.OrchestratorConfig{
			MaxAttempts:     cfg.Routing.Failover.MaxAttempts,
			FailoverEnabled: cfg.Routing.Failover.Enabled,
			TestOverride:    cfg.Routing.TestOverride,
		},
		log,
	)
	refundSvc := service.NewRefundOrchestrator(registry, txRepo, refundRepo, transactor, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Load OpenAPI spec for Swagger UI
	if specBytes, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Payments:       paymentSvc,
		Refunds:        refundSvc,
		Alerts:         alertStore,
		Webhooks:       dispatcher,
		Velocity:       velocityStore,
		VelocityCfg:    cfg.Velocity,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Metrics:        metrics,
		Registry:       promRegistry,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown. The deferred closes run afterwards in reverse
	// order: event transport drains first, then the webhook dispatcher,
	// then the stores.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// breakerConfig maps the file configuration onto the breaker manager's knobs.
func breakerConfig(cfg *config.Config) breaker.Config {
	return breaker.Config{
		Enabled:              cfg.Breaker.Enabled,
		MaxRequests:          cfg.Breaker.HalfOpenMaxCalls,
		Interval:             cfg.Breaker.Interval,
		Timeout:              cfg.Breaker.OpenDuration,
		MinCalls:             cfg.Breaker.MinCalls,
		FailureRateThreshold: cfg.Breaker.FailureRateThreshold,
		RetryMaxAttempts:     cfg.Retry.MaxAttempts,
		RetryWaitDuration:    cfg.Retry.WaitDuration,
	}
}

// defaultFleet builds the simulated provider fleet. Latency and cost profiles
// are rough stand-ins for real provider behavior; the "mock" adapter is the
// zero-noise target for routed test traffic.
func defaultFleet(log zerolog.Logger) []ports.PSPAdapter {
	return []ports.PSPAdapter{
		psp.NewSimulated("stripe-sim", domain.ProviderTypeCard, psp.Profile{
			BaseLatency:     40 * time.Millisecond,
			Jitter:          60 * time.Millisecond,
			ErrorRate:       0.02,
			DeclineRate:     0.05,
			CostCents:       30,
			SupportsRefunds: true,
		}, log),
		psp.NewSimulated("adyen-sim", domain.ProviderTypeCard, psp.Profile{
			BaseLatency:     55 * time.Millisecond,
			Jitter:          40 * time.Millisecond,
			ErrorRate:       0.03,
			DeclineRate:     0.04,
			CostCents:       25,
			SupportsRefunds: true,
		}, log),
		psp.NewSimulated("paypal-sim", domain.ProviderTypeWallet, psp.Profile{
			BaseLatency:     80 * time.Millisecond,
			Jitter:          80 * time.Millisecond,
			ErrorRate:       0.04,
			DeclineRate:     0.03,
			CostCents:       35,
			SupportsRefunds: true,
		}, log),
		psp.NewSimulated("klarna-sim", domain.ProviderTypeBNPL, psp.Profile{
			BaseLatency:     120 * time.Millisecond,
			Jitter:          100 * time.Millisecond,
			ErrorRate:       0.05,
			DeclineRate:     0.08,
			CostCents:       45,
			SupportsRefunds: true,
		}, log),
		psp.NewSimulated("ach-sim", domain.ProviderTypeBankTransfer, psp.Profile{
			BaseLatency:     150 * time.Millisecond,
			Jitter:          150 * time.Millisecond,
			ErrorRate:       0.03,
			DeclineRate:     0.02,
			CostCents:       10,
			SupportsRefunds: false,
		}, log),
		psp.NewSimulated("mock", domain.ProviderTypeMock, psp.Profile{
			CostCents:       0,
			SupportsRefunds: true,
		}, log),
	}
}
