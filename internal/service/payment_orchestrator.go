package service

import (
	"context"
	"errors"
	"time"

	"payment-orchestrator/internal/breaker"
	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/pkg/apperror"

	"github.com/rs/zerolog"
)

// OrchestratorConfig holds the failover and routing knobs.
type OrchestratorConfig struct {
	// MaxAttempts bounds the failover loop, counting the first attempt.
	MaxAttempts int
	// FailoverEnabled stops after the first adapter outcome when false.
	FailoverEnabled bool
	// TestOverride honors providerPayload.testAdapterName when true.
	TestOverride bool
}

// DefaultOrchestratorConfig returns the default failover settings. The test
// override stays off unless explicitly enabled.
func DefaultOrchestratorConfig() OrchestratorConfig {
	return OrchestratorConfig{
		MaxAttempts:     3,
		FailoverEnabled: true,
		TestOverride:    false,
	}
}

// PaymentOrchestratorImpl implements ports.PaymentOrchestrator.
type PaymentOrchestratorImpl struct {
	registry  ports.AdapterRegistry
	strategy  ports.RoutingStrategy
	monitor   ports.PerformanceMonitor
	breakers  ports.BreakerExecutor
	store     ports.IdempotencyStore
	txRepo    ports.TransactionRepository
	publisher ports.EventPublisher
	cfg       OrchestratorConfig
	log       zerolog.Logger
}

// NewPaymentOrchestrator creates a new PaymentOrchestratorImpl.
func NewPaymentOrchestrator(
	registry ports.AdapterRegistry,
	strategy ports.RoutingStrategy,
	monitor ports.PerformanceMonitor,
	breakers ports.BreakerExecutor,
	store ports.IdempotencyStore,
	txRepo ports.TransactionRepository,
	publisher ports.EventPublisher,
	cfg OrchestratorConfig,
	log zerolog.Logger,
) *PaymentOrchestratorImpl {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &PaymentOrchestratorImpl{
		registry:  registry,
		strategy:  strategy,
		monitor:   monitor,
		breakers:  breakers,
		store:     store,
		txRepo:    txRepo,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
	}
}

// Execute runs a payment end to end: idempotency lookup, routed adapter
// invocation under the breaker, failover across adapters, persistence and
// event publication.
func (s *PaymentOrchestratorImpl) Execute(ctx context.Context, req *domain.PaymentRequest) (*domain.PaymentResult, error) {
	if req.IdempotencyKey == "" {
		return nil, apperror.Validation("idempotencyKey is required")
	}
	if !req.ProviderType.Valid() {
		return nil, apperror.Validation("unknown providerType")
	}
	if !req.Amount.IsPositive() {
		return nil, apperror.Validation("amount must be positive")
	}

	// Idempotency check across both tiers.
	if prior := s.store.GetCachedPayment(ctx, req.IdempotencyKey); prior != nil {
		s.log.Info().Str("key", req.IdempotencyKey).Msg("idempotent replay, returning recorded result")
		return prior, nil
	}

	s.publisher.PublishPaymentEvent(ctx, domain.NewRequestedEvent(req))

	attempted := make(map[string]bool)
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		adapter, ok := s.selectAdapter(req, attempted)
		if !ok {
			break
		}
		name := adapter.AdapterName()
		attempted[name] = true

		// A concurrent request for the same key may have finished while
		// this one was routing; the durable record wins over a new charge.
		if rec, err := s.txRepo.GetByKey(ctx, req.IdempotencyKey); err != nil {
			s.log.Warn().Err(err).Str("key", req.IdempotencyKey).Msg("pre-call durable check failed, degraded mode")
		} else if rec != nil {
			s.log.Info().Str("key", req.IdempotencyKey).Msg("durable record already exists, returning it")
			return rec.Result(), nil
		}

		res, latency, err := s.invoke(ctx, adapter, req)
		if err != nil {
			s.monitor.RecordFailure(name, adapter.ProviderType(), latency)
			if errors.Is(err, breaker.ErrOpenCircuit) {
				s.log.Warn().Str("adapter", name).Msg("circuit open, failing over")
			} else {
				s.log.Warn().Err(err).Str("adapter", name).Int("attempt", attempt).Msg("adapter call failed")
			}
			if !s.cfg.FailoverEnabled {
				break
			}
			continue
		}

		if res.Status.Successful() {
			s.monitor.RecordSuccess(name, adapter.ProviderType(), latency, res.CostCents())
		} else {
			s.monitor.RecordFailure(name, adapter.ProviderType(), latency)
		}

		final := *res
		if res.Status.Successful() {
			final = final.
				WithMeta(domain.MetaAdapterName, name).
				WithMeta(domain.MetaProviderType, string(adapter.ProviderType()))
		}

		// The outcome is committed even if the caller has gone away.
		persistCtx := context.WithoutCancel(ctx)
		stored, perr := s.store.StorePayment(persistCtx, req, &final)
		if perr != nil {
			s.log.Error().Err(perr).Str("key", req.IdempotencyKey).Msg("persist failed after adapter outcome")
		}
		s.publisher.PublishPaymentEvent(persistCtx, domain.NewOutcomeEvent(req, stored))

		s.log.Info().
			Str("key", req.IdempotencyKey).
			Str("adapter", name).
			Str("status", string(stored.Status)).
			Dur("latency", latency).
			Int("attempt", attempt).
			Msg("payment processed")
		return stored, nil
	}

	s.log.Warn().
		Str("key", req.IdempotencyKey).
		Int("attempted", len(attempted)).
		Msg("no payment provider available")
	return nil, apperror.ErrNoPSPAvailable(len(attempted))
}

// invoke runs one breaker-wrapped adapter call and validates the result
// shape. Malformed results are converted to errors so they drive failover.
func (s *PaymentOrchestratorImpl) invoke(ctx context.Context, adapter ports.PSPAdapter, req *domain.PaymentRequest) (*domain.PaymentResult, time.Duration, error) {
	s.monitor.IncActive(adapter.AdapterName())
	defer s.monitor.DecActive(adapter.AdapterName())

	start := time.Now()
	res, err := s.breakers.Execute(adapter.AdapterName(), func() (*domain.PaymentResult, error) {
		return adapter.Execute(ctx, req)
	})
	latency := time.Since(start)
	if err != nil {
		return nil, latency, err
	}
	if !res.WellFormed() || res.IdempotencyKey != req.IdempotencyKey {
		return nil, latency, errors.New("adapter returned malformed result")
	}
	return res, latency, nil
}

// selectAdapter asks the routing strategy for one adapter among those not
// yet attempted, not open-circuited and healthy. The test override picks a
// named adapter out of the same healthy set.
func (s *PaymentOrchestratorImpl) selectAdapter(req *domain.PaymentRequest, attempted map[string]bool) (ports.PSPAdapter, bool) {
	pool := s.registry.ByType(req.ProviderType)

	healthy := make(map[string]ports.PSPAdapter, len(pool))
	candidates := make([]ports.RouteCandidate, 0, len(pool))
	for _, a := range pool {
		name := a.AdapterName()
		if attempted[name] || s.breakers.IsOpen(name) || !a.IsHealthy() {
			continue
		}
		healthy[name] = a
		candidates = append(candidates, ports.RouteCandidate{
			AdapterName:  name,
			ProviderType: a.ProviderType(),
			Stats:        s.monitor.Stats(name),
		})
	}
	if len(candidates) == 0 {
		return nil, false
	}

	if s.cfg.TestOverride {
		if name := req.TestAdapterName(); name != "" {
			if a, ok := healthy[name]; ok {
				return a, true
			}
		}
	}

	selected, ok := s.strategy.Select(req, candidates)
	if !ok {
		return nil, false
	}
	a, ok := healthy[selected.AdapterName]
	return a, ok
}
