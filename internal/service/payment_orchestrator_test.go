package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"payment-orchestrator/internal/breaker"
	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type orchestratorTestDeps struct {
	svc       *PaymentOrchestratorImpl
	registry  *mocks.MockAdapterRegistry
	strategy  *mocks.MockRoutingStrategy
	monitor   *mocks.MockPerformanceMonitor
	breakers  *mocks.MockBreakerExecutor
	store     *mocks.MockIdempotencyStore
	txRepo    *mocks.MockTransactionRepository
	publisher *mocks.MockEventPublisher
	events    []*domain.PaymentEvent
	ctrl      *gomock.Controller
}

func setupPaymentOrchestrator(t *testing.T, cfg OrchestratorConfig) *orchestratorTestDeps {
	ctrl := gomock.NewController(t)
	d := &orchestratorTestDeps{
		registry:  mocks.NewMockAdapterRegistry(ctrl),
		strategy:  mocks.NewMockRoutingStrategy(ctrl),
		monitor:   mocks.NewMockPerformanceMonitor(ctrl),
		breakers:  mocks.NewMockBreakerExecutor(ctrl),
		store:     mocks.NewMockIdempotencyStore(ctrl),
		txRepo:    mocks.NewMockTransactionRepository(ctrl),
		publisher: mocks.NewMockEventPublisher(ctrl),
		ctrl:      ctrl,
	}
	d.svc = NewPaymentOrchestrator(
		d.registry, d.strategy, d.monitor, d.breakers,
		d.store, d.txRepo, d.publisher, cfg, zerolog.Nop(),
	)
	return d
}

// capturePublishes records every published payment event for assertions.
func (d *orchestratorTestDeps) capturePublishes(times int) {
	d.publisher.EXPECT().PublishPaymentEvent(gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, e *domain.PaymentEvent) {
			d.events = append(d.events, e)
		}).Times(times)
}

func newMockAdapter(ctrl *gomock.Controller, name string, providerType domain.ProviderType, healthy bool) *mocks.MockPSPAdapter {
	a := mocks.NewMockPSPAdapter(ctrl)
	a.EXPECT().AdapterName().Return(name).AnyTimes()
	a.EXPECT().ProviderType().Return(providerType).AnyTimes()
	a.EXPECT().IsHealthy().Return(healthy).AnyTimes()
	return a
}

func orchestratorRequest(key string) *domain.PaymentRequest {
	return &domain.PaymentRequest{
		IdempotencyKey:    key,
		ProviderType:      domain.ProviderTypeCard,
		Amount:            decimal.RequireFromString("100.00"),
		CurrencyCode:      "USD",
		MerchantReference: "merchant-1",
	}
}

func adapterResult(key string, status domain.PaymentStatus) *domain.PaymentResult {
	res := &domain.PaymentResult{
		IdempotencyKey: key,
		Status:         status,
		Amount:         decimal.RequireFromString("100.00"),
		CurrencyCode:   "USD",
		Timestamp:      time.Now().UTC(),
		Metadata:       map[string]string{domain.MetaCostCents: "30"},
	}
	if status.Successful() {
		res.ProviderTransactionID = "txn-1"
	} else {
		res.FailureCode = "card_declined"
	}
	return res
}

// passthroughBreaker wires Execute to invoke the wrapped call directly.
func (d *orchestratorTestDeps) passthroughBreaker(name string) {
	d.breakers.EXPECT().Execute(name, gomock.Any()).DoAndReturn(
		func(_ string, call func() (*domain.PaymentResult, error)) (*domain.PaymentResult, error) {
			return call()
		})
}

// selectFirst wires the strategy to pick the first candidate.
func (d *orchestratorTestDeps) selectFirst() *[][]string {
	var seen [][]string
	d.strategy.EXPECT().Select(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ *domain.PaymentRequest, candidates []ports.RouteCandidate) (ports.RouteCandidate, bool) {
			names := make([]string, len(candidates))
			for i, c := range candidates {
				names[i] = c.AdapterName
			}
			seen = append(seen, names)
			return candidates[0], true
		}).AnyTimes()
	return &seen
}

// echoStore wires StorePayment to return its input unchanged.
func (d *orchestratorTestDeps) echoStore(req *domain.PaymentRequest) {
	d.store.EXPECT().StorePayment(gomock.Any(), req, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *domain.PaymentRequest, res *domain.PaymentResult) (*domain.PaymentResult, error) {
			return res, nil
		})
}

// ==================== Execute Tests ====================

func TestPaymentOrchestrator_Execute_SuccessFirstAttempt(t *testing.T) {
	d := setupPaymentOrchestrator(t, DefaultOrchestratorConfig())
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := orchestratorRequest("k1")
	stripe := newMockAdapter(d.ctrl, "stripe-card", domain.ProviderTypeCard, true)

	d.store.EXPECT().GetCachedPayment(ctx, "k1").Return(nil)
	d.capturePublishes(2)
	d.registry.EXPECT().ByType(domain.ProviderTypeCard).Return([]ports.PSPAdapter{stripe}).AnyTimes()
	d.breakers.EXPECT().IsOpen("stripe-card").Return(false).AnyTimes()
	d.monitor.EXPECT().Stats("stripe-card").Return(ports.AdapterStats{}).AnyTimes()
	d.selectFirst()
	d.txRepo.EXPECT().GetByKey(ctx, "k1").Return(nil, nil)
	d.monitor.EXPECT().IncActive("stripe-card")
	d.monitor.EXPECT().DecActive("stripe-card")
	stripe.EXPECT().Execute(ctx, req).Return(adapterResult("k1", domain.PaymentStatusSuccess), nil)
	d.passthroughBreaker("stripe-card")
	d.monitor.EXPECT().RecordSuccess("stripe-card", domain.ProviderTypeCard, gomock.Any(), int64(30))
	d.echoStore(req)

	res, err := d.svc.Execute(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, domain.PaymentStatusSuccess, res.Status)
	assert.Equal(t, "stripe-card", res.Metadata[domain.MetaAdapterName])
	assert.Equal(t, "CARD", res.Metadata[domain.MetaProviderType])

	require.Len(t, d.events, 2)
	assert.Equal(t, domain.EventTypePaymentRequested, d.events[0].EventType)
	assert.Equal(t, domain.EventTypePaymentCompleted, d.events[1].EventType)
	assert.Equal(t, "k1", d.events[1].IdempotencyKey)
}

func TestPaymentOrchestrator_Execute_IdempotentReplay(t *testing.T) {
	d := setupPaymentOrchestrator(t, DefaultOrchestratorConfig())
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := orchestratorRequest("k2")
	prior := adapterResult("k2", domain.PaymentStatusSuccess)

	d.store.EXPECT().GetCachedPayment(ctx, "k2").Return(prior)

	res, err := d.svc.Execute(ctx, req)

	require.NoError(t, err)
	assert.Same(t, prior, res)
}

func TestPaymentOrchestrator_Execute_Validation(t *testing.T) {
	d := setupPaymentOrchestrator(t, DefaultOrchestratorConfig())
	defer d.ctrl.Finish()

	t.Run("missing key", func(t *testing.T) {
		req := orchestratorRequest("")
		_, err := d.svc.Execute(context.Background(), req)
		assertAppError(t, err, "VALIDATION_FAILED")
	})

	t.Run("unknown provider type", func(t *testing.T) {
		req := orchestratorRequest("k3")
		req.ProviderType = "CRYPTO"
		_, err := d.svc.Execute(context.Background(), req)
		assertAppError(t, err, "VALIDATION_FAILED")
	})

	t.Run("non-positive amount", func(t *testing.T) {
		req := orchestratorRequest("k3")
		req.Amount = decimal.Zero
		_, err := d.svc.Execute(context.Background(), req)
		assertAppError(t, err, "VALIDATION_FAILED")
	})
}

func TestPaymentOrchestrator_Execute_DurableRecordWinsOverNewCall(t *testing.T) {
	d := setupPaymentOrchestrator(t, DefaultOrchestratorConfig())
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := orchestratorRequest("k4")
	stripe := newMockAdapter(d.ctrl, "stripe-card", domain.ProviderTypeCard, true)
	rec := domain.NewPaymentTransaction(req, adapterResult("k4", domain.PaymentStatusSuccess))

	d.store.EXPECT().GetCachedPayment(ctx, "k4").Return(nil)
	d.capturePublishes(1)
	d.registry.EXPECT().ByType(domain.ProviderTypeCard).Return([]ports.PSPAdapter{stripe}).AnyTimes()
	d.breakers.EXPECT().IsOpen("stripe-card").Return(false).AnyTimes()
	d.monitor.EXPECT().Stats("stripe-card").Return(ports.AdapterStats{}).AnyTimes()
	d.selectFirst()
	// Another thread completed the key between routing and invocation.
	d.txRepo.EXPECT().GetByKey(ctx, "k4").Return(rec, nil)

	res, err := d.svc.Execute(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "k4", res.IdempotencyKey)
	assert.Equal(t, domain.EventTypePaymentRequested, d.events[0].EventType)
}

func TestPaymentOrchestrator_Execute_FailoverAfterTransportError(t *testing.T) {
	d := setupPaymentOrchestrator(t, DefaultOrchestratorConfig())
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := orchestratorRequest("k5")
	stripe := newMockAdapter(d.ctrl, "stripe-card", domain.ProviderTypeCard, true)
	adyen := newMockAdapter(d.ctrl, "adyen-card", domain.ProviderTypeCard, true)

	d.store.EXPECT().GetCachedPayment(ctx, "k5").Return(nil)
	d.capturePublishes(2)
	d.registry.EXPECT().ByType(domain.ProviderTypeCard).Return([]ports.PSPAdapter{stripe, adyen}).AnyTimes()
	d.breakers.EXPECT().IsOpen(gomock.Any()).Return(false).AnyTimes()
	d.monitor.EXPECT().Stats(gomock.Any()).Return(ports.AdapterStats{}).AnyTimes()
	seen := d.selectFirst()
	d.txRepo.EXPECT().GetByKey(ctx, "k5").Return(nil, nil).Times(2)

	d.monitor.EXPECT().IncActive("stripe-card")
	d.monitor.EXPECT().DecActive("stripe-card")
	stripe.EXPECT().Execute(ctx, req).Return(nil, errors.New("provider unreachable"))
	d.passthroughBreaker("stripe-card")
	d.monitor.EXPECT().RecordFailure("stripe-card", domain.ProviderTypeCard, gomock.Any())

	d.monitor.EXPECT().IncActive("adyen-card")
	d.monitor.EXPECT().DecActive("adyen-card")
	adyen.EXPECT().Execute(ctx, req).Return(adapterResult("k5", domain.PaymentStatusSuccess), nil)
	d.passthroughBreaker("adyen-card")
	d.monitor.EXPECT().RecordSuccess("adyen-card", domain.ProviderTypeCard, gomock.Any(), int64(30))
	d.echoStore(req)

	res, err := d.svc.Execute(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "adyen-card", res.Metadata[domain.MetaAdapterName])
	// The second selection no longer offers the attempted adapter.
	require.Len(t, *seen, 2)
	assert.Equal(t, []string{"stripe-card", "adyen-card"}, (*seen)[0])
	assert.Equal(t, []string{"adyen-card"}, (*seen)[1])
}

func TestPaymentOrchestrator_Execute_OpenBreakerExcludedFromRouting(t *testing.T) {
	d := setupPaymentOrchestrator(t, DefaultOrchestratorConfig())
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := orchestratorRequest("k6")
	stripe := newMockAdapter(d.ctrl, "stripe-card", domain.ProviderTypeCard, true)
	adyen := newMockAdapter(d.ctrl, "adyen-card", domain.ProviderTypeCard, true)

	d.store.EXPECT().GetCachedPayment(ctx, "k6").Return(nil)
	d.capturePublishes(2)
	d.registry.EXPECT().ByType(domain.ProviderTypeCard).Return([]ports.PSPAdapter{stripe, adyen}).AnyTimes()
	d.breakers.EXPECT().IsOpen("stripe-card").Return(true).AnyTimes()
	d.breakers.EXPECT().IsOpen("adyen-card").Return(false).AnyTimes()
	d.monitor.EXPECT().Stats("adyen-card").Return(ports.AdapterStats{}).AnyTimes()
	seen := d.selectFirst()
	d.txRepo.EXPECT().GetByKey(ctx, "k6").Return(nil, nil)

	d.monitor.EXPECT().IncActive("adyen-card")
	d.monitor.EXPECT().DecActive("adyen-card")
	adyen.EXPECT().Execute(ctx, req).Return(adapterResult("k6", domain.PaymentStatusSuccess), nil)
	d.passthroughBreaker("adyen-card")
	d.monitor.EXPECT().RecordSuccess("adyen-card", domain.ProviderTypeCard, gomock.Any(), int64(30))
	d.echoStore(req)

	res, err := d.svc.Execute(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "adyen-card", res.Metadata[domain.MetaAdapterName])
	assert.Equal(t, []string{"adyen-card"}, (*seen)[0])
}

func TestPaymentOrchestrator_Execute_OpenCircuitSignalTriggersFailover(t *testing.T) {
	d := setupPaymentOrchestrator(t, DefaultOrchestratorConfig())
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := orchestratorRequest("k7")
	stripe := newMockAdapter(d.ctrl, "stripe-card", domain.ProviderTypeCard, true)
	adyen := newMockAdapter(d.ctrl, "adyen-card", domain.ProviderTypeCard, true)

	d.store.EXPECT().GetCachedPayment(ctx, "k7").Return(nil)
	d.capturePublishes(2)
	d.registry.EXPECT().ByType(domain.ProviderTypeCard).Return([]ports.PSPAdapter{stripe, adyen}).AnyTimes()
	d.breakers.EXPECT().IsOpen(gomock.Any()).Return(false).AnyTimes()
	d.monitor.EXPECT().Stats(gomock.Any()).Return(ports.AdapterStats{}).AnyTimes()
	d.selectFirst()
	d.txRepo.EXPECT().GetByKey(ctx, "k7").Return(nil, nil).Times(2)

	// The breaker opens between the health filter and the invocation.
	d.monitor.EXPECT().IncActive("stripe-card")
	d.monitor.EXPECT().DecActive("stripe-card")
	d.breakers.EXPECT().Execute("stripe-card", gomock.Any()).Return(
		nil, fmt.Errorf("adapter stripe-card: %w", breaker.ErrOpenCircuit))
	// Short-circuited attempts still count as failures.
	d.monitor.EXPECT().RecordFailure("stripe-card", domain.ProviderTypeCard, gomock.Any())

	d.monitor.EXPECT().IncActive("adyen-card")
	d.monitor.EXPECT().DecActive("adyen-card")
	adyen.EXPECT().Execute(ctx, req).Return(adapterResult("k7", domain.PaymentStatusSuccess), nil)
	d.passthroughBreaker("adyen-card")
	d.monitor.EXPECT().RecordSuccess("adyen-card", domain.ProviderTypeCard, gomock.Any(), int64(30))
	d.echoStore(req)

	res, err := d.svc.Execute(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSuccess, res.Status)
}

func TestPaymentOrchestrator_Execute_DeclineReturnedWithoutFailover(t *testing.T) {
	d := setupPaymentOrchestrator(t, DefaultOrchestratorConfig())
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := orchestratorRequest("k8")
	stripe := newMockAdapter(d.ctrl, "stripe-card", domain.ProviderTypeCard, true)
	adyen := newMockAdapter(d.ctrl, "adyen-card", domain.ProviderTypeCard, true)

	d.store.EXPECT().GetCachedPayment(ctx, "k8").Return(nil)
	d.capturePublishes(2)
	d.registry.EXPECT().ByType(domain.ProviderTypeCard).Return([]ports.PSPAdapter{stripe, adyen}).AnyTimes()
	d.breakers.EXPECT().IsOpen(gomock.Any()).Return(false).AnyTimes()
	d.monitor.EXPECT().Stats(gomock.Any()).Return(ports.AdapterStats{}).AnyTimes()
	d.selectFirst()
	d.txRepo.EXPECT().GetByKey(ctx, "k8").Return(nil, nil)

	d.monitor.EXPECT().IncActive("stripe-card")
	d.monitor.EXPECT().DecActive("stripe-card")
	stripe.EXPECT().Execute(ctx, req).Return(adapterResult("k8", domain.PaymentStatusFailed), nil)
	d.passthroughBreaker("stripe-card")
	d.monitor.EXPECT().RecordFailure("stripe-card", domain.ProviderTypeCard, gomock.Any())
	d.echoStore(req)

	res, err := d.svc.Execute(ctx, req)

	// A permanent decline is the outcome, not a failover trigger.
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, res.Status)
	assert.Equal(t, "card_declined", res.FailureCode)
	assert.Empty(t, res.Metadata[domain.MetaAdapterName])
	assert.Equal(t, domain.EventTypePaymentFailed, d.events[1].EventType)
}

func TestPaymentOrchestrator_Execute_ExhaustionReturnsNoPSPAvailable(t *testing.T) {
	d := setupPaymentOrchestrator(t, DefaultOrchestratorConfig())
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := orchestratorRequest("k9")
	stripe := newMockAdapter(d.ctrl, "stripe-card", domain.ProviderTypeCard, true)
	adyen := newMockAdapter(d.ctrl, "adyen-card", domain.ProviderTypeCard, true)

	d.store.EXPECT().GetCachedPayment(ctx, "k9").Return(nil)
	d.capturePublishes(1)
	d.registry.EXPECT().ByType(domain.ProviderTypeCard).Return([]ports.PSPAdapter{stripe, adyen}).AnyTimes()
	d.breakers.EXPECT().IsOpen(gomock.Any()).Return(false).AnyTimes()
	d.monitor.EXPECT().Stats(gomock.Any()).Return(ports.AdapterStats{}).AnyTimes()
	d.selectFirst()
	d.txRepo.EXPECT().GetByKey(ctx, "k9").Return(nil, nil).Times(2)

	d.monitor.EXPECT().IncActive(gomock.Any()).Times(2)
	d.monitor.EXPECT().DecActive(gomock.Any()).Times(2)
	d.breakers.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, errors.New("provider unreachable")).Times(2)
	d.monitor.EXPECT().RecordFailure(gomock.Any(), domain.ProviderTypeCard, gomock.Any()).Times(2)

	res, err := d.svc.Execute(ctx, req)

	assert.Nil(t, res)
	assertAppError(t, err, "NO_PSP_AVAILABLE")
	assert.Contains(t, err.Error(), "2 attempt(s)")
}

func TestPaymentOrchestrator_Execute_TestOverridePicksNamedAdapter(t *testing.T) {
	cfg := DefaultOrchestratorConfig()
	cfg.TestOverride = true
	d := setupPaymentOrchestrator(t, cfg)
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := orchestratorRequest("k10")
	req.ProviderPayload = map[string]string{domain.PayloadTestAdapterName: "adyen-card"}
	stripe := newMockAdapter(d.ctrl, "stripe-card", domain.ProviderTypeCard, true)
	adyen := newMockAdapter(d.ctrl, "adyen-card", domain.ProviderTypeCard, true)

	d.store.EXPECT().GetCachedPayment(ctx, "k10").Return(nil)
	d.capturePublishes(2)
	d.registry.EXPECT().ByType(domain.ProviderTypeCard).Return([]ports.PSPAdapter{stripe, adyen}).AnyTimes()
	d.breakers.EXPECT().IsOpen(gomock.Any()).Return(false).AnyTimes()
	d.monitor.EXPECT().Stats(gomock.Any()).Return(ports.AdapterStats{}).AnyTimes()
	// The override bypasses the strategy entirely: no Select expectation.
	d.txRepo.EXPECT().GetByKey(ctx, "k10").Return(nil, nil)

	d.monitor.EXPECT().IncActive("adyen-card")
	d.monitor.EXPECT().DecActive("adyen-card")
	adyen.EXPECT().Execute(ctx, req).Return(adapterResult("k10", domain.PaymentStatusSuccess), nil)
	d.passthroughBreaker("adyen-card")
	d.monitor.EXPECT().RecordSuccess("adyen-card", domain.ProviderTypeCard, gomock.Any(), int64(30))
	d.echoStore(req)

	res, err := d.svc.Execute(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "adyen-card", res.Metadata[domain.MetaAdapterName])
}

func TestPaymentOrchestrator_Execute_OverridePayloadIgnoredWhenDisabled(t *testing.T) {
	d := setupPaymentOrchestrator(t, DefaultOrchestratorConfig())
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := orchestratorRequest("k13")
	req.ProviderPayload = map[string]string{domain.PayloadTestAdapterName: "adyen-card"}
	stripe := newMockAdapter(d.ctrl, "stripe-card", domain.ProviderTypeCard, true)
	adyen := newMockAdapter(d.ctrl, "adyen-card", domain.ProviderTypeCard, true)

	d.store.EXPECT().GetCachedPayment(ctx, "k13").Return(nil)
	d.capturePublishes(2)
	d.registry.EXPECT().ByType(domain.ProviderTypeCard).Return([]ports.PSPAdapter{stripe, adyen}).AnyTimes()
	d.breakers.EXPECT().IsOpen(gomock.Any()).Return(false).AnyTimes()
	d.monitor.EXPECT().Stats(gomock.Any()).Return(ports.AdapterStats{}).AnyTimes()
	d.selectFirst()
	d.txRepo.EXPECT().GetByKey(ctx, "k13").Return(nil, nil)

	d.monitor.EXPECT().IncActive("stripe-card")
	d.monitor.EXPECT().DecActive("stripe-card")
	stripe.EXPECT().Execute(ctx, req).Return(adapterResult("k13", domain.PaymentStatusSuccess), nil)
	d.passthroughBreaker("stripe-card")
	d.monitor.EXPECT().RecordSuccess("stripe-card", domain.ProviderTypeCard, gomock.Any(), int64(30))
	d.echoStore(req)

	res, err := d.svc.Execute(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "stripe-card", res.Metadata[domain.MetaAdapterName])
}

func TestPaymentOrchestrator_Execute_PersistFailureDoesNotFailRequest(t *testing.T) {
	d := setupPaymentOrchestrator(t, DefaultOrchestratorConfig())
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := orchestratorRequest("k11")
	stripe := newMockAdapter(d.ctrl, "stripe-card", domain.ProviderTypeCard, true)

	d.store.EXPECT().GetCachedPayment(ctx, "k11").Return(nil)
	d.capturePublishes(2)
	d.registry.EXPECT().ByType(domain.ProviderTypeCard).Return([]ports.PSPAdapter{stripe}).AnyTimes()
	d.breakers.EXPECT().IsOpen("stripe-card").Return(false).AnyTimes()
	d.monitor.EXPECT().Stats("stripe-card").Return(ports.AdapterStats{}).AnyTimes()
	d.selectFirst()
	d.txRepo.EXPECT().GetByKey(ctx, "k11").Return(nil, nil)

	d.monitor.EXPECT().IncActive("stripe-card")
	d.monitor.EXPECT().DecActive("stripe-card")
	stripe.EXPECT().Execute(ctx, req).Return(adapterResult("k11", domain.PaymentStatusSuccess), nil)
	d.passthroughBreaker("stripe-card")
	d.monitor.EXPECT().RecordSuccess("stripe-card", domain.ProviderTypeCard, gomock.Any(), int64(30))
	d.store.EXPECT().StorePayment(gomock.Any(), req, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *domain.PaymentRequest, res *domain.PaymentResult) (*domain.PaymentResult, error) {
			return res, errors.New("db down")
		})

	res, err := d.svc.Execute(ctx, req)

	// The adapter outcome was obtained; persistence failure is logged only.
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSuccess, res.Status)
}

func TestPaymentOrchestrator_Execute_MalformedResultDrivesFailover(t *testing.T) {
	d := setupPaymentOrchestrator(t, DefaultOrchestratorConfig())
	defer d.ctrl.Finish()

	ctx := context.Background()
	req := orchestratorRequest("k12")
	stripe := newMockAdapter(d.ctrl, "stripe-card", domain.ProviderTypeCard, true)
	adyen := newMockAdapter(d.ctrl, "adyen-card", domain.ProviderTypeCard, true)

	d.store.EXPECT().GetCachedPayment(ctx, "k12").Return(nil)
	d.capturePublishes(2)
	d.registry.EXPECT().ByType(domain.ProviderTypeCard).Return([]ports.PSPAdapter{stripe, adyen}).AnyTimes()
	d.breakers.EXPECT().IsOpen(gomock.Any()).Return(false).AnyTimes()
	d.monitor.EXPECT().Stats(gomock.Any()).Return(ports.AdapterStats{}).AnyTimes()
	d.selectFirst()
	d.txRepo.EXPECT().GetByKey(ctx, "k12").Return(nil, nil).Times(2)

	d.monitor.EXPECT().IncActive("stripe-card")
	d.monitor.EXPECT().DecActive("stripe-card")
	// Result without a currency fails required-field validation.
	stripe.EXPECT().Execute(ctx, req).Return(&domain.PaymentResult{
		IdempotencyKey: "k12",
		Status:         domain.PaymentStatusSuccess,
		Timestamp:      time.Now().UTC(),
	}, nil)
	d.passthroughBreaker("stripe-card")
	d.monitor.EXPECT().RecordFailure("stripe-card", domain.ProviderTypeCard, gomock.Any())

	d.monitor.EXPECT().IncActive("adyen-card")
	d.monitor.EXPECT().DecActive("adyen-card")
	adyen.EXPECT().Execute(ctx, req).Return(adapterResult("k12", domain.PaymentStatusSuccess), nil)
	d.passthroughBreaker("adyen-card")
	d.monitor.EXPECT().RecordSuccess("adyen-card", domain.ProviderTypeCard, gomock.Any(), int64(30))
	d.echoStore(req)

	res, err := d.svc.Execute(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "adyen-card", res.Metadata[domain.MetaAdapterName])
}
