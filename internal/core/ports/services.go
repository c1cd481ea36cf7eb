package ports

import (
	"context"
	"time"

	"payment-orchestrator/internal/core/domain"

	"github.com/shopspring/decimal"
)

// PSPAdapter is the in-process translator for one external payment provider.
// AdapterName must be stable and unique across the process; it is the
// circuit-breaker and metrics partition key. Adapters never mutate the
// request and populate idempotencyKey, status, amount, currencyCode and
// timestamp on every return.
type PSPAdapter interface {
	ProviderType() domain.ProviderType
	AdapterName() string
	Execute(ctx context.Context, req *domain.PaymentRequest) (*domain.PaymentResult, error)
	// Refund is called with the resolved, non-nil amount. Adapters that do
	// not support refunds report it via SupportsRefunds and must not be
	// called here.
	Refund(ctx context.Context, req *domain.RefundRequest, amount decimal.Decimal) (*domain.RefundResult, error)
	SupportsRefunds() bool
	IsHealthy() bool
}

// AdapterRegistry resolves adapters by identity and by provider type.
type AdapterRegistry interface {
	ByName(adapterName string) (PSPAdapter, bool)
	ByType(providerType domain.ProviderType) []PSPAdapter
	All() []PSPAdapter
}

// IdempotencyCache is the hot-tier idempotency check (fast path).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached envelope JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// IdempotencyStore is the two-tier payment result store. Reads are
// fail-open: tier failures are logged and treated as a miss, never
// propagated.
type IdempotencyStore interface {
	// GetCachedPayment returns the prior result for the key from the hot
	// tier or, on hot miss, the durable tier (repopulating the hot tier
	// best-effort). Nil means no usable prior result.
	GetCachedPayment(ctx context.Context, key string) *domain.PaymentResult
	// StorePayment writes both tiers. Concurrent stores for one key
	// converge on a single durable record; the converged result is
	// returned.
	StorePayment(ctx context.Context, req *domain.PaymentRequest, res *domain.PaymentResult) (*domain.PaymentResult, error)
}

// AdapterStats is the read-only metrics view a routing strategy sees.
// Averages are derived from cumulative fixed-point counters at read time.
type AdapterStats struct {
	TotalCalls        int64
	SuccessCount      int64
	FailureCount      int64
	SuccessRate       float64
	AvgLatencyMs      float64
	AvgCostCents      float64
	ActiveConnections int64
}

// RouteCandidate pairs a selectable adapter with its current stats.
type RouteCandidate struct {
	AdapterName  string
	ProviderType domain.ProviderType
	Stats        AdapterStats
}

// RoutingStrategy selects exactly one candidate or none. Implementations
// are pure with respect to request and candidates but may keep small
// internal state such as a round-robin cursor.
type RoutingStrategy interface {
	Name() string
	Select(req *domain.PaymentRequest, candidates []RouteCandidate) (RouteCandidate, bool)
}

// PerformanceMonitor is the rolling per-adapter performance registry.
// Every adapter invocation is recorded exactly once, success or failure.
type PerformanceMonitor interface {
	RecordSuccess(adapterName string, providerType domain.ProviderType, latency time.Duration, costCents int64)
	RecordFailure(adapterName string, providerType domain.ProviderType, latency time.Duration)
	IncActive(adapterName string)
	DecActive(adapterName string)
	Stats(adapterName string) AdapterStats
}

// BreakerExecutor runs an adapter call under the adapter's circuit breaker.
// The call is retried internally before the breaker accounts the outcome;
// an open breaker yields breaker.ErrOpenCircuit without invoking the call.
type BreakerExecutor interface {
	Execute(adapterName string, call func() (*domain.PaymentResult, error)) (*domain.PaymentResult, error)
	IsOpen(adapterName string) bool
}

// EventPublisher appends to the payment event and alert logs. Publishing is
// asynchronous; delivery failures are logged and never surface to callers.
type EventPublisher interface {
	PublishPaymentEvent(ctx context.Context, event *domain.PaymentEvent)
	PublishAlert(ctx context.Context, alert *domain.RiskAlert)
	Close() error
}

// EventHandler processes one consumed payment event. Returning an error
// leaves the message uncommitted for redelivery.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *domain.PaymentEvent) error
}

// EventConsumer drives an EventHandler from the event log until the context
// is cancelled.
type EventConsumer interface {
	Start(ctx context.Context) error
	Close() error
}

// AlertStore is the fixed-capacity in-memory alert log.
type AlertStore interface {
	Append(alert *domain.RiskAlert)
	// Recent returns up to limit alerts, newest first.
	Recent(limit int) []*domain.RiskAlert
}

// WebhookRegistry holds per-entity alert subscriptions.
type WebhookRegistry interface {
	// Register subscribes the URL to the entity's alerts. An empty secret
	// means unsigned deliveries; re-registering a pair rotates its secret.
	Register(entityID, webhookURL, secret string) domain.WebhookSubscription
	// Unregister reports whether the subscription existed.
	Unregister(entityID, webhookURL string) bool
	List(entityID string) []domain.WebhookSubscription
}

// AlertDispatcher fans an alert out to the entity's subscribed webhooks.
// Dispatch returns immediately; delivery runs in the background with
// bounded retries.
type AlertDispatcher interface {
	Dispatch(alert *domain.RiskAlert)
}

// VelocityStore counts requests per scope+id over a fixed window, for
// ingress velocity sampling.
type VelocityStore interface {
	Increment(ctx context.Context, scope, id string, window time.Duration) (int64, error)
}

// --- Service Ports (Business Logic) ---

// PaymentOrchestrator executes a payment end to end: idempotency, routing,
// breaker-wrapped adapter call, failover, persistence, event publication.
type PaymentOrchestrator interface {
	Execute(ctx context.Context, req *domain.PaymentRequest) (*domain.PaymentResult, error)
}

// RefundOrchestrator executes a refund end to end under the cumulative
// amount bound.
type RefundOrchestrator interface {
	Execute(ctx context.Context, req *domain.RefundRequest) (*domain.RefundResult, error)
}
