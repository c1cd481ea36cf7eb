package observability

import (
	"context"
	"time"

	"payment-orchestrator/internal/breaker"
	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"

	"github.com/sony/gobreaker"
)

// InstrumentedMonitor decorates a PerformanceMonitor so every adapter
// invocation the orchestrator records is also exported to Prometheus. The
// routing view of the inner monitor is unchanged.
type InstrumentedMonitor struct {
	inner   ports.PerformanceMonitor
	metrics *Metrics
}

// NewInstrumentedMonitor wraps inner with Prometheus export.
func NewInstrumentedMonitor(inner ports.PerformanceMonitor, m *Metrics) *InstrumentedMonitor {
	return &InstrumentedMonitor{inner: inner, metrics: m}
}

func (im *InstrumentedMonitor) RecordSuccess(adapterName string, providerType domain.ProviderType, latency time.Duration, costCents int64) {
	im.inner.RecordSuccess(adapterName, providerType, latency, costCents)
	im.metrics.ObserveAdapterCall(adapterName, string(providerType), true, latency)
}

func (im *InstrumentedMonitor) RecordFailure(adapterName string, providerType domain.ProviderType, latency time.Duration) {
	im.inner.RecordFailure(adapterName, providerType, latency)
	im.metrics.ObserveAdapterCall(adapterName, string(providerType), false, latency)
}

func (im *InstrumentedMonitor) IncActive(adapterName string) {
	im.inner.IncActive(adapterName)
	im.metrics.IncAdapterInFlight(adapterName)
}

func (im *InstrumentedMonitor) DecActive(adapterName string) {
	im.inner.DecActive(adapterName)
	im.metrics.DecAdapterInFlight(adapterName)
}

func (im *InstrumentedMonitor) Stats(adapterName string) ports.AdapterStats {
	return im.inner.Stats(adapterName)
}

// InstrumentedHandler decorates an EventHandler with consumption counters
// and a processing-time histogram.
type InstrumentedHandler struct {
	inner   ports.EventHandler
	metrics *Metrics
}

// NewInstrumentedHandler wraps inner with Prometheus export.
func NewInstrumentedHandler(inner ports.EventHandler, m *Metrics) *InstrumentedHandler {
	return &InstrumentedHandler{inner: inner, metrics: m}
}

func (h *InstrumentedHandler) HandleEvent(ctx context.Context, event *domain.PaymentEvent) error {
	start := time.Now()
	err := h.inner.HandleEvent(ctx, event)

	outcome := "processed"
	if err != nil {
		outcome = "failed"
	}
	h.metrics.ObserveRiskEvent(outcome, time.Since(start))
	return err
}

// InstrumentedAlertStore decorates an AlertStore so every emitted alert is
// counted by level and entity type. Every alert the engine emits passes
// through Append exactly once.
type InstrumentedAlertStore struct {
	inner   ports.AlertStore
	metrics *Metrics
}

// NewInstrumentedAlertStore wraps inner with Prometheus export.
func NewInstrumentedAlertStore(inner ports.AlertStore, m *Metrics) *InstrumentedAlertStore {
	return &InstrumentedAlertStore{inner: inner, metrics: m}
}

func (s *InstrumentedAlertStore) Append(alert *domain.RiskAlert) {
	s.metrics.ObserveRiskAlert(string(alert.Level), string(alert.EntityType))
	s.inner.Append(alert)
}

func (s *InstrumentedAlertStore) Recent(limit int) []*domain.RiskAlert {
	return s.inner.Recent(limit)
}

// BreakerStateHook returns a hook for breaker.NewManager that mirrors state
// transitions into the breaker state gauge and trip counter.
func BreakerStateHook(m *Metrics) breaker.StateHook {
	if m == nil {
		return func(string, gobreaker.State, gobreaker.State) {}
	}
	return func(adapterName string, from, to gobreaker.State) {
		m.BreakerState.WithLabelValues(adapterName).Set(breakerStateValue(to))
		if to == gobreaker.StateOpen {
			m.BreakerTripsTotal.WithLabelValues(adapterName).Inc()
		}
	}
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 2
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 0
	}
}
