package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
)

type recordingMonitor struct {
	successes int
	failures  int
	active    int
	stats     ports.AdapterStats
}

func (r *recordingMonitor) RecordSuccess(string, domain.ProviderType, time.Duration, int64) {
	r.successes++
}

func (r *recordingMonitor) RecordFailure(string, domain.ProviderType, time.Duration) {
	r.failures++
}

func (r *recordingMonitor) IncActive(string) { r.active++ }
func (r *recordingMonitor) DecActive(string) { r.active-- }

func (r *recordingMonitor) Stats(string) ports.AdapterStats { return r.stats }

func TestInstrumentedMonitor_ForwardsAndExports(t *testing.T) {
	m := New(prometheus.NewRegistry())
	inner := &recordingMonitor{stats: ports.AdapterStats{TotalCalls: 7}}
	monitor := NewInstrumentedMonitor(inner, m)

	monitor.RecordSuccess("stripe-card", domain.ProviderTypeCard, 40*time.Millisecond, 30)
	monitor.RecordFailure("stripe-card", domain.ProviderTypeCard, 500*time.Millisecond)
	monitor.IncActive("stripe-card")
	monitor.IncActive("stripe-card")
	monitor.DecActive("stripe-card")

	assert.Equal(t, 1, inner.successes)
	assert.Equal(t, 1, inner.failures)
	assert.Equal(t, 1, inner.active)
	assert.Equal(t, ports.AdapterStats{TotalCalls: 7}, monitor.Stats("stripe-card"))

	assert.Equal(t, 1.0, promtest.ToFloat64(m.AdapterCallsTotal.WithLabelValues("stripe-card", "CARD", "success")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.AdapterCallsTotal.WithLabelValues("stripe-card", "CARD", "failure")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.AdapterInFlight.WithLabelValues("stripe-card")))
}

type staticHandler struct {
	err   error
	calls int
}

func (h *staticHandler) HandleEvent(context.Context, *domain.PaymentEvent) error {
	h.calls++
	return h.err
}

func TestInstrumentedHandler_CountsOutcomes(t *testing.T) {
	m := New(prometheus.NewRegistry())

	ok := NewInstrumentedHandler(&staticHandler{}, m)
	failing := NewInstrumentedHandler(&staticHandler{err: errors.New("insert failed")}, m)

	assert.NoError(t, ok.HandleEvent(context.Background(), &domain.PaymentEvent{}))
	assert.NoError(t, ok.HandleEvent(context.Background(), &domain.PaymentEvent{}))
	assert.Error(t, failing.HandleEvent(context.Background(), &domain.PaymentEvent{}))

	assert.Equal(t, 2.0, promtest.ToFloat64(m.RiskEventsTotal.WithLabelValues("processed")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.RiskEventsTotal.WithLabelValues("failed")))
}

type recordingAlertStore struct {
	appended []*domain.RiskAlert
	recent   []*domain.RiskAlert
}

func (s *recordingAlertStore) Append(alert *domain.RiskAlert) {
	s.appended = append(s.appended, alert)
}

func (s *recordingAlertStore) Recent(int) []*domain.RiskAlert { return s.recent }

func TestInstrumentedAlertStore_CountsByLevelAndEntity(t *testing.T) {
	m := New(prometheus.NewRegistry())
	inner := &recordingAlertStore{recent: []*domain.RiskAlert{{AlertID: "a-1"}}}
	store := NewInstrumentedAlertStore(inner, m)

	store.Append(&domain.RiskAlert{Level: domain.RiskLevelHigh, EntityType: domain.EntityTypeMerchant})
	store.Append(&domain.RiskAlert{Level: domain.RiskLevelHigh, EntityType: domain.EntityTypeMerchant})
	store.Append(&domain.RiskAlert{Level: domain.RiskLevelCritical, EntityType: domain.EntityTypeCard})

	assert.Len(t, inner.appended, 3)
	assert.Equal(t, 2.0, promtest.ToFloat64(m.RiskAlertsTotal.WithLabelValues("HIGH", "MERCHANT")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.RiskAlertsTotal.WithLabelValues("CRITICAL", "CARD")))

	got := store.Recent(5)
	assert.Len(t, got, 1)
	assert.Equal(t, "a-1", got[0].AlertID)
}

func TestBreakerStateHook_TracksTransitions(t *testing.T) {
	m := New(prometheus.NewRegistry())
	hook := BreakerStateHook(m)

	hook("stripe-card", gobreaker.StateClosed, gobreaker.StateOpen)
	assert.Equal(t, 2.0, promtest.ToFloat64(m.BreakerState.WithLabelValues("stripe-card")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.BreakerTripsTotal.WithLabelValues("stripe-card")))

	hook("stripe-card", gobreaker.StateOpen, gobreaker.StateHalfOpen)
	assert.Equal(t, 1.0, promtest.ToFloat64(m.BreakerState.WithLabelValues("stripe-card")))

	hook("stripe-card", gobreaker.StateHalfOpen, gobreaker.StateClosed)
	assert.Equal(t, 0.0, promtest.ToFloat64(m.BreakerState.WithLabelValues("stripe-card")))

	// Only transitions into open count as trips.
	assert.Equal(t, 1.0, promtest.ToFloat64(m.BreakerTripsTotal.WithLabelValues("stripe-card")))
}

func TestBreakerStateHook_NilMetricsIsNoop(t *testing.T) {
	hook := BreakerStateHook(nil)
	assert.NotPanics(t, func() {
		hook("stripe-card", gobreaker.StateClosed, gobreaker.StateOpen)
	})
}
