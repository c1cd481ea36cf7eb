package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the orchestrator.
type Metrics struct {
	// Payment metrics
	PaymentsTotal      *prometheus.CounterVec
	PaymentAmountTotal *prometheus.CounterVec
	PaymentDuration    *prometheus.HistogramVec

	// Refund metrics
	RefundsTotal      *prometheus.CounterVec
	RefundAmountTotal *prometheus.CounterVec
	RefundDuration    prometheus.Histogram

	// Adapter metrics
	AdapterCallsTotal   *prometheus.CounterVec
	AdapterCallDuration *prometheus.HistogramVec
	AdapterInFlight     *prometheus.GaugeVec

	// Circuit breaker metrics
	BreakerState      *prometheus.GaugeVec
	BreakerTripsTotal *prometheus.CounterVec

	// Risk metrics
	RiskEventsTotal   *prometheus.CounterVec
	RiskEventDuration prometheus.Histogram
	RiskAlertsTotal   *prometheus.CounterVec

	// Admission metrics
	VelocityFlagsTotal *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		// Payment metrics
		PaymentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orchestrator_payments_total",
				Help: "Total number of payment executions by final status",
			},
			[]string{"provider_type", "status"},
		),
		PaymentAmountTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orchestrator_payment_amount_total",
				Help: "Total successfully captured payment amount in major units",
			},
			[]string{"currency"},
		),
		PaymentDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "orchestrator_payment_duration_seconds",
				Help:    "End-to-end payment execution time including failover",
				Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"provider_type"},
		),

		// Refund metrics
		RefundsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orchestrator_refunds_total",
				Help: "Total number of refund executions by final status",
			},
			[]string{"status"},
		),
		RefundAmountTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orchestrator_refund_amount_total",
				Help: "Total successfully refunded amount in major units",
			},
			[]string{"currency"},
		),
		RefundDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "orchestrator_refund_duration_seconds",
				Help:    "End-to-end refund execution time",
				Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),

		// Adapter metrics
		AdapterCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orchestrator_adapter_calls_total",
				Help: "Total number of provider adapter invocations by outcome",
			},
			[]string{"adapter", "provider_type", "outcome"},
		),
		AdapterCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "orchestrator_adapter_call_duration_seconds",
				Help:    "Duration of provider adapter invocations (supports p50, p95, p99 percentiles)",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"adapter"},
		),
		AdapterInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "orchestrator_adapter_in_flight",
				Help: "Number of adapter invocations currently in flight",
			},
			[]string{"adapter"},
		),

		// Circuit breaker metrics
		BreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "orchestrator_breaker_state",
				Help: "Circuit breaker state per adapter (0=closed, 1=half-open, 2=open)",
			},
			[]string{"adapter"},
		),
		BreakerTripsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orchestrator_breaker_trips_total",
				Help: "Total number of circuit breaker transitions to open",
			},
			[]string{"adapter"},
		),

		// Risk metrics
		RiskEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orchestrator_risk_events_total",
				Help: "Total number of payment events consumed by the risk pipeline",
			},
			[]string{"outcome"},
		),
		RiskEventDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "orchestrator_risk_event_duration_seconds",
				Help:    "Time taken to aggregate and evaluate one payment event",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5, 1, 2},
			},
		),
		RiskAlertsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orchestrator_risk_alerts_total",
				Help: "Total number of risk alerts emitted",
			},
			[]string{"level", "entity_type"},
		),

		// Admission metrics
		VelocityFlagsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orchestrator_velocity_flags_total",
				Help: "Total number of requests flagged by ingress velocity sampling",
			},
			[]string{"scope"},
		),

		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orchestrator_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "orchestrator_http_request_duration_seconds",
				Help:    "HTTP request latency (supports p50, p95, p99 percentiles)",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// ObservePayment records a payment execution and its outcome. Amount is
// only accumulated for successful payments.
func (m *Metrics) ObservePayment(providerType, status string, success bool, duration time.Duration, amount float64, currency string) {
	m.PaymentsTotal.WithLabelValues(providerType, status).Inc()
	if success {
		m.PaymentAmountTotal.WithLabelValues(currency).Add(amount)
	}
	m.PaymentDuration.WithLabelValues(providerType).Observe(duration.Seconds())
}

// ObserveRefund records a refund execution and its outcome.
func (m *Metrics) ObserveRefund(status string, success bool, duration time.Duration, amount float64, currency string) {
	m.RefundsTotal.WithLabelValues(status).Inc()
	if success {
		m.RefundAmountTotal.WithLabelValues(currency).Add(amount)
	}
	m.RefundDuration.Observe(duration.Seconds())
}

// ObserveAdapterCall records one provider adapter invocation.
func (m *Metrics) ObserveAdapterCall(adapter, providerType string, success bool, duration time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.AdapterCallsTotal.WithLabelValues(adapter, providerType, outcome).Inc()
	m.AdapterCallDuration.WithLabelValues(adapter).Observe(duration.Seconds())
}

// IncAdapterInFlight marks one adapter invocation as started.
func (m *Metrics) IncAdapterInFlight(adapter string) {
	m.AdapterInFlight.WithLabelValues(adapter).Inc()
}

// DecAdapterInFlight marks one adapter invocation as finished.
func (m *Metrics) DecAdapterInFlight(adapter string) {
	m.AdapterInFlight.WithLabelValues(adapter).Dec()
}

// ObserveRiskEvent records one consumed payment event and its processing time.
func (m *Metrics) ObserveRiskEvent(outcome string, duration time.Duration) {
	m.RiskEventsTotal.WithLabelValues(outcome).Inc()
	m.RiskEventDuration.Observe(duration.Seconds())
}

// ObserveRiskAlert records one emitted risk alert.
func (m *Metrics) ObserveRiskAlert(level, entityType string) {
	m.RiskAlertsTotal.WithLabelValues(level, entityType).Inc()
}

// ObserveVelocityFlag records a request flagged by ingress velocity sampling.
func (m *Metrics) ObserveVelocityFlag(scope string) {
	m.VelocityFlagsTotal.WithLabelValues(scope).Inc()
}

// ObserveHTTPRequest records one served HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
