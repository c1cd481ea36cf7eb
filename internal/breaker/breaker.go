package breaker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"payment-orchestrator/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// ErrOpenCircuit is returned when a breaker short-circuits the call. It is
// a failover trigger for the orchestrator, never a caller-facing error.
var ErrOpenCircuit = errors.New("circuit breaker is open")

// Config holds the per-adapter breaker and retry settings. Every adapter
// gets its own breaker instance built from the same settings.
type Config struct {
	// Enabled disables breaker protection entirely when false; calls pass
	// through with retry only.
	Enabled bool

	// MaxRequests is the number of consecutive half-open successes needed
	// to close the breaker. Failing any half-open probe reopens it.
	MaxRequests uint32

	// Interval is the cyclic period in closed state after which the
	// failure counts reset. Zero never resets.
	Interval time.Duration

	// Timeout is the open duration before the breaker probes half-open.
	Timeout time.Duration

	// MinCalls is the minimum number of counted calls before the failure
	// rate can trip the breaker.
	MinCalls uint32

	// FailureRateThreshold trips the breaker at or above this rate once
	// MinCalls is reached.
	FailureRateThreshold float64

	// RetryMaxAttempts bounds the inner retry per breaker invocation.
	RetryMaxAttempts int

	// RetryWaitDuration is the fixed wait between retry attempts.
	RetryWaitDuration time.Duration
}

// DefaultConfig returns the default breaker and retry settings.
func DefaultConfig() Config {
	return Config{
		Enabled:              true,
		MaxRequests:          2,
		Interval:             60 * time.Second,
		Timeout:              30 * time.Second,
		MinCalls:             10,
		FailureRateThreshold: 0.5,
		RetryMaxAttempts:     3,
		RetryWaitDuration:    100 * time.Millisecond,
	}
}

// StateHook observes breaker state transitions, for metrics export.
type StateHook func(adapterName string, from, to gobreaker.State)

// Manager holds one circuit breaker per adapter name. Breakers are created
// lazily on first use and live for the process lifetime.
type Manager struct {
	cfg   Config
	log   zerolog.Logger
	hooks []StateHook

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewManager creates a breaker manager. Hooks run on every state change
// after the transition is logged.
func NewManager(cfg Config, log zerolog.Logger, hooks ...StateHook) *Manager {
	return &Manager{
		cfg:      cfg,
		log:      log,
		hooks:    hooks,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

// Execute runs the call under the adapter's breaker, with bounded retry
// inside the breaker. The breaker accounts one outcome per invocation no
// matter how many retries ran. An open breaker yields ErrOpenCircuit
// without invoking the call at all.
func (m *Manager) Execute(adapterName string, call func() (*domain.PaymentResult, error)) (*domain.PaymentResult, error) {
	if !m.cfg.Enabled {
		return m.retry(call)
	}

	out, err := m.breaker(adapterName).Execute(func() (interface{}, error) {
		res, err := m.retry(call)
		if err != nil {
			return nil, err
		}
		return res, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("adapter %s: %w", adapterName, ErrOpenCircuit)
		}
		return nil, err
	}

	res, ok := out.(*domain.PaymentResult)
	if !ok {
		return nil, fmt.Errorf("adapter %s returned unexpected result type", adapterName)
	}
	return res, nil
}

// IsOpen reports whether the adapter's breaker is currently OPEN.
// Half-open breakers are selectable and report false.
func (m *Manager) IsOpen(adapterName string) bool {
	if !m.cfg.Enabled {
		return false
	}
	m.mu.Lock()
	cb, ok := m.breakers[adapterName]
	m.mu.Unlock()
	if !ok {
		return false
	}
	return cb.State() == gobreaker.StateOpen
}

// States returns the current state per known adapter, for health reporting.
func (m *Manager) States() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.breakers))
	for name, cb := range m.breakers {
		out[name] = cb.State().String()
	}
	return out
}

func (m *Manager) breaker(adapterName string) *gobreaker.CircuitBreaker {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cb, ok := m.breakers[adapterName]; ok {
		return cb
	}
	cb := gobreaker.NewCircuitBreaker(m.settings(adapterName))
	m.breakers[adapterName] = cb
	return cb
}

func (m *Manager) settings(adapterName string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        adapterName,
		MaxRequests: m.cfg.MaxRequests,
		Interval:    m.cfg.Interval,
		Timeout:     m.cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < m.cfg.MinCalls {
				return false
			}
			failureRate := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRate >= m.cfg.FailureRateThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			m.log.Warn().
				Str("adapter", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
			for _, hook := range m.hooks {
				hook(name, from, to)
			}
		},
	}
}

// retry runs the call up to RetryMaxAttempts times with a fixed wait
// between attempts. Cancellation by the caller stops retrying; declines
// are results, not errors, and are never retried.
func (m *Manager) retry(call func() (*domain.PaymentResult, error)) (*domain.PaymentResult, error) {
	attempts := m.cfg.RetryMaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		res, err := call()
		if err == nil {
			return res, nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		if attempt < attempts-1 {
			time.Sleep(m.cfg.RetryWaitDuration)
		}
	}
	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}
