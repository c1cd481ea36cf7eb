package routing

import (
	"sync"
	"time"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
)

// DefaultHalvingCap is the call-count cap above which an adapter's
// counters are halved, keeping the window a decaying history.
const DefaultHalvingCap = 1000

// PerfRegistry is the process-wide rolling performance registry, one entry
// per adapter. Safe for concurrent use.
type PerfRegistry struct {
	cap int64

	mu      sync.RWMutex
	entries map[string]*perfEntry
}

type perfEntry struct {
	mu           sync.Mutex
	providerType domain.ProviderType

	totalCalls   int64
	successCount int64
	failureCount int64
	latencyMsSum int64
	costCentsSum int64
	active       int64
}

// NewPerfRegistry creates a registry. A non-positive cap falls back to
// DefaultHalvingCap.
func NewPerfRegistry(cap int64) *PerfRegistry {
	if cap <= 0 {
		cap = DefaultHalvingCap
	}
	return &PerfRegistry{
		cap:     cap,
		entries: make(map[string]*perfEntry),
	}
}

// RecordSuccess adds one successful call with its latency and provider fee.
func (r *PerfRegistry) RecordSuccess(adapterName string, providerType domain.ProviderType, latency time.Duration, costCents int64) {
	e := r.entry(adapterName, providerType)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.totalCalls++
	e.successCount++
	e.latencyMsSum += latency.Milliseconds()
	e.costCentsSum += costCents
	e.decay(r.cap)
}

// RecordFailure adds one failed call with its latency. Declines, transport
// errors and open-breaker short-circuits all land here.
func (r *PerfRegistry) RecordFailure(adapterName string, providerType domain.ProviderType, latency time.Duration) {
	e := r.entry(adapterName, providerType)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.totalCalls++
	e.failureCount++
	e.latencyMsSum += latency.Milliseconds()
	e.decay(r.cap)
}

// IncActive marks one in-flight call against the adapter.
func (r *PerfRegistry) IncActive(adapterName string) {
	e := r.entry(adapterName, "")
	e.mu.Lock()
	e.active++
	e.mu.Unlock()
}

// DecActive releases one in-flight call.
func (r *PerfRegistry) DecActive(adapterName string) {
	e := r.entry(adapterName, "")
	e.mu.Lock()
	if e.active > 0 {
		e.active--
	}
	e.mu.Unlock()
}

// Stats returns a consistent snapshot with derived averages. Unknown
// adapters read as zero.
func (r *PerfRegistry) Stats(adapterName string) ports.AdapterStats {
	r.mu.RLock()
	e, ok := r.entries[adapterName]
	r.mu.RUnlock()
	if !ok {
		return ports.AdapterStats{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	s := ports.AdapterStats{
		TotalCalls:        e.totalCalls,
		SuccessCount:      e.successCount,
		FailureCount:      e.failureCount,
		ActiveConnections: e.active,
	}
	if e.totalCalls > 0 {
		s.SuccessRate = float64(e.successCount) / float64(e.totalCalls)
		s.AvgLatencyMs = float64(e.latencyMsSum) / float64(e.totalCalls)
		s.AvgCostCents = float64(e.costCentsSum) / float64(e.totalCalls)
	}
	return s
}

// AdapterNames returns every adapter the registry has seen.
func (r *PerfRegistry) AdapterNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}

func (r *PerfRegistry) entry(adapterName string, providerType domain.ProviderType) *perfEntry {
	r.mu.RLock()
	e, ok := r.entries[adapterName]
	r.mu.RUnlock()
	if ok {
		return e
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok = r.entries[adapterName]; ok {
		if e.providerType == "" && providerType != "" {
			e.providerType = providerType
		}
		return e
	}
	e = &perfEntry{providerType: providerType}
	r.entries[adapterName] = e
	return e
}

// decay halves the counters once the total exceeds the cap. Averages are
// preserved; the active gauge is left untouched. Caller holds e.mu.
func (e *perfEntry) decay(cap int64) {
	if e.totalCalls <= cap {
		return
	}
	e.totalCalls /= 2
	e.successCount /= 2
	e.failureCount /= 2
	e.latencyMsSum /= 2
	e.costCentsSum /= 2
}
