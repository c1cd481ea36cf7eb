package risk

import (
	"sync"
	"time"

	"payment-orchestrator/internal/core/domain"
)

// Horizon is the sliding-window length per entity.
const Horizon = 5 * time.Minute

type sample struct {
	at     time.Time
	amount float64
	failed bool
}

type entityWindow struct {
	samples []sample
}

// evict drops samples strictly older than cutoff.
func (w *entityWindow) evict(cutoff time.Time) {
	keep := 0
	for keep < len(w.samples) && w.samples[keep].at.Before(cutoff) {
		keep++
	}
	if keep > 0 {
		w.samples = append(w.samples[:0], w.samples[keep:]...)
	}
}

type windowKey struct {
	entityType domain.EntityType
	entityID   string
}

// Aggregator maintains one 5-minute sliding window of (timestamp, amount,
// failure) tuples per aggregation entity, across the four dimensions an
// event can yield. The single mutex serializes window updates, so the same
// entity observed from different log partitions still sees a consistent
// window.
type Aggregator struct {
	mu      sync.Mutex
	windows map[windowKey]*entityWindow
	horizon time.Duration
}

// NewAggregator creates an empty aggregator over the default horizon.
func NewAggregator() *Aggregator {
	return &Aggregator{
		windows: make(map[windowKey]*entityWindow),
		horizon: Horizon,
	}
}

// Record appends the event to each of its entity windows and returns the
// feature vector of every dimension the event yields, computed with the
// event included. The event's own timestamp is the window clock, which keeps
// replayed log segments deterministic.
func (a *Aggregator) Record(event *domain.PaymentEvent) []domain.WindowFeatures {
	refs := event.EntityRefs()
	if len(refs) == 0 {
		return nil
	}

	now := event.Timestamp
	if now.IsZero() {
		now = time.Now().UTC()
	}
	amount, _ := event.Amount.Float64()
	failed := event.Failed()

	a.mu.Lock()
	defer a.mu.Unlock()

	features := make([]domain.WindowFeatures, 0, len(refs))
	for _, ref := range refs {
		key := windowKey{entityType: ref.Type, entityID: ref.ID}
		w := a.windows[key]
		if w == nil {
			w = &entityWindow{}
			a.windows[key] = w
		}

		sinceLast := 0.0
		if n := len(w.samples); n > 0 {
			sinceLast = now.Sub(w.samples[n-1].at).Seconds()
		}

		w.samples = append(w.samples, sample{at: now, amount: amount, failed: failed})
		w.evict(now.Add(-a.horizon))

		features = append(features, computeFeatures(ref, w.samples, now, sinceLast, a.horizon))
	}
	return features
}

// Features returns the live feature vector for one entity, evaluated at the
// current wall clock. The second return is false when the entity has no
// window or its window has fully aged out.
func (a *Aggregator) Features(entityType domain.EntityType, entityID string) (domain.WindowFeatures, bool) {
	now := time.Now().UTC()

	a.mu.Lock()
	defer a.mu.Unlock()

	w := a.windows[windowKey{entityType: entityType, entityID: entityID}]
	if w == nil {
		return domain.WindowFeatures{}, false
	}
	w.evict(now.Add(-a.horizon))
	if len(w.samples) == 0 {
		return domain.WindowFeatures{}, false
	}

	sinceLast := now.Sub(w.samples[len(w.samples)-1].at).Seconds()
	ref := domain.EntityRef{Type: entityType, ID: entityID}
	return computeFeatures(ref, w.samples, now, sinceLast, a.horizon), true
}

func computeFeatures(ref domain.EntityRef, samples []sample, now time.Time, sinceLast float64, horizon time.Duration) domain.WindowFeatures {
	f := domain.WindowFeatures{
		EntityID:                    ref.ID,
		EntityType:                  ref.Type,
		WindowStart:                 now.Add(-horizon),
		WindowEnd:                   now,
		TotalCount:                  len(samples),
		SecondsSinceLastTransaction: sinceLast,
		HourOfDay:                   now.UTC().Hour(),
		DayOfWeek:                   int(now.UTC().Weekday()),
	}
	if len(samples) == 0 {
		return f
	}

	oneMinCutoff := now.Add(-time.Minute)
	fiveMinCutoff := now.Add(-horizon)

	var sum, sumSquares float64
	f.MinAmount = samples[0].amount
	f.MaxAmount = samples[0].amount

	for i, s := range samples {
		if s.failed {
			f.FailureCount++
		}
		if !s.at.Before(oneMinCutoff) {
			f.CountLast1Min++
		}
		if !s.at.Before(fiveMinCutoff) {
			f.CountLast5Min++
		}

		sum += s.amount
		sumSquares += s.amount * s.amount
		if s.amount < f.MinAmount {
			f.MinAmount = s.amount
		}
		if s.amount > f.MaxAmount {
			f.MaxAmount = s.amount
		}

		if i > 0 {
			switch {
			case s.amount > samples[i-1].amount:
				f.IncreasingAmountCount++
			case s.amount < samples[i-1].amount:
				f.DecreasingAmountCount++
			}
		}
	}

	n := float64(len(samples))
	f.FailureRate = float64(f.FailureCount) / n
	f.AvgAmount = sum / n
	f.AmountVariance = sumSquares/n - f.AvgAmount*f.AvgAmount
	if f.AmountVariance < 0 {
		f.AmountVariance = 0 // float noise on constant amounts
	}
	f.AmountTrend = amountTrend(samples)

	if len(samples) > 1 {
		gap := samples[len(samples)-1].at.Sub(samples[0].at).Seconds()
		f.AvgTimeGapSeconds = gap / float64(len(samples)-1)
	}

	return f
}

// amountTrend is the sign of the least-squares slope of amount against
// sample index, 0 when fewer than 3 samples.
func amountTrend(samples []sample) int {
	n := len(samples)
	if n < 3 {
		return 0
	}

	meanIdx := float64(n-1) / 2
	var meanAmount float64
	for _, s := range samples {
		meanAmount += s.amount
	}
	meanAmount /= float64(n)

	var covariance float64
	for i, s := range samples {
		covariance += (float64(i) - meanIdx) * (s.amount - meanAmount)
	}

	switch {
	case covariance > 0:
		return 1
	case covariance < 0:
		return -1
	default:
		return 0
	}
}
