package routing

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
)

// Strategy names accepted in configuration.
const (
	StrategyWeightedRoundRobin = "weighted_round_robin"
	StrategyLeastConnections   = "least_connections"
	StrategyCostBased          = "cost_based"
	StrategyResponseTimeBased  = "response_time_based"
	StrategyHybrid             = "hybrid"
)

// epsilon floors the success rate in cost ranking so a fully failing
// adapter ranks finitely bad instead of dividing by zero.
const epsilon = 0.01

// NewStrategy resolves a configured strategy name.
func NewStrategy(name string) (ports.RoutingStrategy, error) {
	switch name {
	case StrategyWeightedRoundRobin:
		return NewWeightedRoundRobin(), nil
	case StrategyLeastConnections:
		return &LeastConnections{}, nil
	case StrategyCostBased:
		return &CostBased{}, nil
	case StrategyResponseTimeBased:
		return &ResponseTimeBased{}, nil
	case StrategyHybrid:
		return &Hybrid{}, nil
	default:
		return nil, fmt.Errorf("unknown routing strategy %q", name)
	}
}

// WeightedRoundRobin distributes picks proportionally to success rate.
// Weight is max(1, round(successRate*100)); the cursor is kept per
// candidate set so rotation survives membership changes.
type WeightedRoundRobin struct {
	mu      sync.Mutex
	cursors map[string]int
}

func NewWeightedRoundRobin() *WeightedRoundRobin {
	return &WeightedRoundRobin{cursors: make(map[string]int)}
}

func (s *WeightedRoundRobin) Name() string { return StrategyWeightedRoundRobin }

func (s *WeightedRoundRobin) Select(_ *domain.PaymentRequest, candidates []ports.RouteCandidate) (ports.RouteCandidate, bool) {
	if len(candidates) == 0 {
		return ports.RouteCandidate{}, false
	}

	weights := make([]int, len(candidates))
	total := 0
	for i, c := range candidates {
		w := int(math.Round(c.Stats.SuccessRate * 100))
		if w < 1 {
			w = 1
		}
		weights[i] = w
		total += w
	}

	key := candidateSetKey(candidates)
	s.mu.Lock()
	cursor := s.cursors[key]
	s.cursors[key] = cursor + 1
	s.mu.Unlock()

	slot := cursor % total
	for i, w := range weights {
		if slot < w {
			return candidates[i], true
		}
		slot -= w
	}
	return candidates[len(candidates)-1], true
}

func candidateSetKey(candidates []ports.RouteCandidate) string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.AdapterName
	}
	return strings.Join(names, "|")
}

// LeastConnections picks the adapter with the fewest in-flight calls.
type LeastConnections struct{}

func (s *LeastConnections) Name() string { return StrategyLeastConnections }

func (s *LeastConnections) Select(_ *domain.PaymentRequest, candidates []ports.RouteCandidate) (ports.RouteCandidate, bool) {
	if len(candidates) == 0 {
		return ports.RouteCandidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Stats.ActiveConnections < best.Stats.ActiveConnections {
			best = c
		}
	}
	return best, true
}

// CostBased picks the adapter minimizing the expected fee per successful
// payment, avgCost / successRate.
type CostBased struct{}

func (s *CostBased) Name() string { return StrategyCostBased }

func (s *CostBased) Select(_ *domain.PaymentRequest, candidates []ports.RouteCandidate) (ports.RouteCandidate, bool) {
	if len(candidates) == 0 {
		return ports.RouteCandidate{}, false
	}
	best := candidates[0]
	bestScore := costScore(best.Stats)
	for _, c := range candidates[1:] {
		if score := costScore(c.Stats); score < bestScore {
			best, bestScore = c, score
		}
	}
	return best, true
}

func costScore(s ports.AdapterStats) float64 {
	return s.AvgCostCents / math.Max(s.SuccessRate, epsilon)
}

// ResponseTimeBased picks the adapter with the lowest average latency.
type ResponseTimeBased struct{}

func (s *ResponseTimeBased) Name() string { return StrategyResponseTimeBased }

func (s *ResponseTimeBased) Select(_ *domain.PaymentRequest, candidates []ports.RouteCandidate) (ports.RouteCandidate, bool) {
	if len(candidates) == 0 {
		return ports.RouteCandidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Stats.AvgLatencyMs < best.Stats.AvgLatencyMs {
			best = c
		}
	}
	return best, true
}

// Hybrid blends success rate, latency, cost and load into one score:
// 0.40*successRate + 0.30*(1 - latency/5000ms) + 0.20*(1 - cost/$1) +
// 0.10*(1 - connections/100), each term clamped to [0,1].
type Hybrid struct{}

func (s *Hybrid) Name() string { return StrategyHybrid }

func (s *Hybrid) Select(_ *domain.PaymentRequest, candidates []ports.RouteCandidate) (ports.RouteCandidate, bool) {
	if len(candidates) == 0 {
		return ports.RouteCandidate{}, false
	}
	best := candidates[0]
	bestScore := hybridScore(best.Stats)
	for _, c := range candidates[1:] {
		if score := hybridScore(c.Stats); score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, true
}

func hybridScore(s ports.AdapterStats) float64 {
	return 0.40*clamp01(s.SuccessRate) +
		0.30*clamp01(1-s.AvgLatencyMs/5000) +
		0.20*clamp01(1-s.AvgCostCents/100) +
		0.10*clamp01(1-float64(s.ActiveConnections)/100)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
