package routing

import (
	"testing"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(name string, stats ports.AdapterStats) ports.RouteCandidate {
	return ports.RouteCandidate{
		AdapterName:  name,
		ProviderType: domain.ProviderTypeCard,
		Stats:        stats,
	}
}

func TestNewStrategyResolvesAllNames(t *testing.T) {
	for _, name := range []string{
		StrategyWeightedRoundRobin,
		StrategyLeastConnections,
		StrategyCostBased,
		StrategyResponseTimeBased,
		StrategyHybrid,
	} {
		s, err := NewStrategy(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}

	_, err := NewStrategy("random")
	require.Error(t, err)
}

func TestStrategiesRejectEmptyCandidates(t *testing.T) {
	for _, s := range []ports.RoutingStrategy{
		NewWeightedRoundRobin(),
		&LeastConnections{},
		&CostBased{},
		&ResponseTimeBased{},
		&Hybrid{},
	} {
		_, ok := s.Select(nil, nil)
		assert.False(t, ok, s.Name())
	}
}

func TestWeightedRoundRobinAlternatesOnEqualWeights(t *testing.T) {
	s := NewWeightedRoundRobin()
	candidates := []ports.RouteCandidate{
		candidate("a", ports.AdapterStats{}),
		candidate("b", ports.AdapterStats{}),
	}

	var picks []string
	for i := 0; i < 4; i++ {
		c, ok := s.Select(nil, candidates)
		require.True(t, ok)
		picks = append(picks, c.AdapterName)
	}

	assert.Equal(t, []string{"a", "b", "a", "b"}, picks)
}

func TestWeightedRoundRobinFavorsHighSuccessRate(t *testing.T) {
	s := NewWeightedRoundRobin()
	candidates := []ports.RouteCandidate{
		candidate("good", ports.AdapterStats{TotalCalls: 100, SuccessRate: 1.0}),
		candidate("bad", ports.AdapterStats{TotalCalls: 100, SuccessRate: 0.0}),
	}

	counts := map[string]int{}
	for i := 0; i < 101; i++ {
		c, ok := s.Select(nil, candidates)
		require.True(t, ok)
		counts[c.AdapterName]++
	}

	// Weights are 100 and 1, so one full rotation picks good 100 times.
	assert.Equal(t, 100, counts["good"])
	assert.Equal(t, 1, counts["bad"])
}

func TestWeightedRoundRobinCursorPerCandidateSet(t *testing.T) {
	s := NewWeightedRoundRobin()
	setAB := []ports.RouteCandidate{
		candidate("a", ports.AdapterStats{}),
		candidate("b", ports.AdapterStats{}),
	}
	setBC := []ports.RouteCandidate{
		candidate("b", ports.AdapterStats{}),
		candidate("c", ports.AdapterStats{}),
	}

	first, _ := s.Select(nil, setAB)
	assert.Equal(t, "a", first.AdapterName)

	// A different candidate set starts its own rotation.
	first, _ = s.Select(nil, setBC)
	assert.Equal(t, "b", first.AdapterName)
}

func TestLeastConnectionsPicksMin(t *testing.T) {
	s := &LeastConnections{}
	c, ok := s.Select(nil, []ports.RouteCandidate{
		candidate("busy", ports.AdapterStats{ActiveConnections: 9}),
		candidate("idle", ports.AdapterStats{ActiveConnections: 1}),
		candidate("also-idle", ports.AdapterStats{ActiveConnections: 1}),
	})

	require.True(t, ok)
	assert.Equal(t, "idle", c.AdapterName)
}

func TestCostBasedPenalizesLowSuccessRate(t *testing.T) {
	s := &CostBased{}
	// 10c at full success beats 5c at 5% success (5/0.05 = 100).
	c, ok := s.Select(nil, []ports.RouteCandidate{
		candidate("cheap-flaky", ports.AdapterStats{AvgCostCents: 5, SuccessRate: 0.05}),
		candidate("reliable", ports.AdapterStats{AvgCostCents: 10, SuccessRate: 1.0}),
	})

	require.True(t, ok)
	assert.Equal(t, "reliable", c.AdapterName)
}

func TestCostBasedZeroSuccessRateStaysFinite(t *testing.T) {
	s := &CostBased{}
	c, ok := s.Select(nil, []ports.RouteCandidate{
		candidate("dead", ports.AdapterStats{AvgCostCents: 10, SuccessRate: 0}),
		candidate("alive", ports.AdapterStats{AvgCostCents: 30, SuccessRate: 1.0}),
	})

	require.True(t, ok)
	assert.Equal(t, "alive", c.AdapterName)
}

func TestResponseTimeBasedPicksFastest(t *testing.T) {
	s := &ResponseTimeBased{}
	c, ok := s.Select(nil, []ports.RouteCandidate{
		candidate("slow", ports.AdapterStats{AvgLatencyMs: 900}),
		candidate("fast", ports.AdapterStats{AvgLatencyMs: 80}),
	})

	require.True(t, ok)
	assert.Equal(t, "fast", c.AdapterName)
}

func TestHybridBlendsAllSignals(t *testing.T) {
	s := &Hybrid{}
	c, ok := s.Select(nil, []ports.RouteCandidate{
		candidate("strong", ports.AdapterStats{
			SuccessRate:       1.0,
			AvgLatencyMs:      100,
			AvgCostCents:      10,
			ActiveConnections: 1,
		}),
		candidate("weak", ports.AdapterStats{
			SuccessRate:       0.5,
			AvgLatencyMs:      2500,
			AvgCostCents:      50,
			ActiveConnections: 50,
		}),
	})

	require.True(t, ok)
	assert.Equal(t, "strong", c.AdapterName)
}

func TestHybridClampsExtremeTerms(t *testing.T) {
	// Latency beyond 5s and cost beyond $1 clamp to zero contribution
	// instead of going negative.
	worst := hybridScore(ports.AdapterStats{
		SuccessRate:       0,
		AvgLatencyMs:      60000,
		AvgCostCents:      500,
		ActiveConnections: 400,
	})
	assert.Equal(t, 0.0, worst)

	best := hybridScore(ports.AdapterStats{
		SuccessRate:       1.0,
		AvgLatencyMs:      0,
		AvgCostCents:      0,
		ActiveConnections: 0,
	})
	assert.InDelta(t, 1.0, best, 1e-9)
}

func TestTiesBreakToFirstCandidate(t *testing.T) {
	equal := ports.AdapterStats{SuccessRate: 0.9, AvgLatencyMs: 100, AvgCostCents: 10, ActiveConnections: 2}
	candidates := []ports.RouteCandidate{
		candidate("first", equal),
		candidate("second", equal),
	}

	for _, s := range []ports.RoutingStrategy{
		&LeastConnections{},
		&CostBased{},
		&ResponseTimeBased{},
		&Hybrid{},
	} {
		c, ok := s.Select(nil, candidates)
		require.True(t, ok, s.Name())
		assert.Equal(t, "first", c.AdapterName, s.Name())
	}
}
