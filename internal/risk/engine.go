package risk

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"payment-orchestrator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ModelScorer asks an external model for a risk score. The boolean is false
// on any miss (timeout, transport error, malformed or out-of-range reply);
// a miss silently degrades the dimension to rule-only scoring.
type ModelScorer interface {
	Score(ctx context.Context, features domain.WindowFeatures) (float64, bool)
}

// EngineConfig holds the rule thresholds.
type EngineConfig struct {
	FailureRate  float64 // minimum failure rate for the failure-rate signals
	Velocity1Min int     // 1-minute count for the velocity-by-count signals
	AlertScore   float64 // emission gate on the final score
}

// DefaultEngineConfig returns the stock thresholds.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		FailureRate:  0.5,
		Velocity1Min: 10,
		AlertScore:   0.3,
	}
}

// Engine scores one event against the feature vectors of its dimensions.
// The final score is the maximum dimension score; the signal set is the
// union across dimensions. A configured model replaces the rule score for
// the MERCHANT dimension only.
type Engine struct {
	cfg   EngineConfig
	model ModelScorer // nil when model scoring is disabled
	log   zerolog.Logger
}

// NewEngine creates an engine. model may be nil.
func NewEngine(cfg EngineConfig, model ModelScorer, log zerolog.Logger) *Engine {
	return &Engine{cfg: cfg, model: model, log: log}
}

type dimensionScore struct {
	features domain.WindowFeatures
	signals  []domain.SignalType
	score    float64
	viaModel bool
}

// Evaluate returns an alert when the combined signal set is non-empty and
// the final score clears the emission gate, nil otherwise.
func (e *Engine) Evaluate(ctx context.Context, event *domain.PaymentEvent, features []domain.WindowFeatures) *domain.RiskAlert {
	if len(features) == 0 {
		return nil
	}

	currentAmount, _ := event.Amount.Float64()

	dimensions := make([]dimensionScore, 0, len(features))
	for _, f := range features {
		d := dimensionScore{features: f}
		d.signals, d.score = e.scoreRules(f, currentAmount)

		if f.EntityType == domain.EntityTypeMerchant && e.model != nil {
			if modelScore, ok := e.model.Score(ctx, f); ok {
				d.score = modelScore
				d.viaModel = true
			}
		}
		dimensions = append(dimensions, d)
	}

	var (
		union      []domain.SignalType
		seen       = map[domain.SignalType]bool{}
		primary    dimensionScore
		havePrime  bool
		emailFired bool
		ipFired    bool
	)
	for _, d := range dimensions {
		for _, s := range d.signals {
			if !seen[s] {
				seen[s] = true
				union = append(union, s)
			}
		}
		if len(d.signals) > 0 {
			switch d.features.EntityType {
			case domain.EntityTypeEmail:
				emailFired = true
			case domain.EntityTypeIP:
				ipFired = true
			}
		}
		if !havePrime || d.score > primary.score {
			primary = d
			havePrime = true
		}
	}

	if len(union) == 0 || primary.score < e.cfg.AlertScore {
		return nil
	}

	alert := &domain.RiskAlert{
		AlertID:             uuid.New().String(),
		Timestamp:           time.Now().UTC(),
		Level:               domain.LevelForScore(primary.score),
		SignalTypes:         union,
		RiskScore:           primary.score,
		EntityID:            primary.features.EntityID,
		EntityType:          primary.features.EntityType,
		RelatedEventIDs:     []string{event.EventID},
		Amount:              event.Amount,
		CurrencyCode:        event.CurrencyCode,
		Summary:             buildSummary(primary, union, emailFired, ipFired),
		DetailedExplanation: buildExplanation(dimensions),
	}

	e.log.Info().
		Str("alert_id", alert.AlertID).
		Str("entity_type", string(alert.EntityType)).
		Str("entity_id", alert.EntityID).
		Float64("risk_score", alert.RiskScore).
		Str("level", string(alert.Level)).
		Msg("risk alert emitted")

	return alert
}

// scoreRules applies the signal predicates to one dimension's features and
// returns the fired signals with the maximum of their contributions.
func (e *Engine) scoreRules(f domain.WindowFeatures, currentAmount float64) ([]domain.SignalType, float64) {
	var (
		signals []domain.SignalType
		score   float64
	)

	if f.FailureRate >= e.cfg.FailureRate {
		signals = append(signals, failureRateSignal(f.EntityType))
		score = math.Max(score, 0.4+0.4*f.FailureRate)
	}

	if f.FailureCount >= 3 && f.TotalCount <= 10 {
		signals = append(signals, domain.SignalRepeatedFailures)
		score = math.Max(score, 0.5)
	}

	byCount := f.CountLast1Min >= e.cfg.Velocity1Min
	byGap := f.TotalCount >= 3 &&
		f.SecondsSinceLastTransaction > 0 && f.SecondsSinceLastTransaction < 5 &&
		f.AvgTimeGapSeconds < 3
	if byCount || byGap {
		signals = append(signals, velocitySignal(f.EntityType))
		if byCount {
			score = math.Max(score, 0.3+math.Min(0.4, float64(f.CountLast1Min)/50))
		}
		if byGap {
			score = math.Max(score, 0.35+math.Min(0.15, (5-f.AvgTimeGapSeconds)/10))
		}
	}

	if f.TotalCount >= 3 && f.AvgAmount > 0 && currentAmount/f.AvgAmount >= 2.0 {
		signals = append(signals, domain.SignalUnusualAmount)
		score = math.Max(score, 0.35)
	}

	if f.TotalCount >= 3 && f.IncreasingAmountCount >= 2 && f.AmountTrend > 0 {
		signals = append(signals, domain.SignalComplianceAnomaly)
		score = math.Max(score, 0.5+math.Min(0.2, 0.05*float64(f.IncreasingAmountCount)))
	}

	return signals, score
}

func failureRateSignal(t domain.EntityType) domain.SignalType {
	switch t {
	case domain.EntityTypeEmail:
		return domain.SignalHighEmailFailureRate
	case domain.EntityTypeIP:
		return domain.SignalHighIPFailureRate
	default:
		return domain.SignalHighFailureRate
	}
}

func velocitySignal(t domain.EntityType) domain.SignalType {
	switch t {
	case domain.EntityTypeEmail:
		return domain.SignalHighEmailVelocity
	case domain.EntityTypeIP:
		return domain.SignalHighIPVelocity
	default:
		return domain.SignalHighVelocity
	}
}

func buildSummary(primary dimensionScore, union []domain.SignalType, emailFired, ipFired bool) string {
	method := "rules"
	if primary.viaModel {
		method = "ML"
	}

	names := make([]string, len(union))
	for i, s := range union {
		names[i] = string(s)
	}

	summary := fmt.Sprintf("%s: %s %s flagged %s (failure rate %.0f%%, %d tx last 1m)",
		method,
		primary.features.EntityType,
		primary.features.EntityID,
		strings.Join(names, ", "),
		primary.features.FailureRate*100,
		primary.features.CountLast1Min,
	)
	if emailFired {
		summary += " [email cross-type]"
	}
	if ipFired {
		summary += " [IP cross-type]"
	}
	return summary
}

func buildExplanation(dimensions []dimensionScore) string {
	lines := make([]string, 0, len(dimensions))
	for _, d := range dimensions {
		method := "rules"
		if d.viaModel {
			method = "ML"
		}
		line := fmt.Sprintf("%s %s: score %.2f (%s)",
			d.features.EntityType, d.features.EntityID, d.score, method)
		if len(d.signals) > 0 {
			names := make([]string, len(d.signals))
			for i, s := range d.signals {
				names[i] = string(s)
			}
			line += ", signals " + strings.Join(names, ", ")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
