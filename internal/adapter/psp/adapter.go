package psp

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"payment-orchestrator/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Provider payload keys a card adapter reads for card identity. Values are
// passed through untouched; adapters never mutate the request.
const (
	payloadCardBin         = "cardBin"
	payloadCardLast4       = "cardLast4"
	payloadCardFingerprint = "cardFingerprint"
)

// Profile shapes a simulated provider's behavior.
type Profile struct {
	// BaseLatency and Jitter bound the simulated processing time.
	BaseLatency time.Duration
	Jitter      time.Duration
	// ErrorRate is the fraction of calls failing with a transport error
	// (retryable); DeclineRate the fraction declined permanently.
	ErrorRate   float64
	DeclineRate float64
	// CostCents is the flat per-call provider fee.
	CostCents int64
	// SupportsRefunds declares the refund capability.
	SupportsRefunds bool
	// Seed fixes the randomness for reproducible runs; 0 seeds from the
	// clock.
	Seed int64
}

// declineCodes are rotated through for simulated permanent declines.
var declineCodes = []string{"card_declined", "insufficient_funds", "do_not_honor", "expired_card"}

// Simulated is a PSP adapter that emulates an external provider in-process.
// One instance per provider identity; safe for concurrent use.
type Simulated struct {
	name         string
	providerType domain.ProviderType
	profile      Profile
	log          zerolog.Logger

	mu      sync.Mutex
	rng     *rand.Rand
	healthy bool
}

// NewSimulated creates a simulated adapter with the given stable identity.
func NewSimulated(name string, providerType domain.ProviderType, profile Profile, log zerolog.Logger) *Simulated {
	seed := profile.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulated{
		name:         name,
		providerType: providerType,
		profile:      profile,
		log:          log.With().Str("adapter", name).Logger(),
		rng:          rand.New(rand.NewSource(seed)),
		healthy:      true,
	}
}

func (a *Simulated) AdapterName() string               { return a.name }
func (a *Simulated) ProviderType() domain.ProviderType { return a.providerType }
func (a *Simulated) SupportsRefunds() bool             { return a.profile.SupportsRefunds }

// IsHealthy reports the adapter's own health signal, independent of the
// circuit breaker state.
func (a *Simulated) IsHealthy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.healthy
}

// SetHealthy toggles the health signal. Used by local chaos testing.
func (a *Simulated) SetHealthy(h bool) {
	a.mu.Lock()
	a.healthy = h
	a.mu.Unlock()
}

// Execute simulates a charge. Transport errors and context expiry surface
// as errors; permanent declines return a FAILED result with a provider
// failure code.
func (a *Simulated) Execute(ctx context.Context, req *domain.PaymentRequest) (*domain.PaymentResult, error) {
	if err := a.simulateLatency(ctx); err != nil {
		return nil, err
	}

	roll, declineIdx := a.roll()
	if roll < a.profile.ErrorRate {
		a.log.Debug().Str("key", req.IdempotencyKey).Msg("simulated transport error")
		return nil, fmt.Errorf("%s: provider unreachable", a.name)
	}

	res := &domain.PaymentResult{
		IdempotencyKey: req.IdempotencyKey,
		Status:         domain.PaymentStatusSuccess,
		Amount:         req.Amount,
		CurrencyCode:   req.CurrencyCode,
		Timestamp:      time.Now().UTC(),
		Metadata: map[string]string{
			domain.MetaCostCents: strconv.FormatInt(a.profile.CostCents, 10),
		},
	}

	if roll < a.profile.ErrorRate+a.profile.DeclineRate {
		code := declineCodes[declineIdx%len(declineCodes)]
		res.Status = domain.PaymentStatusFailed
		res.FailureCode = code
		res.Message = fmt.Sprintf("Declined by %s: %s", a.name, code)
		a.attachCardIdentity(req, res)
		return res, nil
	}

	res.ProviderTransactionID = fmt.Sprintf("%s-%d", a.name, a.nextID())
	res.Message = fmt.Sprintf("Approved by %s", a.name)
	a.attachCardIdentity(req, res)
	return res, nil
}

// Refund simulates a refund of a prior charge for the resolved amount.
func (a *Simulated) Refund(ctx context.Context, req *domain.RefundRequest, amount decimal.Decimal) (*domain.RefundResult, error) {
	if !a.profile.SupportsRefunds {
		return nil, fmt.Errorf("%s: refunds not supported", a.name)
	}
	if err := a.simulateLatency(ctx); err != nil {
		return nil, err
	}

	roll, _ := a.roll()
	if roll < a.profile.ErrorRate {
		a.log.Debug().Str("refundKey", req.IdempotencyKey).Msg("simulated refund transport error")
		return nil, fmt.Errorf("%s: provider unreachable", a.name)
	}

	return &domain.RefundResult{
		IdempotencyKey:        req.IdempotencyKey,
		PaymentIdempotencyKey: req.PaymentIdempotencyKey,
		ProviderRefundID:      fmt.Sprintf("%s-rf-%d", a.name, a.nextID()),
		Status:                domain.RefundStatusSuccess,
		Amount:                amount,
		CurrencyCode:          req.CurrencyCode,
		Message:               fmt.Sprintf("Refunded by %s", a.name),
		Timestamp:             time.Now().UTC(),
	}, nil
}

// simulateLatency waits the profiled processing time. Context expiry during
// the wait is the provider timing out.
func (a *Simulated) simulateLatency(ctx context.Context) error {
	d := a.profile.BaseLatency
	if a.profile.Jitter > 0 {
		a.mu.Lock()
		d += time.Duration(a.rng.Int63n(int64(a.profile.Jitter)))
		a.mu.Unlock()
	}
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s: call timed out: %w", a.name, ctx.Err())
	}
}

func (a *Simulated) roll() (float64, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rng.Float64(), a.rng.Intn(len(declineCodes))
}

func (a *Simulated) nextID() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rng.Int63n(1_000_000_000)
}

// attachCardIdentity passes card identity from the provider payload to the
// result for card adapters. BNPL and wallet providers carry none.
func (a *Simulated) attachCardIdentity(req *domain.PaymentRequest, res *domain.PaymentResult) {
	if a.providerType != domain.ProviderTypeCard || req.ProviderPayload == nil {
		return
	}
	res.CardBin = req.ProviderPayload[payloadCardBin]
	res.CardLast4 = req.ProviderPayload[payloadCardLast4]
	res.CardFingerprint = req.ProviderPayload[payloadCardFingerprint]
}
