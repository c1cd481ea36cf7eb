package service

import (
	"context"
	"time"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"

	"github.com/rs/zerolog"
)

// DefaultIdempotencyTTL bounds how long the hot tier remembers a result.
// The durable tier remembers forever.
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStoreImpl implements ports.IdempotencyStore over a Redis hot
// tier and the durable transaction table. Reads are fail-open: a tier
// failure is logged as degraded mode and treated as a miss.
type IdempotencyStoreImpl struct {
	cache  ports.IdempotencyCache
	txRepo ports.TransactionRepository
	ttl    time.Duration
	log    zerolog.Logger
}

// NewIdempotencyStore creates a new IdempotencyStoreImpl. A non-positive
// ttl falls back to DefaultIdempotencyTTL.
func NewIdempotencyStore(
	cache ports.IdempotencyCache,
	txRepo ports.TransactionRepository,
	ttl time.Duration,
	log zerolog.Logger,
) *IdempotencyStoreImpl {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyStoreImpl{
		cache:  cache,
		txRepo: txRepo,
		ttl:    ttl,
		log:    log,
	}
}

// GetCachedPayment returns the prior result for the key, or nil on miss.
func (s *IdempotencyStoreImpl) GetCachedPayment(ctx context.Context, key string) *domain.PaymentResult {
	// Layer 1: Redis hot tier
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("hot idempotency tier unavailable, degraded mode")
	}
	if cached != nil {
		res, err := domain.DecodeCachedResult(cached)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("corrupted cached result, treating as miss")
		} else {
			return res
		}
	}

	// Layer 2: durable tier
	rec, err := s.txRepo.GetByKey(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("durable idempotency check failed, degraded mode")
		return nil
	}
	if rec == nil {
		return nil
	}

	res := rec.Result()
	if !res.WellFormed() {
		s.log.Warn().Str("key", key).Msg("malformed durable result, treating as miss")
		return nil
	}
	s.refreshHotTier(ctx, key, res)
	return res
}

// StorePayment persists the result in both tiers. The durable write is
// authoritative: when a concurrent store already created the row, the
// existing row's result is returned instead of res. The returned result is
// always usable even when err is non-nil.
func (s *IdempotencyStoreImpl) StorePayment(ctx context.Context, req *domain.PaymentRequest, res *domain.PaymentResult) (*domain.PaymentResult, error) {
	final := res

	stored, err := s.txRepo.Create(ctx, domain.NewPaymentTransaction(req, res))
	if err != nil {
		s.log.Error().Err(err).Str("key", req.IdempotencyKey).Msg("durable persist failed, hot tier still protects the key")
	} else if stored != nil {
		final = stored.Result()
	}

	s.refreshHotTier(ctx, req.IdempotencyKey, final)
	return final, err
}

// refreshHotTier writes the result into the cache, best-effort.
func (s *IdempotencyStoreImpl) refreshHotTier(ctx context.Context, key string, res *domain.PaymentResult) {
	payload, err := domain.EncodeCachedResult(res)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to encode result for hot tier")
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to refresh hot idempotency tier")
	}
}
