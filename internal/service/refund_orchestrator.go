package service

import (
	"context"
	"fmt"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// RefundOrchestratorImpl implements ports.RefundOrchestrator. The cumulative
// refund bound is enforced under a row lock on the payment, so concurrent
// refunds against one payment serialize.
type RefundOrchestratorImpl struct {
	registry   ports.AdapterRegistry
	txRepo     ports.TransactionRepository
	refundRepo ports.RefundRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewRefundOrchestrator creates a new RefundOrchestratorImpl.
func NewRefundOrchestrator(
	registry ports.AdapterRegistry,
	txRepo ports.TransactionRepository,
	refundRepo ports.RefundRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *RefundOrchestratorImpl {
	return &RefundOrchestratorImpl{
		registry:   registry,
		txRepo:     txRepo,
		refundRepo: refundRepo,
		transactor: transactor,
		log:        log,
	}
}

// Execute runs a refund end to end. Bound violations and adapter failures
// are refund outcomes, persisted and returned as FAILED results; only
// missing or non-refundable payments and infrastructure faults surface as
// errors.
func (s *RefundOrchestratorImpl) Execute(ctx context.Context, req *domain.RefundRequest) (*domain.RefundResult, error) {
	if req.IdempotencyKey == "" {
		return nil, apperror.Validation("idempotencyKey is required")
	}
	if req.PaymentIdempotencyKey == "" {
		return nil, apperror.Validation("paymentIdempotencyKey is required")
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return nil, apperror.Validation("amount must be positive")
	}

	// Refund idempotency, a separate key namespace from payments. The
	// durable tier is authoritative here; no fail-open shortcut.
	prior, err := s.refundRepo.GetByKey(ctx, req.IdempotencyKey)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("refund idempotency check: %w", err))
	}
	if prior != nil {
		s.log.Info().Str("refundKey", req.IdempotencyKey).Msg("idempotent refund replay, returning recorded result")
		return prior.Result(), nil
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock the payment row; every refund against this payment serializes
	// between here and commit.
	payment, err := s.txRepo.GetByKeyForUpdate(ctx, dbTx, req.PaymentIdempotencyKey)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock payment: %w", err))
	}
	if payment == nil {
		return nil, apperror.ErrPaymentNotFound(req.PaymentIdempotencyKey)
	}

	// A same-key refund may have committed while this one waited on the
	// lock; its recorded outcome wins.
	prior, err = s.refundRepo.GetByKey(ctx, req.IdempotencyKey)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("refund idempotency recheck: %w", err))
	}
	if prior != nil {
		return prior.Result(), nil
	}

	if !payment.Refundable() {
		return nil, apperror.ErrPaymentNotRefundable(string(payment.Status))
	}

	// Resolve the amount: explicit if provided, else the full payment.
	// Refunds inherit the payment currency.
	amount := payment.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}
	currency := payment.CurrencyCode
	if req.CurrencyCode != "" && req.CurrencyCode != currency {
		return nil, apperror.Validation("currencyCode does not match the original payment")
	}

	if amount.GreaterThan(payment.Amount) {
		return s.finish(ctx, dbTx, req, domain.FailedRefund(req, amount, currency,
			domain.RefundFailureAmountExceeded,
			fmt.Sprintf("Refund amount %s exceeds payment amount %s",
				amount.StringFixed(2), payment.Amount.StringFixed(2))))
	}

	already, err := s.refundRepo.SumSuccessful(ctx, dbTx, req.PaymentIdempotencyKey)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("sum refunds: %w", err))
	}
	if already.Add(amount).GreaterThan(payment.Amount) {
		return s.finish(ctx, dbTx, req, domain.FailedRefund(req, amount, currency,
			domain.RefundFailureLimitExceeded,
			fmt.Sprintf("Refund limit exceeded. Already refunded: %s, Remaining: %s",
				already.StringFixed(2), payment.Amount.Sub(already).StringFixed(2))))
	}

	adapter, ok := s.resolveAdapter(payment)
	if !ok {
		return s.finish(ctx, dbTx, req, domain.FailedRefund(req, amount, currency,
			domain.RefundFailureAdapterNotFound,
			fmt.Sprintf("No adapter available for payment processed by %q", payment.AdapterName)))
	}
	if !adapter.SupportsRefunds() {
		return s.finish(ctx, dbTx, req, domain.FailedRefund(req, amount, currency,
			domain.RefundFailureNotSupported,
			fmt.Sprintf("Adapter %s does not support refunds", adapter.AdapterName())))
	}

	res, err := adapter.Refund(ctx, req, amount)
	if err != nil {
		s.log.Warn().Err(err).
			Str("refundKey", req.IdempotencyKey).
			Str("adapter", adapter.AdapterName()).
			Msg("refund execution failed")
		return s.finish(ctx, dbTx, req, domain.FailedRefund(req, amount, currency,
			domain.RefundFailureExecution, "Refund execution failed: "+err.Error()))
	}
	if !res.WellFormed() || !res.Amount.Equal(amount) {
		return s.finish(ctx, dbTx, req, domain.FailedRefund(req, amount, currency,
			domain.RefundFailureInvalidResult, "Adapter returned malformed refund result"))
	}

	// A refund completing the full amount reverses the payment.
	if res.Status == domain.RefundStatusSuccess && already.Add(amount).Equal(payment.Amount) {
		if err := s.txRepo.UpdateStatus(ctx, dbTx, payment.IdempotencyKey, domain.PaymentStatusReversed); err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("reverse payment: %w", err))
		}
	}

	return s.finish(ctx, dbTx, req, res)
}

// resolveAdapter returns the adapter that processed the original charge,
// falling back to any adapter of the payment's provider type.
func (s *RefundOrchestratorImpl) resolveAdapter(payment *domain.PaymentTransaction) (ports.PSPAdapter, bool) {
	if payment.AdapterName != "" {
		if a, ok := s.registry.ByName(payment.AdapterName); ok {
			return a, true
		}
	}
	pool := s.registry.ByType(payment.ProviderType)
	if len(pool) == 0 {
		return nil, false
	}
	return pool[0], true
}

// finish persists the outcome inside the refund transaction and commits.
// The persist is deliberate even when the caller has gone away.
func (s *RefundOrchestratorImpl) finish(ctx context.Context, dbTx pgx.Tx, req *domain.RefundRequest, res *domain.RefundResult) (*domain.RefundResult, error) {
	persistCtx := context.WithoutCancel(ctx)
	if err := s.refundRepo.Create(persistCtx, dbTx, domain.NewRefundRecord(req, res)); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("persist refund: %w", err))
	}
	if err := dbTx.Commit(persistCtx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit refund: %w", err))
	}

	s.log.Info().
		Str("refundKey", req.IdempotencyKey).
		Str("paymentKey", req.PaymentIdempotencyKey).
		Str("status", string(res.Status)).
		Str("amount", res.Amount.StringFixed(2)).
		Msg("refund processed")
	return res, nil
}
