package postgres

import (
	"context"
	"errors"
	"fmt"

	"payment-orchestrator/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// RefundRepo implements ports.RefundRepository on the refunds table, one row
// per refund idempotency key.
type RefundRepo struct {
	pool Pool
}

// NewRefundRepo creates a new RefundRepo.
func NewRefundRepo(pool Pool) *RefundRepo {
	return &RefundRepo{pool: pool}
}

// Create inserts a refund record within a database transaction.
func (r *RefundRepo) Create(ctx context.Context, tx pgx.Tx, record *domain.RefundRecord) error {
	query := `INSERT INTO refunds (refund_idempotency_key, payment_idempotency_key, provider_refund_id,
		status, amount, currency_code, failure_code, failure_message, reason, merchant_reference,
		correlation_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := tx.Exec(ctx, query,
		record.RefundIdempotencyKey, record.PaymentIdempotencyKey, record.ProviderRefundID,
		record.Status, record.Amount, record.CurrencyCode, record.FailureCode, record.FailureMessage,
		record.Reason, record.MerchantReference, record.CorrelationID, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert refund: %w", err)
	}
	return nil
}

// GetByKey fetches the refund record for a refund idempotency key, nil if
// none.
func (r *RefundRepo) GetByKey(ctx context.Context, refundIdempotencyKey string) (*domain.RefundRecord, error) {
	query := `SELECT refund_idempotency_key, payment_idempotency_key, provider_refund_id,
		status, amount, currency_code, failure_code, failure_message, reason, merchant_reference,
		correlation_id, created_at, updated_at
		FROM refunds WHERE refund_idempotency_key = $1`

	rec := &domain.RefundRecord{}
	err := r.pool.QueryRow(ctx, query, refundIdempotencyKey).Scan(
		&rec.RefundIdempotencyKey, &rec.PaymentIdempotencyKey, &rec.ProviderRefundID,
		&rec.Status, &rec.Amount, &rec.CurrencyCode, &rec.FailureCode, &rec.FailureMessage,
		&rec.Reason, &rec.MerchantReference, &rec.CorrelationID, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get refund: %w", err)
	}
	return rec, nil
}

// SumSuccessful totals the SUCCESS refund amounts recorded against the
// payment key. Runs inside tx so the bound check is serialized with the
// payment row lock.
func (r *RefundRepo) SumSuccessful(ctx context.Context, tx pgx.Tx, paymentIdempotencyKey string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM refunds
		WHERE payment_idempotency_key = $1 AND status = 'SUCCESS'`

	var total decimal.Decimal
	err := tx.QueryRow(ctx, query, paymentIdempotencyKey).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum successful refunds: %w", err)
	}
	return total, nil
}
