package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payment-orchestrator/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository on the
// payment_transactions table, one row per idempotency key.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts the payment record. A concurrent insert of the same
// idempotency key is not an error: the insert is skipped and the row the
// other writer stored is read back, so callers converge on one outcome.
func (r *TransactionRepo) Create(ctx context.Context, record *domain.PaymentTransaction) (*domain.PaymentTransaction, error) {
	query := `INSERT INTO payment_transactions (idempotency_key, transaction_id, merchant_reference, customer_id,
		amount, currency_code, provider_type, provider_transaction_id, status, failure_code, failure_message,
		correlation_id, adapter_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (idempotency_key) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query,
		record.IdempotencyKey, record.TransactionID, record.MerchantReference, record.CustomerID,
		record.Amount, record.CurrencyCode, record.ProviderType, record.ProviderTransactionID,
		record.Status, record.FailureCode, record.FailureMessage,
		record.CorrelationID, record.AdapterName, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert payment transaction: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return record, nil
	}

	stored, err := r.GetByKey(ctx, record.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("payment transaction missing after conflicting insert: %s", record.IdempotencyKey)
	}
	return stored, nil
}

// GetByKey fetches the payment record for an idempotency key, nil if none.
func (r *TransactionRepo) GetByKey(ctx context.Context, idempotencyKey string) (*domain.PaymentTransaction, error) {
	query := `SELECT idempotency_key, transaction_id, merchant_reference, customer_id,
		amount, currency_code, provider_type, provider_transaction_id, status, failure_code, failure_message,
		correlation_id, adapter_name, created_at, updated_at
		FROM payment_transactions WHERE idempotency_key = $1`

	return r.scanTransaction(r.pool.QueryRow(ctx, query, idempotencyKey))
}

// GetByKeyForUpdate fetches the payment record holding a row lock for the
// duration of tx. Refund flows serialize on this lock.
func (r *TransactionRepo) GetByKeyForUpdate(ctx context.Context, tx pgx.Tx, idempotencyKey string) (*domain.PaymentTransaction, error) {
	query := `SELECT idempotency_key, transaction_id, merchant_reference, customer_id,
		amount, currency_code, provider_type, provider_transaction_id, status, failure_code, failure_message,
		correlation_id, adapter_name, created_at, updated_at
		FROM payment_transactions WHERE idempotency_key = $1 FOR UPDATE`

	return r.scanTransaction(tx.QueryRow(ctx, query, idempotencyKey))
}

// UpdateStatus updates the payment's status within a database transaction.
func (r *TransactionRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, idempotencyKey string, status domain.PaymentStatus) error {
	now := time.Now().UTC()
	query := `UPDATE payment_transactions SET status = $1, updated_at = $2 WHERE idempotency_key = $3`

	tag, err := tx.Exec(ctx, query, status, now, idempotencyKey)
	if err != nil {
		return fmt.Errorf("update payment transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment transaction not found: %s", idempotencyKey)
	}
	return nil
}

// scanTransaction is a helper to scan a single row into a PaymentTransaction.
func (r *TransactionRepo) scanTransaction(row pgx.Row) (*domain.PaymentTransaction, error) {
	t := &domain.PaymentTransaction{}
	err := row.Scan(
		&t.IdempotencyKey, &t.TransactionID, &t.MerchantReference, &t.CustomerID,
		&t.Amount, &t.CurrencyCode, &t.ProviderType, &t.ProviderTransactionID,
		&t.Status, &t.FailureCode, &t.FailureMessage,
		&t.CorrelationID, &t.AdapterName, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan payment transaction: %w", err)
	}
	return t, nil
}
