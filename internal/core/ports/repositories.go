package ports

import (
	"context"

	"payment-orchestrator/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionRepository is the durable tier of payment idempotency.
// Lookups return (nil, nil) when no record exists.
type TransactionRepository interface {
	// Create inserts the record, tolerating a concurrent insert of the same
	// idempotency key. When another writer won the race, the stored record
	// is returned so callers converge on a single outcome.
	Create(ctx context.Context, record *domain.PaymentTransaction) (*domain.PaymentTransaction, error)
	GetByKey(ctx context.Context, idempotencyKey string) (*domain.PaymentTransaction, error)
	// GetByKeyForUpdate locks the payment row for the duration of tx.
	// Refund flows serialize on this lock.
	GetByKeyForUpdate(ctx context.Context, tx pgx.Tx, idempotencyKey string) (*domain.PaymentTransaction, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, idempotencyKey string, status domain.PaymentStatus) error
}

// RefundRepository persists refund outcomes. All writes happen inside the
// refund's database transaction so the cumulative bound stays serialized
// with the payment row lock.
type RefundRepository interface {
	Create(ctx context.Context, tx pgx.Tx, record *domain.RefundRecord) error
	GetByKey(ctx context.Context, refundIdempotencyKey string) (*domain.RefundRecord, error)
	// SumSuccessful returns the total of SUCCESS refund amounts recorded
	// against the payment key, 0 when none exist.
	SumSuccessful(ctx context.Context, tx pgx.Tx, paymentIdempotencyKey string) (decimal.Decimal, error)
}

// EventRepository is the durable payment event table.
type EventRepository interface {
	// Insert appends the event. Returns false without error when the event
	// ID was already present (at-least-once delivery replay).
	Insert(ctx context.Context, event *domain.PaymentEvent) (bool, error)
}

// AlertRepository is the durable risk alert table, including the signal-set
// and related-event child rows.
type AlertRepository interface {
	Insert(ctx context.Context, alert *domain.RiskAlert) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
