package postgres

import (
	"context"
	"testing"
	"time"

	"payment-orchestrator/internal/core/domain"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoredRefund(key, paymentKey string) *domain.RefundRecord {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.RefundRecord{
		RefundIdempotencyKey:  key,
		PaymentIdempotencyKey: paymentKey,
		ProviderRefundID:      "stripe-card-rf-1001",
		Status:                domain.RefundStatusSuccess,
		Amount:                decimal.RequireFromString("30.00"),
		CurrencyCode:          "USD",
		Reason:                "customer request",
		MerchantReference:     "merchant-001",
		CorrelationID:         "corr-1",
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

func refundColumns() []string {
	return []string{"refund_idempotency_key", "payment_idempotency_key", "provider_refund_id",
		"status", "amount", "currency_code", "failure_code", "failure_message", "reason",
		"merchant_reference", "correlation_id", "created_at", "updated_at"}
}

func refundRow(r *domain.RefundRecord) *pgxmock.Rows {
	return pgxmock.NewRows(refundColumns()).AddRow(
		r.RefundIdempotencyKey, r.PaymentIdempotencyKey, r.ProviderRefundID,
		r.Status, r.Amount, r.CurrencyCode, r.FailureCode, r.FailureMessage,
		r.Reason, r.MerchantReference, r.CorrelationID, r.CreatedAt, r.UpdatedAt,
	)
}

func TestRefundRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRefundRepo(mock)
	rec := newStoredRefund("rf-key-1", "pay-key-1")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO refunds").
		WithArgs(
			rec.RefundIdempotencyKey, rec.PaymentIdempotencyKey, rec.ProviderRefundID,
			rec.Status, rec.Amount, rec.CurrencyCode, rec.FailureCode, rec.FailureMessage,
			rec.Reason, rec.MerchantReference, rec.CorrelationID, rec.CreatedAt, rec.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), dbTx, rec)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefundRepo_GetByKey(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRefundRepo(mock)
	rec := newStoredRefund("rf-key-1", "pay-key-1")

	mock.ExpectQuery("SELECT .+ FROM refunds WHERE refund_idempotency_key").
		WithArgs(rec.RefundIdempotencyKey).
		WillReturnRows(refundRow(rec))

	result, err := repo.GetByKey(context.Background(), rec.RefundIdempotencyKey)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, rec.RefundIdempotencyKey, result.RefundIdempotencyKey)
	assert.Equal(t, rec.PaymentIdempotencyKey, result.PaymentIdempotencyKey)
	assert.True(t, rec.Amount.Equal(result.Amount))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefundRepo_GetByKey_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRefundRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM refunds WHERE refund_idempotency_key").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(refundColumns()))

	result, err := repo.GetByKey(context.Background(), "missing-key")
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefundRepo_SumSuccessful(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRefundRepo(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COALESCE.+ FROM refunds").
		WithArgs("pay-key-1").
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).
			AddRow(decimal.RequireFromString("80.00")))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	total, err := repo.SumSuccessful(context.Background(), dbTx, "pay-key-1")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("80.00")), "got %s", total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefundRepo_SumSuccessful_NoRefunds(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRefundRepo(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COALESCE.+ FROM refunds").
		WithArgs("pay-key-1").
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.Zero))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	total, err := repo.SumSuccessful(context.Background(), dbTx, "pay-key-1")
	require.NoError(t, err)
	assert.True(t, total.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
