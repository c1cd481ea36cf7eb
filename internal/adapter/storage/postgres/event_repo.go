package postgres

import (
	"context"
	"fmt"

	"payment-orchestrator/internal/core/domain"
)

// EventRepo implements ports.EventRepository on the append-only
// payment_events table.
type EventRepo struct {
	pool Pool
}

// NewEventRepo creates a new EventRepo.
func NewEventRepo(pool Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

// Insert appends the event. The event ID is the primary key, so a replayed
// delivery of the same event inserts nothing and reports false.
func (r *EventRepo) Insert(ctx context.Context, event *domain.PaymentEvent) (bool, error) {
	query := `INSERT INTO payment_events (event_id, idempotency_key, correlation_id, event_type,
		provider_type, provider_transaction_id, status, amount, currency_code, failure_code, message,
		merchant_reference, customer_id, email, client_ip, card_fingerprint, card_bin, card_last4, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (event_id) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query,
		event.EventID, event.IdempotencyKey, event.CorrelationID, event.EventType,
		event.ProviderType, event.ProviderTransactionID, event.Status, event.Amount, event.CurrencyCode,
		event.FailureCode, event.Message, event.MerchantReference, event.CustomerID,
		event.Email, event.ClientIP, event.CardFingerprint, event.CardBin, event.CardLast4, event.Timestamp,
	)
	if err != nil {
		return false, fmt.Errorf("insert payment event: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
