package postgres

import (
	"context"
	"fmt"

	"payment-orchestrator/internal/core/domain"
)

// AlertRepo implements ports.AlertRepository on the risk_alerts table plus
// its signal-set and related-event child tables.
type AlertRepo struct {
	pool Pool
}

// NewAlertRepo creates a new AlertRepo.
func NewAlertRepo(pool Pool) *AlertRepo {
	return &AlertRepo{pool: pool}
}

// Insert writes the alert and its child rows in one database transaction.
func (r *AlertRepo) Insert(ctx context.Context, alert *domain.RiskAlert) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin alert insert: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	query := `INSERT INTO risk_alerts (alert_id, created_at, level, risk_score, entity_id, entity_type,
		amount, currency_code, summary, detailed_explanation, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = tx.Exec(ctx, query,
		alert.AlertID, alert.Timestamp, alert.Level, alert.RiskScore, alert.EntityID, alert.EntityType,
		alert.Amount, alert.CurrencyCode, alert.Summary, alert.DetailedExplanation, domain.AlertStatusNew,
	)
	if err != nil {
		return fmt.Errorf("insert risk alert: %w", err)
	}

	for _, signal := range alert.SignalTypes {
		_, err = tx.Exec(ctx,
			`INSERT INTO risk_alert_signals (alert_id, signal_type) VALUES ($1, $2)`,
			alert.AlertID, signal,
		)
		if err != nil {
			return fmt.Errorf("insert alert signal: %w", err)
		}
	}

	for _, eventID := range alert.RelatedEventIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO risk_alert_events (alert_id, event_id) VALUES ($1, $2)`,
			alert.AlertID, eventID,
		)
		if err != nil {
			return fmt.Errorf("insert alert related event: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit alert insert: %w", err)
	}
	return nil
}
