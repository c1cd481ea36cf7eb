package risk

import (
	"context"
	"fmt"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"

	"github.com/rs/zerolog"
)

// Pipeline is the consumer-side risk path. Each payment event is appended to
// the durable event table (whose primary key doubles as the at-least-once
// dedupe gate), folded into the aggregator windows, and scored. An emitted
// alert goes to every sink: the in-memory ring, the durable alert table, the
// webhook dispatcher and the alert topic.
//
// Only the event insert can fail the handler; everything after it is logged
// and absorbed, because a redelivered event would stop at the dedupe gate
// and the remaining sinks would never be retried anyway.
type Pipeline struct {
	events     ports.EventRepository
	aggregator *Aggregator
	engine     *Engine
	alerts     ports.AlertStore
	alertRepo  ports.AlertRepository
	dispatcher ports.AlertDispatcher
	publisher  ports.EventPublisher
	log        zerolog.Logger
}

// NewPipeline wires the risk path. events and aggregator are required;
// engine and the alert sinks may be nil, which disables them.
func NewPipeline(
	events ports.EventRepository,
	aggregator *Aggregator,
	engine *Engine,
	alerts ports.AlertStore,
	alertRepo ports.AlertRepository,
	dispatcher ports.AlertDispatcher,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) *Pipeline {
	return &Pipeline{
		events:     events,
		aggregator: aggregator,
		engine:     engine,
		alerts:     alerts,
		alertRepo:  alertRepo,
		dispatcher: dispatcher,
		publisher:  publisher,
		log:        log,
	}
}

// HandleEvent implements ports.EventHandler.
func (p *Pipeline) HandleEvent(ctx context.Context, event *domain.PaymentEvent) error {
	inserted, err := p.events.Insert(ctx, event)
	if err != nil {
		return fmt.Errorf("persist payment event: %w", err)
	}
	if !inserted {
		p.log.Debug().Str("event_id", event.EventID).Msg("risk: duplicate event, skipping")
		return nil
	}

	features := p.aggregator.Record(event)
	if p.engine == nil || len(features) == 0 {
		return nil
	}

	alert := p.engine.Evaluate(ctx, event, features)
	if alert == nil {
		return nil
	}

	if p.alerts != nil {
		p.alerts.Append(alert)
	}
	if p.alertRepo != nil {
		if err := p.alertRepo.Insert(ctx, alert); err != nil {
			p.log.Error().Err(err).Str("alert_id", alert.AlertID).Msg("risk: persist alert failed")
		}
	}
	if p.dispatcher != nil {
		p.dispatcher.Dispatch(alert)
	}
	if p.publisher != nil {
		p.publisher.PublishAlert(ctx, alert)
	}

	return nil
}
