package memory

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"

	"github.com/rs/zerolog"
)

// redeliveryDelay separates handler retries for one event. The worker does
// not advance past a failing event until its attempts are exhausted, so
// per-key ordering survives retries.
const redeliveryDelay = 100 * time.Millisecond

// Config sizes the bus.
type Config struct {
	// Partitions is the number of worker goroutines. Events are hashed by
	// idempotency key onto a partition, which keeps per-payment order.
	Partitions int
	// Buffer is the per-partition channel capacity. A full partition drops
	// new events rather than blocking the request path.
	Buffer int
	// HandlerAttempts bounds redelivery of one event to the handler.
	HandlerAttempts int
	// AlertSink receives published alerts. Nil drops them.
	AlertSink func(*domain.RiskAlert)
}

// DefaultConfig returns the bus sizing used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Partitions:      4,
		Buffer:          256,
		HandlerAttempts: 3,
	}
}

// Bus is the in-process event log used when Kafka is disabled. It implements
// both ports.EventPublisher and ports.EventConsumer: publishes hash onto
// per-key-ordered partitions, Start drains them through the handler. Events
// still queued at shutdown are dropped.
type Bus struct {
	handler    ports.EventHandler
	cfg        Config
	partitions []chan *domain.PaymentEvent
	log        zerolog.Logger

	mu     sync.RWMutex
	closed bool

	startOnce sync.Once
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewBus creates a bus delivering payment events to handler.
func NewBus(handler ports.EventHandler, cfg Config, log zerolog.Logger) *Bus {
	if cfg.Partitions <= 0 {
		cfg.Partitions = DefaultConfig().Partitions
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultConfig().Buffer
	}
	if cfg.HandlerAttempts <= 0 {
		cfg.HandlerAttempts = DefaultConfig().HandlerAttempts
	}

	partitions := make([]chan *domain.PaymentEvent, cfg.Partitions)
	for i := range partitions {
		partitions[i] = make(chan *domain.PaymentEvent, cfg.Buffer)
	}

	return &Bus{
		handler:    handler,
		cfg:        cfg,
		partitions: partitions,
		log:        log,
	}
}

// PublishPaymentEvent enqueues the event on its key's partition. It never
// blocks: a full partition drops the event with a warning, because losing an
// event degrades risk latency but must not stall payment completion.
func (b *Bus) PublishPaymentEvent(_ context.Context, event *domain.PaymentEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}

	select {
	case b.partitions[b.partition(event.IdempotencyKey)] <- event:
	default:
		b.log.Warn().
			Str("event_id", event.EventID).
			Str("idempotency_key", event.IdempotencyKey).
			Msg("event bus: partition full, dropping event")
	}
}

// PublishAlert hands the alert to the configured sink, if any.
func (b *Bus) PublishAlert(_ context.Context, alert *domain.RiskAlert) {
	b.mu.RLock()
	closed, sink := b.closed, b.cfg.AlertSink
	b.mu.RUnlock()
	if closed {
		return
	}
	if sink == nil {
		b.log.Debug().Str("alert_id", alert.AlertID).Msg("event bus: no alert sink configured")
		return
	}
	sink(alert)
}

// Start launches one worker per partition. Workers run until the context is
// cancelled or Close drains them.
func (b *Bus) Start(ctx context.Context) error {
	b.startOnce.Do(func() {
		for i := range b.partitions {
			b.wg.Add(1)
			go b.drain(ctx, i)
		}
		b.log.Info().Int("partitions", len(b.partitions)).Msg("event bus: started")
	})
	return nil
}

// Close stops accepting publishes, lets workers finish the queued backlog
// and waits for them to exit.
func (b *Bus) Close() error {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.closed = true
		for _, ch := range b.partitions {
			close(ch)
		}
		b.mu.Unlock()

		b.wg.Wait()
		b.log.Info().Msg("event bus: stopped")
	})
	return nil
}

func (b *Bus) partition(key string) int {
	h := fnv.New32a()
	h.Write([]byte(key)) //nolint:errcheck
	return int(h.Sum32() % uint32(len(b.partitions)))
}

func (b *Bus) drain(ctx context.Context, idx int) {
	defer b.wg.Done()
	for {
		select {
		case event, ok := <-b.partitions[idx]:
			if !ok {
				return
			}
			b.deliver(ctx, event)
		case <-ctx.Done():
			return
		}
	}
}

// deliver retries the handler in place so a transient failure does not
// reorder the partition.
func (b *Bus) deliver(ctx context.Context, event *domain.PaymentEvent) {
	for attempt := 1; ; attempt++ {
		err := b.handler.HandleEvent(ctx, event)
		if err == nil {
			return
		}
		if attempt >= b.cfg.HandlerAttempts {
			b.log.Error().Err(err).
				Str("event_id", event.EventID).
				Str("idempotency_key", event.IdempotencyKey).
				Int("attempts", attempt).
				Msg("event bus: handler failed, dropping event")
			return
		}
		b.log.Warn().Err(err).
			Str("event_id", event.EventID).
			Int("attempt", attempt).
			Msg("event bus: handler failed, retrying")

		select {
		case <-time.After(redeliveryDelay):
		case <-ctx.Done():
			return
		}
	}
}
