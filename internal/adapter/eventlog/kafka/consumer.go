package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"payment-orchestrator/config"
	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
)

// Consumer reads the payment topic through a consumer group and drives the
// event handler. Offsets are committed manually after each successfully
// handled message, so a handler error leaves the message uncommitted and it
// is redelivered after a restart or rebalance (at-least-once).
type Consumer struct {
	group   sarama.ConsumerGroup
	handler ports.EventHandler
	topic   string
	groupID string
	log     zerolog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewConsumer joins the configured consumer group.
func NewConsumer(cfg config.KafkaConfig, handler ports.EventHandler, log zerolog.Logger) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V2_1_0_0
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{
		sarama.NewBalanceStrategyRoundRobin(),
	}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = false

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer group: %w", err)
	}

	return &Consumer{
		group:   group,
		handler: handler,
		topic:   cfg.PaymentTopic,
		groupID: cfg.ConsumerGroup,
		log:     log,
	}, nil
}

// Start begins consuming. It returns immediately; the claims are drained on
// background goroutines until ctx is cancelled or Close is called.
func (c *Consumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		handler := &groupHandler{handler: c.handler, log: c.log}
		topics := []string{c.topic}

		for {
			// Consume blocks for one session; a rebalance ends the session
			// and the loop joins the next one.
			if err := c.group.Consume(ctx, topics, handler); err != nil {
				c.log.Error().Err(err).Str("group", c.groupID).Msg("kafka: consume session failed")
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case err, ok := <-c.group.Errors():
				if !ok {
					return
				}
				c.log.Error().Err(err).Str("group", c.groupID).Msg("kafka: consumer group error")
			case <-ctx.Done():
				return
			}
		}
	}()

	c.log.Info().Str("group", c.groupID).Str("topic", c.topic).Msg("kafka: consumer started")
	return nil
}

// Close leaves the group and waits for the session goroutines to exit.
func (c *Consumer) Close() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()

	if err := c.group.Close(); err != nil {
		return fmt.Errorf("close kafka consumer group: %w", err)
	}
	c.log.Info().Str("group", c.groupID).Msg("kafka: consumer stopped")
	return nil
}

// groupHandler implements sarama.ConsumerGroupHandler.
type groupHandler struct {
	handler ports.EventHandler
	log     zerolog.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			var event domain.PaymentEvent
			if err := json.Unmarshal(message.Value, &event); err != nil {
				// A poison message would wedge the partition if redelivered
				// forever; skip it.
				h.log.Error().Err(err).
					Int64("offset", message.Offset).
					Int32("partition", message.Partition).
					Msg("kafka: malformed payment event, skipping")
				session.MarkMessage(message, "")
				session.Commit()
				continue
			}

			if err := h.handler.HandleEvent(session.Context(), &event); err != nil {
				// No mark, no commit: the message is redelivered.
				h.log.Error().Err(err).
					Str("event_id", event.EventID).
					Int64("offset", message.Offset).
					Msg("kafka: event handling failed, leaving uncommitted")
				continue
			}

			session.MarkMessage(message, "")
			session.Commit()

		case <-session.Context().Done():
			return nil
		}
	}
}
