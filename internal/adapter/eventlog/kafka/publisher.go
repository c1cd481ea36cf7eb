package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"payment-orchestrator/config"
	"payment-orchestrator/internal/core/domain"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
)

// Publisher writes payment events and alerts to their Kafka topics through
// an async producer. Payment events are keyed by idempotency key and alerts
// by entity id; the hash partitioner turns those keys into per-key ordering.
// Delivery failures are logged, never surfaced, so a broker outage cannot
// stall payment completion.
type Publisher struct {
	producer     sarama.AsyncProducer
	paymentTopic string
	alertTopic   string
	log          zerolog.Logger
	wg           sync.WaitGroup
}

// NewPublisher connects an async producer to the configured brokers.
func NewPublisher(cfg config.KafkaConfig, log zerolog.Logger) (*Publisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V2_1_0_0
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Return.Errors = true

	producer, err := sarama.NewAsyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	p := &Publisher{
		producer:     producer,
		paymentTopic: cfg.PaymentTopic,
		alertTopic:   cfg.AlertTopic,
		log:          log,
	}

	// Drain producer errors so failed deliveries are visible in the logs.
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for producerErr := range producer.Errors() {
			p.log.Error().Err(producerErr.Err).
				Str("topic", producerErr.Msg.Topic).
				Msg("kafka: publish failed")
		}
	}()

	log.Info().Strs("brokers", cfg.Brokers).
		Str("payment_topic", cfg.PaymentTopic).
		Str("alert_topic", cfg.AlertTopic).
		Msg("kafka: producer started")

	return p, nil
}

// PublishPaymentEvent enqueues the event on the payment topic, keyed by
// idempotency key.
func (p *Publisher) PublishPaymentEvent(_ context.Context, event *domain.PaymentEvent) {
	p.send(p.paymentTopic, event.IdempotencyKey, event.EventID, event)
}

// PublishAlert enqueues the alert on the alert topic, keyed by entity id.
func (p *Publisher) PublishAlert(_ context.Context, alert *domain.RiskAlert) {
	p.send(p.alertTopic, alert.EntityID, alert.AlertID, alert)
}

func (p *Publisher) send(topic, key, id string, payload any) {
	value, err := json.Marshal(payload)
	if err != nil {
		p.log.Error().Err(err).Str("topic", topic).Str("id", id).Msg("kafka: marshal failed")
		return
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	}

	// Never block the request path on a saturated producer buffer.
	select {
	case p.producer.Input() <- message:
	default:
		p.log.Warn().Str("topic", topic).Str("id", id).Msg("kafka: producer buffer full, dropping message")
	}
}

// Close flushes buffered messages and stops the error drainer.
func (p *Publisher) Close() error {
	err := p.producer.Close()
	p.wg.Wait()
	if err != nil {
		return fmt.Errorf("close kafka producer: %w", err)
	}
	return nil
}
