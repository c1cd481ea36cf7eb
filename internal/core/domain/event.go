package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventType classifies a payment lifecycle event.
type EventType string

const (
	EventTypePaymentRequested EventType = "PAYMENT_REQUESTED"
	EventTypePaymentCompleted EventType = "PAYMENT_COMPLETED"
	EventTypePaymentFailed    EventType = "PAYMENT_FAILED"
)

// PaymentEvent is one append-only record of the payment event stream.
// Events are keyed by IdempotencyKey on the log so that all events for a
// logical payment are ordered per key.
type PaymentEvent struct {
	EventID               string          `json:"eventId"`
	IdempotencyKey        string          `json:"idempotencyKey"`
	CorrelationID         string          `json:"correlationId,omitempty"`
	EventType             EventType       `json:"eventType"`
	ProviderType          ProviderType    `json:"providerType"`
	ProviderTransactionID string          `json:"providerTransactionId,omitempty"`
	Status                PaymentStatus   `json:"status,omitempty"`
	Amount                decimal.Decimal `json:"amount"`
	CurrencyCode          string          `json:"currencyCode"`
	FailureCode           string          `json:"failureCode,omitempty"`
	Message               string          `json:"message,omitempty"`
	MerchantReference     string          `json:"merchantReference,omitempty"`
	CustomerID            string          `json:"customerId,omitempty"`
	Email                 string          `json:"email,omitempty"`
	ClientIP              string          `json:"clientIp,omitempty"`
	CardFingerprint       string          `json:"cardFingerprint,omitempty"`
	CardBin               string          `json:"cardBin,omitempty"`
	CardLast4             string          `json:"cardLast4,omitempty"`
	Timestamp             time.Time       `json:"timestamp"`
}

// NewRequestedEvent builds the PAYMENT_REQUESTED event published before the
// first adapter invocation for a request.
func NewRequestedEvent(req *PaymentRequest) *PaymentEvent {
	return &PaymentEvent{
		EventID:           uuid.New().String(),
		IdempotencyKey:    req.IdempotencyKey,
		CorrelationID:     req.CorrelationID,
		EventType:         EventTypePaymentRequested,
		ProviderType:      req.ProviderType,
		Amount:            req.Amount,
		CurrencyCode:      req.CurrencyCode,
		MerchantReference: req.MerchantReference,
		CustomerID:        req.CustomerID,
		Email:             req.Email,
		ClientIP:          req.ClientIP,
		Timestamp:         time.Now().UTC(),
	}
}

// NewOutcomeEvent builds the PAYMENT_COMPLETED or PAYMENT_FAILED event for
// an adapter outcome. Card identity is carried for the risk pipeline's card
// dimension.
func NewOutcomeEvent(req *PaymentRequest, res *PaymentResult) *PaymentEvent {
	eventType := EventTypePaymentFailed
	if res.Status.Successful() {
		eventType = EventTypePaymentCompleted
	}
	return &PaymentEvent{
		EventID:               uuid.New().String(),
		IdempotencyKey:        req.IdempotencyKey,
		CorrelationID:         req.CorrelationID,
		EventType:             eventType,
		ProviderType:          req.ProviderType,
		ProviderTransactionID: res.ProviderTransactionID,
		Status:                res.Status,
		Amount:                res.Amount,
		CurrencyCode:          res.CurrencyCode,
		FailureCode:           res.FailureCode,
		Message:               res.Message,
		MerchantReference:     req.MerchantReference,
		CustomerID:            req.CustomerID,
		Email:                 req.Email,
		ClientIP:              req.ClientIP,
		CardFingerprint:       res.CardFingerprint,
		CardBin:               res.CardBin,
		CardLast4:             res.CardLast4,
		Timestamp:             time.Now().UTC(),
	}
}

// Failed reports whether the event describes a failed payment attempt.
func (e *PaymentEvent) Failed() bool {
	return e.EventType == EventTypePaymentFailed
}
