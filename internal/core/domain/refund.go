package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefundStatus represents the lifecycle state of a refund.
type RefundStatus string

const (
	RefundStatusSuccess RefundStatus = "SUCCESS"
	RefundStatusFailed  RefundStatus = "FAILED"
	RefundStatusPending RefundStatus = "PENDING"
)

// Refund failure codes carried in RefundResult.FailureCode.
const (
	RefundFailureAmountExceeded  = "REFUND_AMOUNT_EXCEEDED"
	RefundFailureLimitExceeded   = "REFUND_LIMIT_EXCEEDED"
	RefundFailureAdapterNotFound = "ADAPTER_NOT_FOUND"
	RefundFailureNotSupported    = "REFUND_NOT_SUPPORTED"
	RefundFailureInvalidResult   = "INVALID_RESULT"
	RefundFailureExecution       = "REFUND_EXECUTION_FAILED"
)

// RefundRequest asks for a full or partial refund of a prior payment.
// IdempotencyKey identifies the refund itself and is a separate namespace
// from payment keys. A nil Amount means a full refund.
type RefundRequest struct {
	IdempotencyKey        string           `json:"idempotencyKey"`
	PaymentIdempotencyKey string           `json:"paymentIdempotencyKey"`
	Amount                *decimal.Decimal `json:"amount,omitempty"`
	CurrencyCode          string           `json:"currencyCode,omitempty"`
	Reason                string           `json:"reason,omitempty"`
	MerchantReference     string           `json:"merchantReference,omitempty"`
	CorrelationID         string           `json:"correlationId,omitempty"`
}

// RefundResult is the immutable outcome of a refund attempt.
type RefundResult struct {
	IdempotencyKey        string            `json:"idempotencyKey"`
	PaymentIdempotencyKey string            `json:"paymentIdempotencyKey"`
	ProviderRefundID      string            `json:"providerRefundId,omitempty"`
	Status                RefundStatus      `json:"status"`
	Amount                decimal.Decimal   `json:"amount"`
	CurrencyCode          string            `json:"currencyCode"`
	FailureCode           string            `json:"failureCode,omitempty"`
	Message               string            `json:"message,omitempty"`
	Timestamp             time.Time         `json:"timestamp"`
	Metadata              map[string]string `json:"metadata,omitempty"`
}

// WellFormed reports whether the result carries the fields an adapter is
// required to populate.
func (r *RefundResult) WellFormed() bool {
	return r != nil &&
		r.IdempotencyKey != "" &&
		r.Status != "" &&
		r.CurrencyCode != "" &&
		!r.Timestamp.IsZero()
}

// FailedRefund builds a FAILED result for the given request without an
// adapter round trip. Used for bound violations and resolution failures.
func FailedRefund(req *RefundRequest, amount decimal.Decimal, currency, failureCode, message string) *RefundResult {
	return &RefundResult{
		IdempotencyKey:        req.IdempotencyKey,
		PaymentIdempotencyKey: req.PaymentIdempotencyKey,
		Status:                RefundStatusFailed,
		Amount:                amount,
		CurrencyCode:          currency,
		FailureCode:           failureCode,
		Message:               message,
		Timestamp:             time.Now().UTC(),
	}
}

// RefundRecord is the durable refund row, one per refund idempotency key.
type RefundRecord struct {
	RefundIdempotencyKey  string          `json:"refundIdempotencyKey"`
	PaymentIdempotencyKey string          `json:"paymentIdempotencyKey"`
	ProviderRefundID      string          `json:"providerRefundId,omitempty"`
	Status                RefundStatus    `json:"status"`
	Amount                decimal.Decimal `json:"amount"`
	CurrencyCode          string          `json:"currencyCode"`
	FailureCode           string          `json:"failureCode,omitempty"`
	FailureMessage        string          `json:"failureMessage,omitempty"`
	Reason                string          `json:"reason,omitempty"`
	MerchantReference     string          `json:"merchantReference,omitempty"`
	CorrelationID         string          `json:"correlationId,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

// NewRefundRecord builds the durable record for a refund outcome.
func NewRefundRecord(req *RefundRequest, res *RefundResult) *RefundRecord {
	now := time.Now().UTC()
	return &RefundRecord{
		RefundIdempotencyKey:  req.IdempotencyKey,
		PaymentIdempotencyKey: req.PaymentIdempotencyKey,
		ProviderRefundID:      res.ProviderRefundID,
		Status:                res.Status,
		Amount:                res.Amount,
		CurrencyCode:          res.CurrencyCode,
		FailureCode:           res.FailureCode,
		FailureMessage:        res.Message,
		Reason:                req.Reason,
		MerchantReference:     req.MerchantReference,
		CorrelationID:         req.CorrelationID,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// Result projects the record back into the result returned on idempotent
// refund replays.
func (r *RefundRecord) Result() *RefundResult {
	return &RefundResult{
		IdempotencyKey:        r.RefundIdempotencyKey,
		PaymentIdempotencyKey: r.PaymentIdempotencyKey,
		ProviderRefundID:      r.ProviderRefundID,
		Status:                r.Status,
		Amount:                r.Amount,
		CurrencyCode:          r.CurrencyCode,
		FailureCode:           r.FailureCode,
		Message:               r.FailureMessage,
		Timestamp:             r.UpdatedAt,
	}
}
