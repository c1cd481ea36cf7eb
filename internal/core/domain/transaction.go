package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentTransaction is the durable record of a payment, one row per
// idempotency key. It joins the request context with the adapter outcome
// and is the source of truth for idempotent replays.
type PaymentTransaction struct {
	IdempotencyKey        string          `json:"idempotencyKey"`
	TransactionID         uuid.UUID       `json:"transactionId"`
	MerchantReference     string          `json:"merchantReference"`
	CustomerID            string          `json:"customerId,omitempty"`
	Amount                decimal.Decimal `json:"amount"`
	CurrencyCode          string          `json:"currencyCode"`
	ProviderType          ProviderType    `json:"providerType"`
	ProviderTransactionID string          `json:"providerTransactionId,omitempty"`
	Status                PaymentStatus   `json:"status"`
	FailureCode           string          `json:"failureCode,omitempty"`
	FailureMessage        string          `json:"failureMessage,omitempty"`
	CorrelationID         string          `json:"correlationId,omitempty"`
	AdapterName           string          `json:"adapterName,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

// NewPaymentTransaction builds the durable record for an adapter outcome.
func NewPaymentTransaction(req *PaymentRequest, res *PaymentResult) *PaymentTransaction {
	now := time.Now().UTC()
	return &PaymentTransaction{
		IdempotencyKey:        req.IdempotencyKey,
		TransactionID:         uuid.New(),
		MerchantReference:     req.MerchantReference,
		CustomerID:            req.CustomerID,
		Amount:                res.Amount,
		CurrencyCode:          res.CurrencyCode,
		ProviderType:          req.ProviderType,
		ProviderTransactionID: res.ProviderTransactionID,
		Status:                res.Status,
		FailureCode:           res.FailureCode,
		FailureMessage:        res.Message,
		CorrelationID:         req.CorrelationID,
		AdapterName:           res.AdapterName(),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// Result projects the record back into the result returned on idempotent
// replays. Adapter identity travels in metadata, as on the first response.
func (t *PaymentTransaction) Result() *PaymentResult {
	res := &PaymentResult{
		IdempotencyKey:        t.IdempotencyKey,
		ProviderTransactionID: t.ProviderTransactionID,
		Status:                t.Status,
		Amount:                t.Amount,
		CurrencyCode:          t.CurrencyCode,
		FailureCode:           t.FailureCode,
		Message:               t.FailureMessage,
		Timestamp:             t.UpdatedAt,
	}
	if t.AdapterName != "" || t.ProviderType != "" {
		res.Metadata = map[string]string{}
		if t.AdapterName != "" {
			res.Metadata[MetaAdapterName] = t.AdapterName
		}
		if t.ProviderType != "" {
			res.Metadata[MetaProviderType] = string(t.ProviderType)
		}
	}
	return res
}

// Refundable reports whether refunds may be issued against this payment.
func (t *PaymentTransaction) Refundable() bool {
	return t.Status.Successful()
}
