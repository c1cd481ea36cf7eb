package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ProviderType is the payment category an adapter serves.
type ProviderType string

const (
	ProviderTypeCard         ProviderType = "CARD"
	ProviderTypeWallet       ProviderType = "WALLET"
	ProviderTypeBNPL         ProviderType = "BNPL"
	ProviderTypeBankTransfer ProviderType = "BANK_TRANSFER"
	ProviderTypeMock         ProviderType = "MOCK"
)

// Valid reports whether t is one of the known provider types.
func (t ProviderType) Valid() bool {
	switch t {
	case ProviderTypeCard, ProviderTypeWallet, ProviderTypeBNPL, ProviderTypeBankTransfer, ProviderTypeMock:
		return true
	}
	return false
}

// PaymentStatus represents the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentStatusSuccess  PaymentStatus = "SUCCESS"
	PaymentStatusCaptured PaymentStatus = "CAPTURED"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusReversed PaymentStatus = "REVERSED"
	PaymentStatusPending  PaymentStatus = "PENDING"
)

// Successful reports whether the status represents a completed charge.
func (s PaymentStatus) Successful() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusCaptured
}

// Terminal reports whether the status can no longer change.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusCaptured ||
		s == PaymentStatusFailed || s == PaymentStatusReversed
}

// Metadata keys on a PaymentResult. Adapter identity is attached by the
// orchestrator on success; the provider fee is attached by the adapter.
const (
	MetaAdapterName  = "adapterName"
	MetaProviderType = "providerType"
	MetaCostCents    = "costCents"
)

// ProviderPayload key recognized as a routing override when the test
// override is enabled in configuration.
const PayloadTestAdapterName = "testAdapterName"

// PaymentRequest is the canonical, immutable payment submission.
// Amount is an exact decimal; adapters must never mutate the request.
type PaymentRequest struct {
	IdempotencyKey    string            `json:"idempotencyKey"`
	ProviderType      ProviderType      `json:"providerType"`
	Amount            decimal.Decimal   `json:"amount"`
	CurrencyCode      string            `json:"currencyCode"`
	MerchantReference string            `json:"merchantReference"`
	CustomerID        string            `json:"customerId,omitempty"`
	Email             string            `json:"email,omitempty"`
	ClientIP          string            `json:"clientIp,omitempty"`
	CorrelationID     string            `json:"correlationId,omitempty"`
	ProviderPayload   map[string]string `json:"providerPayload,omitempty"`
}

// TestAdapterName returns the adapter override carried in the provider
// payload, or "" when absent.
func (r *PaymentRequest) TestAdapterName() string {
	if r.ProviderPayload == nil {
		return ""
	}
	return r.ProviderPayload[PayloadTestAdapterName]
}

// PaymentResult is the immutable outcome of a payment attempt.
type PaymentResult struct {
	IdempotencyKey        string            `json:"idempotencyKey"`
	ProviderTransactionID string            `json:"providerTransactionId,omitempty"`
	Status                PaymentStatus     `json:"status"`
	Amount                decimal.Decimal   `json:"amount"`
	CurrencyCode          string            `json:"currencyCode"`
	FailureCode           string            `json:"failureCode,omitempty"`
	Message               string            `json:"message,omitempty"`
	Timestamp             time.Time         `json:"timestamp"`
	Metadata              map[string]string `json:"metadata,omitempty"`

	// Card identity fields, populated by card adapters when available.
	CardBin         string `json:"cardBin,omitempty"`
	CardLast4       string `json:"cardLast4,omitempty"`
	NetworkToken    string `json:"networkToken,omitempty"`
	PAR             string `json:"par,omitempty"`
	CardFingerprint string `json:"cardFingerprint,omitempty"`
}

// WellFormed reports whether the result carries every field an adapter is
// required to populate. A prior result failing this check is treated as an
// idempotency miss rather than replayed.
func (r *PaymentResult) WellFormed() bool {
	return r != nil &&
		r.IdempotencyKey != "" &&
		r.Status != "" &&
		r.CurrencyCode != "" &&
		!r.Timestamp.IsZero()
}

// AdapterName returns the orchestrator-attached adapter identity, or "".
func (r *PaymentResult) AdapterName() string {
	if r.Metadata == nil {
		return ""
	}
	return r.Metadata[MetaAdapterName]
}

// CostCents returns the provider fee carried in result metadata, or 0.
func (r *PaymentResult) CostCents() int64 {
	if r.Metadata == nil {
		return 0
	}
	cents, err := strconv.ParseInt(r.Metadata[MetaCostCents], 10, 64)
	if err != nil {
		return 0
	}
	return cents
}

// WithMeta returns a copy of the result with the key set in metadata.
// The receiver is not mutated.
func (r PaymentResult) WithMeta(key, value string) PaymentResult {
	meta := make(map[string]string, len(r.Metadata)+1)
	for k, v := range r.Metadata {
		meta[k] = v
	}
	meta[key] = value
	r.Metadata = meta
	return r
}
