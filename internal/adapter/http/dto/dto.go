package dto

import (
	"strings"

	"payment-orchestrator/internal/core/domain"

	"github.com/shopspring/decimal"
)

// ExecutePaymentRequest is the request body for payment execution.
type ExecutePaymentRequest struct {
	IdempotencyKey    string            `json:"idempotencyKey" binding:"required,max=100,safe_id"`
	ProviderType      string            `json:"providerType" binding:"required,provider_type"`
	Amount            *decimal.Decimal  `json:"amount" binding:"required"`
	CurrencyCode      string            `json:"currencyCode" binding:"required,len=3,alpha"`
	MerchantReference string            `json:"merchantReference" binding:"required,max=100"`
	CustomerID        string            `json:"customerId,omitempty" binding:"omitempty,max=100"`
	Email             string            `json:"email,omitempty" binding:"omitempty,email"`
	ClientIP          string            `json:"clientIp,omitempty" binding:"omitempty,ip"`
	CorrelationID     string            `json:"correlationId,omitempty" binding:"omitempty,max=100"`
	ProviderPayload   map[string]string `json:"providerPayload,omitempty"`
}

// Validate applies the semantic checks binding tags cannot express.
// An empty map means the request is valid.
func (r *ExecutePaymentRequest) Validate() map[string]string {
	details := make(map[string]string)
	if r.Amount != nil && !r.Amount.IsPositive() {
		details["amount"] = "must be greater than zero"
	}
	return details
}

// Domain maps the request onto the canonical domain submission. The client
// IP falls back to the transport peer when the body omits it; merchants
// forward their shopper's address, direct callers get their own.
func (r *ExecutePaymentRequest) Domain(peerIP string) *domain.PaymentRequest {
	clientIP := r.ClientIP
	if clientIP == "" {
		clientIP = peerIP
	}
	return &domain.PaymentRequest{
		IdempotencyKey:    r.IdempotencyKey,
		ProviderType:      domain.ProviderType(r.ProviderType),
		Amount:            *r.Amount,
		CurrencyCode:      strings.ToUpper(r.CurrencyCode),
		MerchantReference: r.MerchantReference,
		CustomerID:        r.CustomerID,
		Email:             r.Email,
		ClientIP:          clientIP,
		CorrelationID:     r.CorrelationID,
		ProviderPayload:   r.ProviderPayload,
	}
}

// RefundPaymentRequest is the request body for refund execution. Amount is
// optional; a missing amount refunds the full original payment.
type RefundPaymentRequest struct {
	IdempotencyKey        string           `json:"idempotencyKey" binding:"required,max=100,safe_id"`
	PaymentIdempotencyKey string           `json:"paymentIdempotencyKey" binding:"required,max=100,safe_id"`
	Amount                *decimal.Decimal `json:"amount,omitempty"`
	CurrencyCode          string           `json:"currencyCode,omitempty" binding:"omitempty,len=3,alpha"`
	Reason                string           `json:"reason,omitempty" binding:"omitempty,max=255"`
	MerchantReference     string           `json:"merchantReference,omitempty" binding:"omitempty,max=100"`
	CorrelationID         string           `json:"correlationId,omitempty" binding:"omitempty,max=100"`
}

// Validate applies the semantic checks binding tags cannot express.
func (r *RefundPaymentRequest) Validate() map[string]string {
	details := make(map[string]string)
	if r.Amount != nil && !r.Amount.IsPositive() {
		details["amount"] = "must be greater than zero"
	}
	return details
}

// Domain maps the request onto the canonical refund submission.
func (r *RefundPaymentRequest) Domain() *domain.RefundRequest {
	return &domain.RefundRequest{
		IdempotencyKey:        r.IdempotencyKey,
		PaymentIdempotencyKey: r.PaymentIdempotencyKey,
		Amount:                r.Amount,
		CurrencyCode:          strings.ToUpper(r.CurrencyCode),
		Reason:                r.Reason,
		MerchantReference:     r.MerchantReference,
		CorrelationID:         r.CorrelationID,
	}
}

// RegisterWebhookRequest subscribes a callback URL to an entity's alerts.
// An optional secret turns on HMAC signing of deliveries to this URL.
type RegisterWebhookRequest struct {
	EntityID   string `json:"entityId" binding:"required,max=200"`
	WebhookURL string `json:"webhookUrl" binding:"required,max=500,safe_url"`
	Secret     string `json:"secret,omitempty" binding:"omitempty,min=16,max=128"`
}

// AlertListResponse wraps the recent-alerts query result, newest first.
type AlertListResponse struct {
	Alerts []*domain.RiskAlert `json:"alerts"`
	Count  int                 `json:"count"`
}

// WebhookListResponse wraps one entity's alert subscriptions.
type WebhookListResponse struct {
	Subscriptions []domain.WebhookSubscription `json:"subscriptions"`
	Count         int                          `json:"count"`
}
