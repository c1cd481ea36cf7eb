package handler

import (
	"time"

	"payment-orchestrator/internal/adapter/http/dto"
	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/internal/observability"
	"payment-orchestrator/pkg/response"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment and refund endpoints.
type PaymentHandler struct {
	payments ports.PaymentOrchestrator
	refunds  ports.RefundOrchestrator
	metrics  *observability.Metrics
}

// NewPaymentHandler creates a new PaymentHandler. metrics may be nil.
func NewPaymentHandler(payments ports.PaymentOrchestrator, refunds ports.RefundOrchestrator, metrics *observability.Metrics) *PaymentHandler {
	return &PaymentHandler{payments: payments, refunds: refunds, metrics: metrics}
}

// ExecutePayment handles POST /payments/execute. Every well-formed outcome
// is a 200; the status field in the body tells success from decline.
func (h *PaymentHandler) ExecutePayment(c *gin.Context) {
	var req dto.ExecutePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, dto.BindingDetails(err))
		return
	}
	dto.SanitizeStruct(&req)
	if details := req.Validate(); len(details) > 0 {
		response.ValidationFailed(c, details)
		return
	}

	start := time.Now()
	result, err := h.payments.Execute(c.Request.Context(), req.Domain(c.ClientIP()))
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ObservePayment(req.ProviderType, string(result.Status),
			result.Status.Successful(), time.Since(start),
			result.Amount.InexactFloat64(), result.CurrencyCode)
	}
	response.OK(c, result)
}

// RefundPayment handles POST /payments/refund. Refund declines (amount
// exceeded, unsupported adapter, provider failure) come back as a 200 with
// status FAILED and a failureCode; only unknown payments, ineligible
// payments and infrastructure faults map to error statuses.
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	var req dto.RefundPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, dto.BindingDetails(err))
		return
	}
	dto.SanitizeStruct(&req)
	if details := req.Validate(); len(details) > 0 {
		response.ValidationFailed(c, details)
		return
	}

	start := time.Now()
	result, err := h.refunds.Execute(c.Request.Context(), req.Domain())
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.metrics != nil {
		success := result.Status == domain.RefundStatusSuccess
		h.metrics.ObserveRefund(string(result.Status), success,
			time.Since(start), result.Amount.InexactFloat64(), result.CurrencyCode)
	}
	response.OK(c, result)
}
