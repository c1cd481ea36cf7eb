package handler

import (
	"strconv"

	"payment-orchestrator/internal/adapter/http/dto"
	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/pkg/apperror"
	"payment-orchestrator/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultAlertLimit = 20
	maxAlertLimit     = 500
)

// RiskHandler serves the risk alert feed and webhook subscriptions.
type RiskHandler struct {
	alerts   ports.AlertStore
	webhooks ports.WebhookRegistry
}

// NewRiskHandler creates a new RiskHandler.
func NewRiskHandler(alerts ports.AlertStore, webhooks ports.WebhookRegistry) *RiskHandler {
	return &RiskHandler{alerts: alerts, webhooks: webhooks}
}

// ListAlerts handles GET /risk/alerts. Alerts come back newest first.
func (h *RiskHandler) ListAlerts(c *gin.Context) {
	limit := defaultAlertLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.ValidationFailed(c, map[string]string{"limit": "must be a positive integer"})
			return
		}
		limit = n
	}
	if limit > maxAlertLimit {
		limit = maxAlertLimit
	}

	alerts := h.alerts.Recent(limit)
	if alerts == nil {
		alerts = []*domain.RiskAlert{}
	}
	response.OK(c, dto.AlertListResponse{Alerts: alerts, Count: len(alerts)})
}

// RegisterWebhook handles POST /risk/webhooks. Registration is idempotent;
// re-registering an existing pair rotates its signing secret.
func (h *RiskHandler) RegisterWebhook(c *gin.Context) {
	var req dto.RegisterWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, dto.BindingDetails(err))
		return
	}

	sub := h.webhooks.Register(req.EntityID, req.WebhookURL, req.Secret)
	response.Created(c, sub)
}

// UnregisterWebhook handles DELETE /risk/webhooks.
func (h *RiskHandler) UnregisterWebhook(c *gin.Context) {
	entityID := c.Query("entityId")
	webhookURL := c.Query("webhookUrl")

	details := make(map[string]string)
	if entityID == "" {
		details["entityId"] = "is required"
	}
	if webhookURL == "" {
		details["webhookUrl"] = "is required"
	}
	if len(details) > 0 {
		response.ValidationFailed(c, details)
		return
	}

	if !h.webhooks.Unregister(entityID, webhookURL) {
		response.Error(c, apperror.ErrSubscriptionNotFound(entityID))
		return
	}
	response.NoContent(c)
}

// ListWebhooks handles GET /risk/webhooks.
func (h *RiskHandler) ListWebhooks(c *gin.Context) {
	entityID := c.Query("entityId")
	if entityID == "" {
		response.ValidationFailed(c, map[string]string{"entityId": "is required"})
		return
	}

	subs := h.webhooks.List(entityID)
	if subs == nil {
		subs = []domain.WebhookSubscription{}
	}
	response.OK(c, dto.WebhookListResponse{Subscriptions: subs, Count: len(subs)})
}
