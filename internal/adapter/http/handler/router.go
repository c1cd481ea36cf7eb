package handler

import (
	"payment-orchestrator/config"
	"payment-orchestrator/internal/adapter/http/middleware"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Payments       ports.PaymentOrchestrator
	Refunds        ports.RefundOrchestrator
	Alerts         ports.AlertStore       // nil = risk endpoints disabled
	Webhooks       ports.WebhookRegistry  // nil = risk endpoints disabled
	Velocity       ports.VelocityStore    // nil = velocity sampling disabled
	VelocityCfg    config.VelocityConfig
	HealthCheckers []ports.HealthChecker
	Metrics        *observability.Metrics // nil = metrics disabled
	Registry       *prometheus.Registry   // nil = /metrics endpoint disabled
	MaxBodyBytes   int64
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	maxBody := deps.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.MaxBodySize(maxBody))

	// Deep health check over the registered dependency checkers
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus scrape endpoint
	if deps.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	// API documentation
	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	// Velocity sampler if a store is available, else noop.
	velocity := func(c *gin.Context) { c.Next() }
	if deps.Velocity != nil {
		velocity = middleware.Velocity(deps.Velocity, deps.VelocityCfg, deps.Metrics, deps.Logger)
	}

	paymentHandler := NewPaymentHandler(deps.Payments, deps.Refunds, deps.Metrics)
	payments := r.Group("/payments")
	{
		payments.POST("/execute", velocity, paymentHandler.ExecutePayment)
		payments.POST("/refund", paymentHandler.RefundPayment)
	}

	if deps.Alerts != nil && deps.Webhooks != nil {
		riskHandler := NewRiskHandler(deps.Alerts, deps.Webhooks)
		risk := r.Group("/risk")
		{
			risk.GET("/alerts", riskHandler.ListAlerts)
			risk.GET("/webhooks", riskHandler.ListWebhooks)
			risk.POST("/webhooks", riskHandler.RegisterWebhook)
			risk.DELETE("/webhooks", riskHandler.UnregisterWebhook)
		}
	}

	return r
}
