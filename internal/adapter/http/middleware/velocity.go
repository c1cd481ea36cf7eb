package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"payment-orchestrator/config"
	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const velocityWindow = time.Minute

// velocityProbe is the minimal view of the payment body the sampler needs.
type velocityProbe struct {
	Email    string `json:"email"`
	ClientIP string `json:"clientIp"`
}

// Velocity samples submission velocity per email and per client IP over a
// rolling minute. Over-cap requests are flagged and logged, never rejected;
// the risk engine owns the blocking decision downstream. Store errors fail
// open.
func Velocity(store ports.VelocityStore, cfg config.VelocityConfig, m *observability.Metrics, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Next()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var probe velocityProbe
		if err := json.Unmarshal(bodyBytes, &probe); err != nil {
			c.Next()
			return
		}

		flagged := false
		if probe.Email != "" && cfg.MaxPerEmailPer60s > 0 {
			email := strings.ToLower(strings.TrimSpace(probe.Email))
			if overCap(c, store, "email", email, domain.RedactEmail(email), cfg.MaxPerEmailPer60s, m, log) {
				flagged = true
			}
		}

		ip := probe.ClientIP
		if ip == "" {
			ip = c.ClientIP()
		}
		if ip != "" && cfg.MaxPerIPPer60s > 0 {
			if overCap(c, store, "ip", ip, domain.RedactIP(ip), cfg.MaxPerIPPer60s, m, log) {
				flagged = true
			}
		}

		if flagged {
			c.Set(CtxVelocityFlagged, true)
			c.Writer.Header().Set(HeaderVelocityFlagged, "true")
		}
		c.Next()
	}
}

func overCap(c *gin.Context, store ports.VelocityStore, scope, id, redacted string, limit int64, m *observability.Metrics, log zerolog.Logger) bool {
	count, err := store.Increment(c.Request.Context(), scope, id, velocityWindow)
	if err != nil {
		log.Warn().Err(err).Str("scope", scope).Msg("velocity check failed, allowing request (degraded mode)")
		return false
	}
	if count <= limit {
		return false
	}

	if m != nil {
		m.ObserveVelocityFlag(scope)
	}
	log.Warn().
		Str("scope", scope).
		Str("id", redacted).
		Int64("count", count).
		Int64("limit", limit).
		Msg("velocity limit exceeded")
	return true
}
