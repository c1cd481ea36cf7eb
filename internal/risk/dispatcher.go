package risk

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"payment-orchestrator/internal/core/domain"

	"github.com/rs/zerolog"
)

// maxWebhookBackoff caps the delay between delivery attempts.
const maxWebhookBackoff = 30 * time.Second

// SignatureHeader carries the hex HMAC-SHA256 of the delivery body for
// subscriptions registered with a secret.
const SignatureHeader = "X-Risk-Signature"

// SignPayload computes the lowercase hex HMAC-SHA256 of payload under
// secret. Receivers verify with the same computation and a constant-time
// compare.
func SignPayload(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// DispatcherConfig bounds webhook delivery.
type DispatcherConfig struct {
	Timeout     time.Duration
	MaxAttempts int
}

// DefaultDispatcherConfig returns the stock delivery bounds.
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		Timeout:     5 * time.Second,
		MaxAttempts: 3,
	}
}

// WebhookDispatcher holds per-entity alert subscriptions and fans alerts out
// to them. Dispatch returns immediately; deliveries run on their own
// goroutines with bounded retries and are drained by Close. Permanent
// delivery failures are logged, never surfaced.
type WebhookDispatcher struct {
	cfg        DispatcherConfig
	httpClient HTTPClient
	log        zerolog.Logger

	mu   sync.RWMutex
	subs map[string]map[string]domain.WebhookSubscription // entityID -> url -> sub

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// NewWebhookDispatcher creates a dispatcher. A nil httpClient gets a default
// client bounded by the configured timeout.
func NewWebhookDispatcher(cfg DispatcherConfig, httpClient HTTPClient, log zerolog.Logger) *WebhookDispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultDispatcherConfig().Timeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultDispatcherConfig().MaxAttempts
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &WebhookDispatcher{
		cfg:        cfg,
		httpClient: httpClient,
		log:        log,
		subs:       make(map[string]map[string]domain.WebhookSubscription),
		stop:       make(chan struct{}),
	}
}

// Register subscribes the URL to the entity's alerts. Registering an
// existing pair keeps its creation time and rotates the secret, so a
// subscriber can re-register to change signing keys without a gap.
func (d *WebhookDispatcher) Register(entityID, webhookURL, secret string) domain.WebhookSubscription {
	d.mu.Lock()
	defer d.mu.Unlock()

	byURL := d.subs[entityID]
	if byURL == nil {
		byURL = make(map[string]domain.WebhookSubscription)
		d.subs[entityID] = byURL
	}
	if sub, ok := byURL[webhookURL]; ok {
		sub.Secret = secret
		byURL[webhookURL] = sub
		return sub
	}

	sub := domain.WebhookSubscription{
		EntityID:   entityID,
		WebhookURL: webhookURL,
		Secret:     secret,
		CreatedAt:  time.Now().UTC(),
	}
	byURL[webhookURL] = sub
	d.log.Info().Str("entity_id", entityID).Str("url", webhookURL).Bool("signed", secret != "").Msg("webhook: subscription registered")
	return sub
}

// Unregister removes the pair and reports whether it existed.
func (d *WebhookDispatcher) Unregister(entityID, webhookURL string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	byURL := d.subs[entityID]
	if _, ok := byURL[webhookURL]; !ok {
		return false
	}
	delete(byURL, webhookURL)
	if len(byURL) == 0 {
		delete(d.subs, entityID)
	}
	return true
}

// List returns the entity's subscriptions ordered by URL.
func (d *WebhookDispatcher) List(entityID string) []domain.WebhookSubscription {
	d.mu.RLock()
	defer d.mu.RUnlock()

	byURL := d.subs[entityID]
	if len(byURL) == 0 {
		return nil
	}
	out := make([]domain.WebhookSubscription, 0, len(byURL))
	for _, sub := range byURL {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WebhookURL < out[j].WebhookURL })
	return out
}

// Dispatch fans the alert out to the entity's subscriptions and returns
// immediately.
func (d *WebhookDispatcher) Dispatch(alert *domain.RiskAlert) {
	subs := d.List(alert.EntityID)
	if len(subs) == 0 {
		return
	}

	payload, err := json.Marshal(alert)
	if err != nil {
		d.log.Error().Err(err).Str("alert_id", alert.AlertID).Msg("webhook: marshal alert failed")
		return
	}

	for _, sub := range subs {
		signature := ""
		if sub.Secret != "" {
			signature = SignPayload(sub.Secret, payload)
		}
		d.wg.Add(1)
		go d.deliverWithRetries(sub.WebhookURL, payload, signature, alert.AlertID)
	}
}

// Close stops pending retries and waits for in-flight deliveries.
func (d *WebhookDispatcher) Close() error {
	d.stopOnce.Do(func() { close(d.stop) })
	d.wg.Wait()
	return nil
}

func (d *WebhookDispatcher) deliverWithRetries(url string, payload []byte, signature, alertID string) {
	defer d.wg.Done()

	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(backoff(attempt)):
			case <-d.stop:
				return
			}
		}

		req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			d.log.Error().Err(err).Str("alert_id", alertID).Str("url", url).Msg("webhook: build request failed")
			return
		}
		req.Header.Set("Content-Type", "application/json")
		if signature != "" {
			req.Header.Set(SignatureHeader, signature)
		}

		resp, err := d.httpClient.Do(req)
		if err != nil {
			d.log.Warn().Err(err).Str("alert_id", alertID).Int("attempt", attempt).Msg("webhook: delivery failed")
			continue
		}
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			d.log.Info().Str("alert_id", alertID).Int("attempt", attempt).Int("status", resp.StatusCode).Msg("webhook: delivered")
			return
		}
		d.log.Warn().Str("alert_id", alertID).Int("attempt", attempt).Int("status", resp.StatusCode).Msg("webhook: non-2xx response, retrying")
	}

	d.log.Error().Str("alert_id", alertID).Str("url", url).Int("attempts", d.cfg.MaxAttempts).Msg("webhook: delivery attempts exhausted")
}

// backoff doubles from one second per extra attempt.
func backoff(attempt int) time.Duration {
	delay := time.Second << uint(attempt-2)
	if delay > maxWebhookBackoff {
		return maxWebhookBackoff
	}
	return delay
}
