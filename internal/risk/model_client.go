package risk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"payment-orchestrator/internal/core/domain"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ModelClient implements ModelScorer against an external scoring service.
// Every failure mode is a miss: the caller degrades to rule scoring, so
// this client never returns an error.
type ModelClient struct {
	url        string
	timeout    time.Duration
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewModelClient creates a client for the model service at serviceURL.
// A nil httpClient gets a default client bounded by the same timeout.
func NewModelClient(serviceURL string, timeout time.Duration, httpClient HTTPClient, log zerolog.Logger) *ModelClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &ModelClient{
		url:        serviceURL,
		timeout:    timeout,
		httpClient: httpClient,
		log:        log,
	}
}

type modelResponse struct {
	RiskScore *float64 `json:"riskScore"`
}

// Score posts the feature vector and returns the model's score. The boolean
// is false on timeout, transport error, non-2xx, or a missing or
// out-of-range riskScore.
func (c *ModelClient) Score(ctx context.Context, features domain.WindowFeatures) (float64, bool) {
	body, err := json.Marshal(features)
	if err != nil {
		c.log.Error().Err(err).Msg("model: marshal features failed")
		return 0, false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		c.log.Error().Err(err).Str("url", c.url).Msg("model: build request failed")
		return 0, false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("entity_id", features.EntityID).Msg("model: request failed, using rule score")
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn().Int("status", resp.StatusCode).Str("entity_id", features.EntityID).Msg("model: non-2xx response, using rule score")
		return 0, false
	}

	var decoded modelResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.log.Warn().Err(err).Msg("model: malformed response, using rule score")
		return 0, false
	}
	if decoded.RiskScore == nil || *decoded.RiskScore < 0 || *decoded.RiskScore > 1 {
		c.log.Warn().Msg("model: riskScore missing or out of range, using rule score")
		return 0, false
	}

	return *decoded.RiskScore, true
}
