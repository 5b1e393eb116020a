package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sentra-hq/sentra/pkg/classify"
)

// HTTPScorerConfig configures an HTTPScorer.
type HTTPScorerConfig struct {
	// Endpoint is the URL of the remote scoring service.
	Endpoint string

	// Timeout bounds each scoring request. Default: 10s. The classifier
	// core imposes no deadline of its own; this is the adapter's.
	Timeout time.Duration

	// Headers are added to every request (e.g., authorization).
	Headers map[string]string

	// MaxIdleConns controls the connection pool size. Default: 10.
	MaxIdleConns int
}

// HTTPScorer calls a remote scoring service over HTTP. The request is a
// JSON object {"text": ...} POSTed to the endpoint; the expected response
// is {"label": ..., "score": ...}. A 204 No Content response, or a 200
// with an empty label, means "no prediction".
//
// Errors (transport failures, non-2xx statuses, malformed bodies) are
// returned to the caller as ScoreError values. Wrap the scorer with
// Graceful to turn them into "no prediction" instead.
type HTTPScorer struct {
	config HTTPScorerConfig
	client *http.Client
}

// scoreRequest is the wire format sent to the scoring service.
type scoreRequest struct {
	Text    string         `json:"text"`
	Options map[string]any `json:"options,omitempty"`
}

// scoreResponse is the wire format returned by the scoring service.
type scoreResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// NewHTTPScorer creates a scorer backed by a remote HTTP scoring service.
func NewHTTPScorer(cfg HTTPScorerConfig) (*HTTPScorer, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("scorer endpoint cannot be empty")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = 10
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConns,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &HTTPScorer{
		config: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}, nil
}

// Score sends the text to the remote service and returns its prediction,
// or (nil, nil) when the service declines to predict.
func (s *HTTPScorer) Score(ctx context.Context, text string, options map[string]any) (*classify.Prediction, error) {
	body, err := json.Marshal(scoreRequest{Text: text, Options: options})
	if err != nil {
		return nil, &ScoreError{Endpoint: s.config.Endpoint, Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &ScoreError{Endpoint: s.config.Endpoint, Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range s.config.Headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &ScoreError{Endpoint: s.config.Endpoint, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Read a bounded amount of the body for the error message.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &ScoreError{
			Endpoint: s.config.Endpoint,
			Cause:    fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(snippet)),
		}
	}

	var decoded scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &ScoreError{Endpoint: s.config.Endpoint, Cause: fmt.Errorf("decode response: %w", err)}
	}

	if decoded.Label == "" {
		return nil, nil
	}

	return &classify.Prediction{
		Label: classify.Label(decoded.Label),
		Score: decoded.Score,
	}, nil
}

// Close releases idle connections held by the underlying transport.
func (s *HTTPScorer) Close() {
	s.client.CloseIdleConnections()
}
