package scoring

import (
	"context"
	"fmt"
	"log/slog"

	"sentra-hq/sentra/pkg/classify"
)

// ScoreError wraps a failure raised inside a scorer adapter.
type ScoreError struct {
	Endpoint string
	Cause    error
}

// Error returns the error message.
func (e *ScoreError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("score request to %q failed: %v", e.Endpoint, e.Cause)
	}
	return fmt.Sprintf("score request failed: %v", e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ScoreError) Unwrap() error {
	return e.Cause
}

// graceful translates scorer errors into "no prediction".
type graceful struct {
	inner  classify.Scorer
	logger *slog.Logger
}

// Graceful wraps a scorer so that internal failures degrade into "no
// prediction" instead of aborting the classification call: the classifier
// then falls back to its default label with a low-confidence result. The
// swallowed error is logged at warning level.
//
// This is the adapter-side half of the error contract: the dispatcher never
// recovers scorer errors itself.
func Graceful(inner classify.Scorer, logger *slog.Logger) classify.Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &graceful{inner: inner, logger: logger}
}

// Score calls the wrapped scorer and converts any error into (nil, nil).
func (g *graceful) Score(ctx context.Context, text string, options map[string]any) (*classify.Prediction, error) {
	prediction, err := g.inner.Score(ctx, text, options)
	if err != nil {
		g.logger.Warn("scorer failed, degrading to no prediction",
			"error", err,
		)
		return nil, nil
	}
	return prediction, nil
}
