package classify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sentra-hq/sentra/pkg/token"
)

// Classifier assigns exactly one label to a unit of text: it consults the
// rule table in declared order and, only if no rule fires, delegates to the
// configured external scorer with a threshold-gated fallback to the default
// label.
//
// A Classifier is immutable after construction. The rule table, predicate
// registry, and configuration are shared read-only across calls, so
// concurrent classifications need no coordination; the only blocking
// operation is the single external scorer call, around which the classifier
// imposes no timeout or retry of its own.
type Classifier struct {
	table     *RuleTable
	evaluator *Evaluator
	config    *Config
	source    token.Source
	logger    *slog.Logger
	metrics   *Metrics
}

// New creates a classifier from a validated rule table, the registry its
// conditions reference, and a fallback configuration. A nil config gets
// defaults (no scorer, "unknown" default label, 0.40 threshold); a nil
// source is allowed but makes ClassifyText unusable.
func New(table *RuleTable, evaluator *Evaluator, source token.Source, cfg *Config, logger *slog.Logger) (*Classifier, error) {
	if table == nil {
		return nil, fmt.Errorf("rule table cannot be nil")
	}
	if evaluator == nil {
		return nil, fmt.Errorf("evaluator cannot be nil")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Classifier{
		table:     table,
		evaluator: evaluator,
		config:    cfg,
		source:    source,
		logger:    logger,
	}, nil
}

// WithMetrics attaches a metrics collector. Returns the classifier for
// chaining during construction.
func (c *Classifier) WithMetrics(m *Metrics) *Classifier {
	c.metrics = m
	return c
}

// Config returns the classifier's fallback configuration.
func (c *Classifier) Config() *Config {
	return c.config
}

// Rules returns the classifier's rule table.
func (c *Classifier) Rules() *RuleTable {
	return c.table
}

// ClassifyText tokenizes the text through the configured token source and
// classifies the resulting sequence. The same raw text is passed through to
// text predicates and to the external scorer.
func (c *Classifier) ClassifyText(ctx context.Context, text string) (*Result, error) {
	if c.source == nil {
		return nil, ErrNoTokenSource
	}

	tokens, err := c.source.TokenizeAndTag(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	return c.Classify(ctx, tokens, text)
}

// Classify evaluates the rule table in declared order against the token
// sequence. The first satisfied rule wins and returns a grammar result; no
// further rules are evaluated and the scorer is not consulted. On a total
// miss the scorer, when configured, is called once and its prediction is
// accepted iff its score clears the threshold (inclusive); otherwise the
// default label is returned with the raw score surfaced. Without a scorer
// the default label is returned directly.
func (c *Classifier) Classify(ctx context.Context, tokens []token.Token, text string) (*Result, error) {
	start := time.Now()

	for _, rule := range c.table.rules {
		satisfied, err := c.evaluator.Evaluate(ctx, rule.Condition, tokens, text)
		if err != nil {
			return nil, &RuleError{Rule: rule.Name, Cause: err}
		}

		if satisfied {
			result := &Result{
				Label:          rule.Label,
				Kind:           KindGrammar,
				Rule:           rule.Name,
				EvaluationTime: time.Since(start),
			}

			c.logger.Debug("rule matched",
				"rule", rule.Name,
				"label", string(rule.Label),
			)
			c.observe(result)
			return result, nil
		}
	}

	result, err := c.fallback(ctx, text)
	if err != nil {
		return nil, err
	}

	result.EvaluationTime = time.Since(start)
	c.observe(result)
	return result, nil
}

// fallback applies the threshold/default policy after a total rule miss.
func (c *Classifier) fallback(ctx context.Context, text string) (*Result, error) {
	if c.config.Scorer == nil {
		c.logger.Debug("no rule matched and no scorer configured, using default",
			"default", string(c.config.Default),
		)
		return &Result{Label: c.config.Default, Kind: KindLow}, nil
	}

	if c.metrics != nil {
		c.metrics.scorerCalls.Inc()
	}

	prediction, err := c.config.Scorer.Score(ctx, text, nil)
	if err != nil {
		if c.metrics != nil {
			c.metrics.scorerErrors.Inc()
		}
		return nil, &ScorerError{Cause: err}
	}

	if prediction == nil {
		c.logger.Debug("scorer returned no prediction, using default",
			"default", string(c.config.Default),
		)
		return &Result{Label: c.config.Default, Kind: KindLow}, nil
	}

	// Inclusive comparison: a score exactly at the threshold is accepted.
	// The score is taken as-is; out-of-range values are not clamped.
	if prediction.Score >= c.config.Threshold {
		c.logger.Debug("scorer prediction accepted",
			"label", string(prediction.Label),
			"score", prediction.Score,
			"threshold", c.config.Threshold,
		)
		return &Result{
			Label:    prediction.Label,
			Kind:     KindClassifier,
			Score:    prediction.Score,
			HasScore: true,
		}, nil
	}

	// Sub-threshold: the predicted label is discarded, only the score is
	// surfaced for observability.
	c.logger.Debug("scorer prediction below threshold, using default",
		"predicted", string(prediction.Label),
		"score", prediction.Score,
		"threshold", c.config.Threshold,
		"default", string(c.config.Default),
	)
	return &Result{
		Label:    c.config.Default,
		Kind:     KindLow,
		Score:    prediction.Score,
		HasScore: true,
	}, nil
}

func (c *Classifier) observe(result *Result) {
	if c.metrics != nil {
		c.metrics.Record(result)
	}
}
