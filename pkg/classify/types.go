package classify

import (
	"context"
	"time"
)

// Label identifies one class in the application's label set.
// Applications declare their own constants:
//
//	const (
//	    LabelDemand classify.Label = "demand"
//	    LabelFact   classify.Label = "fact"
//	)
type Label string

// DefaultLabel is the sentinel label used when no default is configured.
const DefaultLabel Label = "unknown"

// Kind describes how a classification result was produced.
type Kind string

const (
	// KindGrammar means a rule in the table fired.
	KindGrammar Kind = "grammar"

	// KindClassifier means no rule fired and the external scorer's
	// prediction cleared the confidence threshold.
	KindClassifier Kind = "classifier"

	// KindLow means the default label was used: either no rule fired and
	// no scorer is configured, or the scorer's prediction scored below
	// the threshold (or returned no prediction at all).
	KindLow Kind = "low"
)

// Result is the outcome of a single classification call.
type Result struct {
	// Label is the assigned class.
	Label Label

	// Kind records how the label was decided.
	Kind Kind

	// Score is the external scorer's confidence. It is meaningful only
	// when HasScore is true: for accepted classifier results, and for
	// sub-threshold fallbacks where the raw score is surfaced for
	// observability even though the predicted label was discarded.
	Score float64

	// HasScore reports whether Score carries a value.
	HasScore bool

	// Rule is the name of the rule that fired, for grammar results.
	Rule string

	// EvaluationTime is the total wall time of the classification call,
	// including the external scorer call when one was made.
	EvaluationTime time.Duration
}

// Prediction is an external scorer's answer for one text: a label and a
// confidence in [0, 1]. The dispatcher neither clamps nor validates the
// range; an out-of-range score participates in the threshold comparison
// as-is.
type Prediction struct {
	Label Label
	Score float64
}

// Scorer is the external classifier adapter: a single synchronous scoring
// operation. Returning (nil, nil) means "no prediction", which triggers the
// default-label fallback. Adapters that want classification to degrade
// gracefully instead of aborting must translate internal failures into
// (nil, nil) themselves; see the Graceful wrapper in pkg/scoring.
//
// The options map is an open extension point for adapter-specific knobs;
// the dispatcher always passes nil.
type Scorer interface {
	Score(ctx context.Context, text string, options map[string]any) (*Prediction, error)
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(ctx context.Context, text string, options map[string]any) (*Prediction, error)

// Score calls f.
func (f ScorerFunc) Score(ctx context.Context, text string, options map[string]any) (*Prediction, error) {
	return f(ctx, text, options)
}
