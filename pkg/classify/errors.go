package classify

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNoTokenSource indicates ClassifyText was called on a classifier
	// built without a token source.
	ErrNoTokenSource = errors.New("no token source configured")

	// ErrInvalidConfig indicates invalid classifier configuration.
	ErrInvalidConfig = errors.New("invalid classifier configuration")

	errEmptyLabel = errors.New("empty label")
)

// RuleError wraps a failure during the evaluation of a single rule's
// condition. The underlying cause is typically an UnknownPredicateError
// from the registry; it aborts the whole classification call because it
// indicates the rule table references a predicate that was never
// registered.
type RuleError struct {
	Rule  string
	Cause error
}

// Error returns the error message.
func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %q: %v", e.Rule, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *RuleError) Unwrap() error {
	return e.Cause
}

// TableError reports validation failures found while building a rule table.
type TableError struct {
	Rule  string
	Index int
	Cause error
}

// Error returns the error message.
func (e *TableError) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("rule %q (index %d): %v", e.Rule, e.Index, e.Cause)
	}
	return fmt.Sprintf("rule at index %d: %v", e.Index, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *TableError) Unwrap() error {
	return e.Cause
}

// ScorerError wraps a failure raised by the external scorer adapter.
// The dispatcher surfaces it to the caller unchanged; adapters that prefer
// graceful degradation should return no prediction instead (see
// scoring.Graceful).
type ScorerError struct {
	Cause error
}

// Error returns the error message.
func (e *ScorerError) Error() string {
	return fmt.Sprintf("scorer: %v", e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ScorerError) Unwrap() error {
	return e.Cause
}
