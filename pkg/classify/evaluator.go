package classify

import (
	"context"
	"fmt"
	"log/slog"

	"sentra-hq/sentra/pkg/condition"
	"sentra-hq/sentra/pkg/predicate"
	"sentra-hq/sentra/pkg/token"
)

// Evaluator interprets condition trees against a token sequence and the raw
// source text. Evaluation is referentially transparent: given the same
// inputs and registry, the same condition always evaluates to the same
// boolean. Recursion depth equals tree depth; no artificial limit is
// imposed.
type Evaluator struct {
	registry *predicate.Registry
	logger   *slog.Logger
}

// NewEvaluator creates an evaluator over the given predicate registry.
func NewEvaluator(registry *predicate.Registry, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{
		registry: registry,
		logger:   logger,
	}
}

// Evaluate evaluates a condition node and returns whether it is satisfied.
// An unknown predicate reference returns an UnknownPredicateError and must
// abort the caller's classification; it is never treated as "false".
func (e *Evaluator) Evaluate(ctx context.Context, node *condition.Node, tokens []token.Token, text string) (bool, error) {
	if node == nil {
		return false, &condition.MalformedError{Reason: "nil condition"}
	}

	switch node.Type {
	case condition.TypePredicate:
		return e.evaluatePredicate(node, tokens)

	case condition.TypeTextFn:
		return e.evaluateTextFn(node, tokens, text)

	case condition.TypeAll:
		return e.evaluateAll(ctx, node, tokens, text)

	case condition.TypeAny:
		return e.evaluateAny(ctx, node, tokens, text)

	case condition.TypeNot:
		return e.evaluateNot(ctx, node, tokens, text)

	default:
		return false, fmt.Errorf("unknown condition type: %q", node.Type)
	}
}

// evaluatePredicate looks up and invokes a token predicate.
func (e *Evaluator) evaluatePredicate(node *condition.Node, tokens []token.Token) (bool, error) {
	fn, ok := e.registry.Token(node.Name)
	if !ok {
		return false, &predicate.UnknownPredicateError{Name: node.Name, Kind: predicate.KindToken}
	}

	satisfied := fn(tokens)

	e.logger.Debug("predicate evaluated",
		"predicate", node.Name,
		"token_count", len(tokens),
		"satisfied", satisfied,
	)

	return satisfied, nil
}

// evaluateTextFn looks up and invokes a text predicate.
func (e *Evaluator) evaluateTextFn(node *condition.Node, tokens []token.Token, text string) (bool, error) {
	fn, ok := e.registry.Text(node.Name)
	if !ok {
		return false, &predicate.UnknownPredicateError{Name: node.Name, Kind: predicate.KindText}
	}

	satisfied := fn(tokens, text)

	e.logger.Debug("text predicate evaluated",
		"predicate", node.Name,
		"satisfied", satisfied,
	)

	return satisfied, nil
}

// evaluateAll evaluates an ALL (AND) node. The empty conjunction is
// vacuously true. Children are evaluated left to right with short-circuit
// on the first false.
func (e *Evaluator) evaluateAll(ctx context.Context, node *condition.Node, tokens []token.Token, text string) (bool, error) {
	for _, child := range node.Children {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}

		satisfied, err := e.Evaluate(ctx, child, tokens, text)
		if err != nil {
			return false, err
		}

		if !satisfied {
			return false, nil
		}
	}

	return true, nil
}

// evaluateAny evaluates an ANY (OR) node. The empty disjunction is
// vacuously false. Children are evaluated left to right with short-circuit
// on the first true.
func (e *Evaluator) evaluateAny(ctx context.Context, node *condition.Node, tokens []token.Token, text string) (bool, error) {
	for _, child := range node.Children {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}

		satisfied, err := e.Evaluate(ctx, child, tokens, text)
		if err != nil {
			return false, err
		}

		if satisfied {
			return true, nil
		}
	}

	return false, nil
}

// evaluateNot evaluates a NOT node.
func (e *Evaluator) evaluateNot(ctx context.Context, node *condition.Node, tokens []token.Token, text string) (bool, error) {
	if len(node.Children) != 1 {
		return false, &condition.MalformedError{
			Node:   condition.TypeNot,
			Reason: fmt.Sprintf("must have exactly one child, got %d", len(node.Children)),
		}
	}

	satisfied, err := e.Evaluate(ctx, node.Children[0], tokens, text)
	if err != nil {
		return false, err
	}

	return !satisfied, nil
}
