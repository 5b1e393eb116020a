package classify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sentra-hq/sentra/pkg/condition"
	"sentra-hq/sentra/pkg/predicate"
	"sentra-hq/sentra/pkg/token"
)

func testRegistry(t *testing.T) *predicate.Registry {
	t.Helper()
	r := predicate.NewRegistry()
	r.MustRegister("yes", func(_ []token.Token) bool { return true })
	r.MustRegister("no", func(_ []token.Token) bool { return false })
	r.MustRegister("has_tokens", func(tokens []token.Token) bool { return len(tokens) > 0 })
	r.MustRegisterText("has_question_mark", func(_ []token.Token, text string) bool {
		return strings.Contains(text, "?")
	})
	return r
}

// TestEvaluate_Logic tests boolean semantics of the condition combinators
func TestEvaluate_Logic(t *testing.T) {
	tests := []struct {
		name string
		cond *condition.Node
		want bool
	}{
		{"single true predicate", condition.Predicate("yes"), true},
		{"single false predicate", condition.Predicate("no"), false},
		{"all satisfied", condition.All(condition.Predicate("yes"), condition.Predicate("yes")), true},
		{"all with one false", condition.All(condition.Predicate("yes"), condition.Predicate("no")), false},
		{"empty all is vacuously true", condition.All(), true},
		{"any with one true", condition.Any(condition.Predicate("no"), condition.Predicate("yes")), true},
		{"any all false", condition.Any(condition.Predicate("no"), condition.Predicate("no")), false},
		{"empty any is vacuously false", condition.Any(), false},
		{"not inverts", condition.Not(condition.Predicate("no")), true},
		{"double negation", condition.Not(condition.Not(condition.Predicate("yes"))), true},
		{"text predicate sees raw text", condition.TextFn("has_question_mark"), true},
		{
			"nested tree",
			condition.All(
				condition.Any(condition.Predicate("no"), condition.Predicate("has_tokens")),
				condition.Not(condition.Predicate("no")),
				condition.TextFn("has_question_mark"),
			),
			true,
		},
	}

	tokens := []token.Token{{Surface: "where", Lemma: "where", Tag: "wh"}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEvaluator(testRegistry(t), nil)
			got, err := e.Evaluate(context.Background(), tt.cond, tokens, "where is it?")
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%s) = %v, want %v", tt.cond, got, tt.want)
			}
		})
	}
}

// TestEvaluate_ShortCircuit tests left-to-right short-circuit evaluation
func TestEvaluate_ShortCircuit(t *testing.T) {
	r := predicate.NewRegistry()
	calls := make(map[string]int)
	counted := func(name string, result bool) predicate.TokenFunc {
		return func(_ []token.Token) bool {
			calls[name]++
			return result
		}
	}
	r.MustRegister("false_first", counted("false_first", false))
	r.MustRegister("true_first", counted("true_first", true))
	r.MustRegister("never", counted("never", true))

	e := NewEvaluator(r, nil)
	ctx := context.Background()

	t.Run("all stops at first false", func(t *testing.T) {
		clear(calls)
		cond := condition.All(condition.Predicate("false_first"), condition.Predicate("never"))
		got, err := e.Evaluate(ctx, cond, nil, "")
		if err != nil || got {
			t.Fatalf("Evaluate() = %v, %v, want false, nil", got, err)
		}
		if calls["never"] != 0 {
			t.Errorf("right operand evaluated %d times, want 0", calls["never"])
		}
	})

	t.Run("any stops at first true", func(t *testing.T) {
		clear(calls)
		cond := condition.Any(condition.Predicate("true_first"), condition.Predicate("never"))
		got, err := e.Evaluate(ctx, cond, nil, "")
		if err != nil || !got {
			t.Fatalf("Evaluate() = %v, %v, want true, nil", got, err)
		}
		if calls["never"] != 0 {
			t.Errorf("right operand evaluated %d times, want 0", calls["never"])
		}
	})
}

// TestEvaluate_UnknownPredicate tests that unknown references abort with an
// error instead of evaluating to false
func TestEvaluate_UnknownPredicate(t *testing.T) {
	e := NewEvaluator(testRegistry(t), nil)
	ctx := context.Background()

	tests := []struct {
		name string
		cond *condition.Node
	}{
		{"top-level predicate", condition.Predicate("missing")},
		{"text fn", condition.TextFn("missing")},
		{"inside not", condition.Not(condition.Predicate("missing"))},
		// Were unknown treated as false, the surrounding Any would still
		// be satisfiable; the error must win.
		{"inside any with true sibling", condition.Any(condition.Predicate("missing"), condition.Predicate("yes"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Evaluate(ctx, tt.cond, nil, "")
			var unknown *predicate.UnknownPredicateError
			if !errors.As(err, &unknown) {
				t.Fatalf("Evaluate() error = %v, want UnknownPredicateError", err)
			}
			if unknown.Name != "missing" {
				t.Errorf("unknown name = %q, want %q", unknown.Name, "missing")
			}
		})
	}
}

// TestEvaluate_NilCondition tests the nil condition error path
func TestEvaluate_NilCondition(t *testing.T) {
	e := NewEvaluator(testRegistry(t), nil)
	_, err := e.Evaluate(context.Background(), nil, nil, "")
	var malformed *condition.MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("Evaluate(nil) error = %v, want MalformedError", err)
	}
}

// TestEvaluate_ContextCancellation tests that cancelled contexts abort
// logical node evaluation
func TestEvaluate_ContextCancellation(t *testing.T) {
	e := NewEvaluator(testRegistry(t), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cond := condition.All(condition.Predicate("yes"), condition.Predicate("yes"))
	_, err := e.Evaluate(ctx, cond, nil, "")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Evaluate() error = %v, want context.Canceled", err)
	}
}
