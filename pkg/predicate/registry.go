package predicate

import (
	"fmt"
	"sort"

	"sentra-hq/sentra/pkg/condition"
	"sentra-hq/sentra/pkg/token"
)

// TokenFunc is a named boolean predicate over a token sequence.
type TokenFunc func(tokens []token.Token) bool

// TextFunc is a named boolean predicate that additionally receives the raw
// source text. Referenced by condition.TextFn nodes.
type TextFunc func(tokens []token.Token, text string) bool

// Kind distinguishes the two predicate registries.
type Kind string

const (
	KindToken Kind = "token"
	KindText  Kind = "text"
)

// UnknownPredicateError indicates a condition references a predicate name
// that was never registered. It is a configuration error: during evaluation
// it aborts the whole classification call and is never treated as "false".
type UnknownPredicateError struct {
	Name string
	Kind Kind
}

// Error returns the error message.
func (e *UnknownPredicateError) Error() string {
	return fmt.Sprintf("unknown %s predicate: %q", e.Kind, e.Name)
}

// Registry holds the named predicates available to condition trees.
// Token predicates and text predicates live in separate tables keyed by
// name, selected by the condition node's type rather than by arity probing,
// so the same name may exist in both without ambiguity.
//
// Registration happens at configuration time. After that the registry is
// read-only and safe for concurrent lookups without locking.
type Registry struct {
	tokenFns map[string]TokenFunc
	textFns  map[string]TextFunc
}

// NewRegistry creates an empty predicate registry.
func NewRegistry() *Registry {
	return &Registry{
		tokenFns: make(map[string]TokenFunc),
		textFns:  make(map[string]TextFunc),
	}
}

// Register adds a token predicate under the given name.
// It returns an error for empty names, nil functions, or duplicates.
func (r *Registry) Register(name string, fn TokenFunc) error {
	if name == "" {
		return fmt.Errorf("predicate name cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("predicate %q: function cannot be nil", name)
	}
	if _, exists := r.tokenFns[name]; exists {
		return fmt.Errorf("token predicate %q already registered", name)
	}
	r.tokenFns[name] = fn
	return nil
}

// RegisterText adds a text predicate under the given name.
func (r *Registry) RegisterText(name string, fn TextFunc) error {
	if name == "" {
		return fmt.Errorf("predicate name cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("text predicate %q: function cannot be nil", name)
	}
	if _, exists := r.textFns[name]; exists {
		return fmt.Errorf("text predicate %q already registered", name)
	}
	r.textFns[name] = fn
	return nil
}

// MustRegister is like Register but panics on error. It is intended for
// package-level registration of static predicate sets.
func (r *Registry) MustRegister(name string, fn TokenFunc) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// MustRegisterText is like RegisterText but panics on error.
func (r *Registry) MustRegisterText(name string, fn TextFunc) {
	if err := r.RegisterText(name, fn); err != nil {
		panic(err)
	}
}

// Token looks up a token predicate by name.
func (r *Registry) Token(name string) (TokenFunc, bool) {
	fn, ok := r.tokenFns[name]
	return fn, ok
}

// Text looks up a text predicate by name.
func (r *Registry) Text(name string) (TextFunc, bool) {
	fn, ok := r.textFns[name]
	return fn, ok
}

// Names returns the sorted names of all registered predicates of the given kind.
func (r *Registry) Names(kind Kind) []string {
	var names []string
	switch kind {
	case KindToken:
		for name := range r.tokenFns {
			names = append(names, name)
		}
	case KindText:
		for name := range r.textFns {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Len returns the total number of registered predicates.
func (r *Registry) Len() int {
	return len(r.tokenFns) + len(r.textFns)
}

// Clone returns a copy of the registry that can be extended independently.
// The predicate functions themselves are shared.
func (r *Registry) Clone() *Registry {
	clone := NewRegistry()
	for name, fn := range r.tokenFns {
		clone.tokenFns[name] = fn
	}
	for name, fn := range r.textFns {
		clone.textFns[name] = fn
	}
	return clone
}

// ValidateCondition checks that every predicate referenced by the condition
// tree is registered under the kind its node type demands. It returns an
// UnknownPredicateError for the first missing reference. Rule tables call
// this when they are built so that missing predicates surface at
// configuration time, not on first use.
func (r *Registry) ValidateCondition(n *condition.Node) error {
	return condition.Walk(n, func(node *condition.Node) error {
		switch node.Type {
		case condition.TypePredicate:
			if _, ok := r.tokenFns[node.Name]; !ok {
				return &UnknownPredicateError{Name: node.Name, Kind: KindToken}
			}
		case condition.TypeTextFn:
			if _, ok := r.textFns[node.Name]; !ok {
				return &UnknownPredicateError{Name: node.Name, Kind: KindText}
			}
		}
		return nil
	})
}
