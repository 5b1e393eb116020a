package condition

import (
	"fmt"
	"strings"
)

// Type represents the kind of condition node.
type Type string

const (
	TypePredicate Type = "predicate" // named token predicate
	TypeAll       Type = "all"       // AND of children
	TypeAny       Type = "any"       // OR of children
	TypeNot       Type = "not"       // NOT of a single child
	TypeTextFn    Type = "text_fn"   // named predicate over tokens and raw text
)

// Node is a single node in a condition expression tree.
// Trees are built once at configuration time and never mutated afterwards;
// sub-conditions are always structurally nested, so cycles are impossible.
type Node struct {
	Type     Type    // Node kind
	Name     string  // Predicate name (for Predicate/TextFn nodes)
	Children []*Node // Child conditions (for All/Any/Not)
}

// Predicate returns a node referencing a named token predicate.
func Predicate(name string) *Node {
	return &Node{Type: TypePredicate, Name: name}
}

// TextFn returns a node referencing a named predicate that receives the raw
// source text alongside the token sequence. It is the escape hatch for
// checks that cannot be expressed over tokens alone (substring tests etc.).
func TextFn(name string) *Node {
	return &Node{Type: TypeTextFn, Name: name}
}

// All returns a node that is true iff every child is true.
// With no children it is vacuously true.
func All(children ...*Node) *Node {
	return &Node{Type: TypeAll, Children: children}
}

// Any returns a node that is true iff at least one child is true.
// With no children it is vacuously false.
func Any(children ...*Node) *Node {
	return &Node{Type: TypeAny, Children: children}
}

// Not returns a node that negates its child.
func Not(child *Node) *Node {
	return &Node{Type: TypeNot, Children: []*Node{child}}
}

// IsLeaf returns true if this node references a named predicate.
func (n *Node) IsLeaf() bool {
	return n.Type == TypePredicate || n.Type == TypeTextFn
}

// IsLogical returns true if this node is a logical combinator (all/any/not).
func (n *Node) IsLogical() bool {
	return n.Type == TypeAll || n.Type == TypeAny || n.Type == TypeNot
}

// String renders the condition tree in a compact prefix form, for error
// messages and debug logging.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Type {
	case TypePredicate:
		return n.Name
	case TypeTextFn:
		return "text:" + n.Name
	case TypeNot:
		if len(n.Children) == 1 {
			return "not(" + n.Children[0].String() + ")"
		}
		return "not(?)"
	case TypeAll, TypeAny:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = c.String()
		}
		return string(n.Type) + "(" + strings.Join(parts, ", ") + ")"
	default:
		return fmt.Sprintf("<%s>", string(n.Type))
	}
}
