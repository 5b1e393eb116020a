package condition

import "fmt"

// MalformedError indicates a condition tree that violates the expected
// shape. It is a configuration-time error: rule tables reject malformed
// conditions when they are built, never at evaluation time.
type MalformedError struct {
	Node   Type
	Reason string
}

// Error returns the error message.
func (e *MalformedError) Error() string {
	if e.Node == "" {
		return fmt.Sprintf("malformed condition: %s", e.Reason)
	}
	return fmt.Sprintf("malformed %s condition: %s", e.Node, e.Reason)
}

// Validate checks the structural shape of the condition tree:
// leaf nodes must carry a predicate name, NOT nodes exactly one child,
// logical nodes must not contain nil children, and every node must have a
// known type. It does not check that referenced predicates exist; the
// predicate registry does that separately.
func (n *Node) Validate() error {
	if n == nil {
		return &MalformedError{Reason: "nil condition"}
	}

	switch n.Type {
	case TypePredicate, TypeTextFn:
		if n.Name == "" {
			return &MalformedError{Node: n.Type, Reason: "empty predicate name"}
		}
		if len(n.Children) != 0 {
			return &MalformedError{Node: n.Type, Reason: "leaf node must not have children"}
		}
		return nil

	case TypeNot:
		if len(n.Children) != 1 {
			return &MalformedError{
				Node:   TypeNot,
				Reason: fmt.Sprintf("must have exactly one child, got %d", len(n.Children)),
			}
		}
		return n.Children[0].Validate()

	case TypeAll, TypeAny:
		for i, child := range n.Children {
			if child == nil {
				return &MalformedError{
					Node:   n.Type,
					Reason: fmt.Sprintf("child %d is nil", i),
				}
			}
			if err := child.Validate(); err != nil {
				return err
			}
		}
		return nil

	default:
		return &MalformedError{Node: n.Type, Reason: "unknown condition type"}
	}
}
