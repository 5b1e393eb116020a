package condition

// Walk traverses the condition tree depth-first, left to right, and calls fn
// for each node. It returns the first error encountered, or nil if traversal
// completes. Walk is used by the predicate registry to validate predicate
// references eagerly at configuration time.
func Walk(n *Node, fn func(*Node) error) error {
	if n == nil {
		return nil
	}
	if err := fn(n); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// References collects the names of all predicates referenced by the tree,
// split by kind: token predicates and text predicates. Duplicates are
// preserved in traversal order.
func References(n *Node) (tokenNames, textNames []string) {
	_ = Walk(n, func(node *Node) error {
		switch node.Type {
		case TypePredicate:
			tokenNames = append(tokenNames, node.Name)
		case TypeTextFn:
			textNames = append(textNames, node.Name)
		}
		return nil
	})
	return tokenNames, textNames
}
