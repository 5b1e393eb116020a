package condition

import (
	"errors"
	"testing"
)

// TestConstructors tests that constructors build the expected node shapes
func TestConstructors(t *testing.T) {
	tests := []struct {
		name         string
		node         *Node
		wantType     Type
		wantName     string
		wantChildren int
	}{
		{
			name:     "predicate leaf",
			node:     Predicate("starts_with_verb"),
			wantType: TypePredicate,
			wantName: "starts_with_verb",
		},
		{
			name:     "text function leaf",
			node:     TextFn("ends_with_question_mark"),
			wantType: TypeTextFn,
			wantName: "ends_with_question_mark",
		},
		{
			name:         "all with two children",
			node:         All(Predicate("a"), Predicate("b")),
			wantType:     TypeAll,
			wantChildren: 2,
		},
		{
			name:     "empty all",
			node:     All(),
			wantType: TypeAll,
		},
		{
			name:         "any with three children",
			node:         Any(Predicate("a"), Predicate("b"), Predicate("c")),
			wantType:     TypeAny,
			wantChildren: 3,
		},
		{
			name:         "not wraps one child",
			node:         Not(Predicate("a")),
			wantType:     TypeNot,
			wantChildren: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.node.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", tt.node.Type, tt.wantType)
			}
			if tt.node.Name != tt.wantName {
				t.Errorf("Name = %v, want %v", tt.node.Name, tt.wantName)
			}
			if len(tt.node.Children) != tt.wantChildren {
				t.Errorf("len(Children) = %d, want %d", len(tt.node.Children), tt.wantChildren)
			}
		})
	}
}

// TestNodeKindPredicates tests IsLeaf and IsLogical
func TestNodeKindPredicates(t *testing.T) {
	tests := []struct {
		name        string
		node        *Node
		wantLeaf    bool
		wantLogical bool
	}{
		{"predicate", Predicate("a"), true, false},
		{"text fn", TextFn("a"), true, false},
		{"all", All(), false, true},
		{"any", Any(), false, true},
		{"not", Not(Predicate("a")), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsLeaf(); got != tt.wantLeaf {
				t.Errorf("IsLeaf() = %v, want %v", got, tt.wantLeaf)
			}
			if got := tt.node.IsLogical(); got != tt.wantLogical {
				t.Errorf("IsLogical() = %v, want %v", got, tt.wantLogical)
			}
		})
	}
}

// TestString tests the compact rendering used in error messages
func TestString(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{"nil node", nil, "<nil>"},
		{"predicate", Predicate("has_verb"), "has_verb"},
		{"text fn", TextFn("contains_at"), "text:contains_at"},
		{"not", Not(Predicate("a")), "not(a)"},
		{
			"nested",
			All(Predicate("a"), Any(Predicate("b"), Not(TextFn("c")))),
			"all(a, any(b, not(text:c)))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestValidate tests structural validation of condition trees
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		node    *Node
		wantErr bool
	}{
		{
			name:    "nil condition rejected",
			node:    nil,
			wantErr: true,
		},
		{
			name: "valid nested tree",
			node: All(
				Predicate("a"),
				Any(Predicate("b"), TextFn("c")),
				Not(Predicate("d")),
			),
			wantErr: false,
		},
		{
			name:    "empty all is valid",
			node:    All(),
			wantErr: false,
		},
		{
			name:    "empty any is valid",
			node:    Any(),
			wantErr: false,
		},
		{
			name:    "predicate without name rejected",
			node:    &Node{Type: TypePredicate},
			wantErr: true,
		},
		{
			name:    "text fn without name rejected",
			node:    &Node{Type: TypeTextFn},
			wantErr: true,
		},
		{
			name:    "leaf with children rejected",
			node:    &Node{Type: TypePredicate, Name: "a", Children: []*Node{Predicate("b")}},
			wantErr: true,
		},
		{
			name:    "not with zero children rejected",
			node:    &Node{Type: TypeNot},
			wantErr: true,
		},
		{
			name:    "not with two children rejected",
			node:    &Node{Type: TypeNot, Children: []*Node{Predicate("a"), Predicate("b")}},
			wantErr: true,
		},
		{
			name:    "nil child in all rejected",
			node:    &Node{Type: TypeAll, Children: []*Node{Predicate("a"), nil}},
			wantErr: true,
		},
		{
			name:    "unknown type rejected",
			node:    &Node{Type: Type("xor")},
			wantErr: true,
		},
		{
			name:    "invalid subtree rejected",
			node:    All(Predicate("a"), Not(&Node{Type: TypePredicate})),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var malformed *MalformedError
				if !errors.As(err, &malformed) {
					t.Errorf("Validate() error type = %T, want *MalformedError", err)
				}
			}
		})
	}
}

// TestWalk tests depth-first traversal order and early abort
func TestWalk(t *testing.T) {
	tree := All(
		Predicate("a"),
		Any(Predicate("b"), Not(Predicate("c"))),
	)

	var visited []string
	err := Walk(tree, func(n *Node) error {
		if n.IsLeaf() {
			visited = append(visited, n.Name)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []string{"a", "b", "c"}
	if len(visited) != len(want) {
		t.Fatalf("visited %d leaves, want %d", len(visited), len(want))
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %q, want %q", i, visited[i], want[i])
		}
	}

	t.Run("stops on first error", func(t *testing.T) {
		sentinel := errors.New("stop")
		count := 0
		err := Walk(tree, func(n *Node) error {
			count++
			if count == 2 {
				return sentinel
			}
			return nil
		})
		if !errors.Is(err, sentinel) {
			t.Errorf("Walk() error = %v, want sentinel", err)
		}
		if count != 2 {
			t.Errorf("fn called %d times, want 2", count)
		}
	})
}

// TestReferences tests predicate name collection split by kind
func TestReferences(t *testing.T) {
	tree := All(
		Predicate("a"),
		TextFn("t1"),
		Any(Predicate("b"), Predicate("a")),
		Not(TextFn("t2")),
	)

	tokenNames, textNames := References(tree)

	wantToken := []string{"a", "b", "a"}
	wantText := []string{"t1", "t2"}

	if len(tokenNames) != len(wantToken) {
		t.Fatalf("tokenNames = %v, want %v", tokenNames, wantToken)
	}
	for i := range wantToken {
		if tokenNames[i] != wantToken[i] {
			t.Errorf("tokenNames[%d] = %q, want %q", i, tokenNames[i], wantToken[i])
		}
	}
	if len(textNames) != len(wantText) {
		t.Fatalf("textNames = %v, want %v", textNames, wantText)
	}
	for i := range wantText {
		if textNames[i] != wantText[i] {
			t.Errorf("textNames[%d] = %q, want %q", i, textNames[i], wantText[i])
		}
	}
}
