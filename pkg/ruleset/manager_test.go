package ruleset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sentra-hq/sentra/pkg/classify"
	"sentra-hq/sentra/pkg/predicate"
	"sentra-hq/sentra/pkg/token"
)

const managerRuleYAML = `
default: statement
threshold: 0.60
predicates:
  short:
    kind: max_tokens
    max: 2
rules:
  - name: terse
    label: command
    condition:
      predicate: short
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
}

var fieldsSource = token.SourceFunc(func(_ context.Context, text string) ([]token.Token, error) {
	var tokens []token.Token
	for _, f := range strings.Fields(text) {
		tokens = append(tokens, token.Token{Surface: f, Lemma: strings.ToLower(f), Tag: "x"})
	}
	return tokens, nil
})

// TestManager_InitialLoad tests construction with an initial load and
// config merging from the rule file
func TestManager_InitialLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	writeFile(t, path, managerRuleYAML)

	manager, err := NewManager(NewFileSource(path, nil), ManagerConfig{
		Registry:    predicate.NewRegistry(),
		TokenSource: fieldsSource,
	}, nil)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	c := manager.Current()
	if c == nil {
		t.Fatal("Current() = nil after initial load")
	}
	if c.Config().Default != "statement" {
		t.Errorf("Default = %v, want statement (from rule file)", c.Config().Default)
	}
	if c.Config().Threshold != 0.60 {
		t.Errorf("Threshold = %v, want 0.60 (from rule file)", c.Config().Threshold)
	}

	result, err := c.ClassifyText(context.Background(), "stop now")
	if err != nil {
		t.Fatalf("ClassifyText() error = %v", err)
	}
	if result.Label != "command" {
		t.Errorf("Label = %v, want command", result.Label)
	}
}

// TestManager_InitialLoadFailure tests that a broken initial rule set fails
// construction
func TestManager_InitialLoadFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	writeFile(t, path, "rules: [")

	_, err := NewManager(NewFileSource(path, nil), ManagerConfig{
		Registry:    predicate.NewRegistry(),
		TokenSource: fieldsSource,
	}, nil)
	if err == nil {
		t.Fatal("NewManager() error = nil, want initial load failure")
	}
}

// TestManager_Reload tests hot swap and the keep-previous-on-failure policy
func TestManager_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	writeFile(t, path, managerRuleYAML)

	manager, err := NewManager(NewFileSource(path, nil), ManagerConfig{
		Registry:    predicate.NewRegistry(),
		TokenSource: fieldsSource,
	}, nil)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	first := manager.Current()

	t.Run("successful reload swaps classifier", func(t *testing.T) {
		writeFile(t, path, strings.Replace(managerRuleYAML, "label: command", "label: request", 1))
		if err := manager.Reload(context.Background()); err != nil {
			t.Fatalf("Reload() error = %v", err)
		}

		second := manager.Current()
		if second == first {
			t.Error("Current() unchanged after successful reload")
		}

		result, err := second.ClassifyText(context.Background(), "stop now")
		if err != nil {
			t.Fatalf("ClassifyText() error = %v", err)
		}
		if result.Label != "request" {
			t.Errorf("Label = %v, want request", result.Label)
		}
	})

	t.Run("failed reload keeps previous classifier", func(t *testing.T) {
		before := manager.Current()
		writeFile(t, path, `
rules:
  - name: broken
    label: l
    condition:
      predicate: undeclared
`)
		if err := manager.Reload(context.Background()); err == nil {
			t.Fatal("Reload() error = nil, want validation error")
		}
		if manager.Current() != before {
			t.Error("Current() changed after failed reload")
		}

		// The surviving classifier still works.
		if _, err := manager.Current().ClassifyText(context.Background(), "stop now"); err != nil {
			t.Errorf("ClassifyText() on survivor error = %v", err)
		}
	})
}

// TestManager_BaseConfig tests that base config supplies the scorer while
// file settings override label and threshold
func TestManager_BaseConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	writeFile(t, path, managerRuleYAML)

	scorer := classify.ScorerFunc(func(_ context.Context, _ string, _ map[string]any) (*classify.Prediction, error) {
		return &classify.Prediction{Label: "fact", Score: 0.70}, nil
	})
	base := classify.DefaultConfig().WithScorer(scorer).WithDefault("base-default").WithThreshold(0.10)

	manager, err := NewManager(NewFileSource(path, nil), ManagerConfig{
		Registry:    predicate.NewRegistry(),
		TokenSource: fieldsSource,
		Base:        base,
	}, nil)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	cfg := manager.Current().Config()
	if cfg.Default != "statement" {
		t.Errorf("Default = %v, want statement (file overrides base)", cfg.Default)
	}
	if cfg.Threshold != 0.60 {
		t.Errorf("Threshold = %v, want 0.60 (file overrides base)", cfg.Threshold)
	}
	if cfg.Scorer == nil {
		t.Error("Scorer = nil, want scorer carried from base")
	}

	// Scorer score 0.70 beats the file threshold 0.60.
	result, err := manager.Current().ClassifyText(context.Background(), "a long unmatched sentence here")
	if err != nil {
		t.Fatalf("ClassifyText() error = %v", err)
	}
	if result.Label != "fact" || result.Kind != classify.KindClassifier {
		t.Errorf("result = %v/%v, want fact/classifier", result.Label, result.Kind)
	}
}

// TestFileSource_Directory tests lexical-order loading and merging of a
// rule directory
func TestFileSource_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "10-first.yaml"), `
default: statement
predicates:
  short:
    kind: max_tokens
    max: 2
rules:
  - name: terse
    label: command
    condition:
      predicate: short
`)
	writeFile(t, filepath.Join(dir, "20-second.yml"), `
predicates:
  long:
    kind: min_tokens
    min: 6
rules:
  - name: verbose
    label: rambling
    condition:
      predicate: long
`)
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a rule file")

	rs, err := NewFileSource(dir, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(rs.Rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(rs.Rules))
	}
	if rs.Rules[0].Name != "terse" || rs.Rules[1].Name != "verbose" {
		t.Errorf("rule order = %s, %s; want terse, verbose", rs.Rules[0].Name, rs.Rules[1].Name)
	}
	if rs.Default != "statement" {
		t.Errorf("Default = %v, want statement from first file", rs.Default)
	}

	registry, err := rs.BuildRegistry(nil)
	if err != nil {
		t.Fatalf("BuildRegistry() error = %v", err)
	}
	if registry.Len() != 2 {
		t.Errorf("registry Len() = %d, want 2", registry.Len())
	}
}

// TestFileSource_Errors tests missing paths and empty directories
func TestFileSource_Errors(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.yaml"), nil).Load(context.Background())
		if err == nil {
			t.Error("Load() error = nil, want stat error")
		}
	})

	t.Run("directory without rule files", func(t *testing.T) {
		_, err := NewFileSource(t.TempDir(), nil).Load(context.Background())
		if err == nil {
			t.Error("Load() error = nil, want no-rule-files error")
		}
	})

	t.Run("duplicate predicate across files", func(t *testing.T) {
		dir := t.TempDir()
		decl := `
predicates:
  dup:
    kind: tag_present
    tag: verb
rules: []
`
		writeFile(t, filepath.Join(dir, "a.yaml"), decl)
		writeFile(t, filepath.Join(dir, "b.yaml"), decl)

		if _, err := NewFileSource(dir, nil).Load(context.Background()); err == nil {
			t.Error("Load() error = nil, want duplicate predicate error")
		}
	})
}
