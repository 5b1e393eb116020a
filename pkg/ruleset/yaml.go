package ruleset

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlRuleSet is the intermediate structure a rule file is decoded into
// before building condition trees and predicate functions.
type yamlRuleSet struct {
	Name        string                   `yaml:"name"`
	Version     string                   `yaml:"version"`
	Description string                   `yaml:"description"`
	Default     string                   `yaml:"default"`
	Threshold   *float64                 `yaml:"threshold"`
	Predicates  map[string]yamlPredicate `yaml:"predicates"`
	Rules       []yamlRule               `yaml:"rules"`
}

// yamlPredicate declares a named predicate built from one of the standard
// builders in pkg/predicate.
type yamlPredicate struct {
	Kind    string   `yaml:"kind"`
	Tag     string   `yaml:"tag"`
	Values  []string `yaml:"values"`
	Pattern string   `yaml:"pattern"`
	Min     int      `yaml:"min"`
	Max     int      `yaml:"max"`
}

// yamlRule is one rule declaration: a label and a condition tree.
type yamlRule struct {
	Name      string         `yaml:"name"`
	Label     string         `yaml:"label"`
	Enabled   *bool          `yaml:"enabled"` // Pointer to distinguish unset vs false
	Condition *yamlCondition `yaml:"condition"`
}

// yamlCondition mirrors the condition tagged union: exactly one of the
// fields must be set.
type yamlCondition struct {
	Predicate string           `yaml:"predicate"`
	TextFn    string           `yaml:"text_fn"`
	All       []*yamlCondition `yaml:"all"`
	Any       []*yamlCondition `yaml:"any"`
	Not       *yamlCondition   `yaml:"not"`
}

// parseYAMLBytes decodes rule-file YAML into the intermediate structure.
func parseYAMLBytes(data []byte, sourcePath string) (*yamlRuleSet, error) {
	var rs yamlRuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("yaml parsing failed in %q: %w", sourcePath, err)
	}
	return &rs, nil
}
