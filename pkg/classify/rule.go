package classify

import (
	"sentra-hq/sentra/pkg/condition"
	"sentra-hq/sentra/pkg/predicate"
)

// Rule pairs a label with the condition under which it is assigned.
type Rule struct {
	// Name identifies the rule in logs, results, and validation errors.
	Name string

	// Label is assigned when the condition is satisfied.
	Label Label

	// Condition decides whether the rule fires.
	Condition *condition.Node
}

// RuleTable is an ordered, immutable sequence of rules. Order is the
// dispatch priority: rules are consulted strictly in declared order and the
// first satisfied rule wins, so callers must declare most-specific rules
// first. The engine never reorders and infers no specificity.
type RuleTable struct {
	rules []Rule
}

// NewRuleTable builds a rule table, validating every rule eagerly against
// the registry: condition shapes must be well-formed and every referenced
// predicate must be registered. Validation failures are configuration
// errors and are reported with the offending rule's name and position.
func NewRuleTable(rules []Rule, registry *predicate.Registry) (*RuleTable, error) {
	for i, rule := range rules {
		if rule.Label == "" {
			return nil, &TableError{Rule: rule.Name, Index: i, Cause: errEmptyLabel}
		}
		if err := rule.Condition.Validate(); err != nil {
			return nil, &TableError{Rule: rule.Name, Index: i, Cause: err}
		}
		if registry != nil {
			if err := registry.ValidateCondition(rule.Condition); err != nil {
				return nil, &TableError{Rule: rule.Name, Index: i, Cause: err}
			}
		}
	}

	// Copy to keep the table immutable even if the caller mutates its slice.
	owned := make([]Rule, len(rules))
	copy(owned, rules)

	return &RuleTable{rules: owned}, nil
}

// Rules returns the rules in dispatch order. The returned slice is a copy.
func (t *RuleTable) Rules() []Rule {
	rules := make([]Rule, len(t.rules))
	copy(rules, t.rules)
	return rules
}

// Len returns the number of rules in the table.
func (t *RuleTable) Len() int {
	return len(t.rules)
}
