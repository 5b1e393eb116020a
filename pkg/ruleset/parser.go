package ruleset

import (
	"fmt"
	"os"

	"sentra-hq/sentra/pkg/classify"
	"sentra-hq/sentra/pkg/condition"
	"sentra-hq/sentra/pkg/predicate"
)

// ParseError reports a rule-file problem found at configuration time.
type ParseError struct {
	File   string
	Rule   string
	Reason string
	Cause  error
}

// Error returns the error message.
func (e *ParseError) Error() string {
	msg := "rule file"
	if e.File != "" {
		msg = fmt.Sprintf("rule file %q", e.File)
	}
	if e.Rule != "" {
		msg += fmt.Sprintf(", rule %q", e.Rule)
	}
	msg += ": " + e.Reason
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// RuleSet is a parsed rule file: an ordered rule list plus the fallback
// settings and declared predicates the file carries. It is plain data;
// BuildRegistry and classify.NewRuleTable turn it into a runnable
// classifier configuration.
type RuleSet struct {
	Name        string
	Version     string
	Description string

	// Default is the fallback label, empty when the file does not set one.
	Default classify.Label

	// Threshold is the scorer confidence threshold, nil when unset.
	Threshold *float64

	// Rules in declared order. Disabled rules are already filtered out.
	Rules []classify.Rule

	// Declared predicate functions, built from the file's predicates
	// section.
	tokenPredicates map[string]predicate.TokenFunc
	textPredicates  map[string]predicate.TextFunc
}

// Parse parses rule-file YAML. sourcePath is used in error messages only.
// All structural problems - malformed condition shapes, unknown predicate
// builder kinds, invalid regex patterns - are reported here, at
// configuration time.
func Parse(data []byte, sourcePath string) (*RuleSet, error) {
	raw, err := parseYAMLBytes(data, sourcePath)
	if err != nil {
		return nil, err
	}

	rs := &RuleSet{
		Name:            raw.Name,
		Version:         raw.Version,
		Description:     raw.Description,
		Default:         classify.Label(raw.Default),
		Threshold:       raw.Threshold,
		tokenPredicates: make(map[string]predicate.TokenFunc),
		textPredicates:  make(map[string]predicate.TextFunc),
	}

	for name, spec := range raw.Predicates {
		if err := rs.buildPredicate(name, spec, sourcePath); err != nil {
			return nil, err
		}
	}

	for i, yr := range raw.Rules {
		if yr.Enabled != nil && !*yr.Enabled {
			continue
		}
		if yr.Label == "" {
			return nil, &ParseError{File: sourcePath, Rule: yr.Name, Reason: fmt.Sprintf("rule %d has no label", i)}
		}
		if yr.Condition == nil {
			return nil, &ParseError{File: sourcePath, Rule: yr.Name, Reason: "rule has no condition"}
		}

		node, err := buildCondition(yr.Condition)
		if err != nil {
			return nil, &ParseError{File: sourcePath, Rule: yr.Name, Reason: "invalid condition", Cause: err}
		}

		name := yr.Name
		if name == "" {
			name = fmt.Sprintf("rule-%d", i)
		}

		rs.Rules = append(rs.Rules, classify.Rule{
			Name:      name,
			Label:     classify.Label(yr.Label),
			Condition: node,
		})
	}

	return rs, nil
}

// ParseFile parses the rule file at the given path.
func ParseFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %q: %w", path, err)
	}
	return Parse(data, path)
}

// buildPredicate instantiates one declared predicate from its builder spec.
func (rs *RuleSet) buildPredicate(name string, spec yamlPredicate, sourcePath string) error {
	fail := func(reason string) error {
		return &ParseError{File: sourcePath, Reason: fmt.Sprintf("predicate %q: %s", name, reason)}
	}

	switch spec.Kind {
	case "lemma_in":
		if len(spec.Values) == 0 {
			return fail("lemma_in requires values")
		}
		rs.tokenPredicates[name] = predicate.LemmaIn(spec.Tag, spec.Values...)

	case "surface_in":
		if len(spec.Values) == 0 {
			return fail("surface_in requires values")
		}
		rs.tokenPredicates[name] = predicate.SurfaceIn(spec.Values...)

	case "tag_present":
		if spec.Tag == "" {
			return fail("tag_present requires tag")
		}
		rs.tokenPredicates[name] = predicate.TagPresent(spec.Tag)

	case "first_tag":
		if spec.Tag == "" {
			return fail("first_tag requires tag")
		}
		rs.tokenPredicates[name] = predicate.FirstTag(spec.Tag)

	case "min_tokens":
		if spec.Min <= 0 {
			return fail("min_tokens requires min > 0")
		}
		rs.tokenPredicates[name] = predicate.MinTokens(spec.Min)

	case "max_tokens":
		if spec.Max <= 0 {
			return fail("max_tokens requires max > 0")
		}
		rs.tokenPredicates[name] = predicate.MaxTokens(spec.Max)

	case "text_contains":
		if len(spec.Values) == 0 {
			return fail("text_contains requires values")
		}
		rs.textPredicates[name] = predicate.TextContains(spec.Values...)

	case "text_matches":
		if spec.Pattern == "" {
			return fail("text_matches requires pattern")
		}
		fn, err := predicate.TextMatches(spec.Pattern)
		if err != nil {
			return &ParseError{File: sourcePath, Reason: fmt.Sprintf("predicate %q: invalid pattern", name), Cause: err}
		}
		rs.textPredicates[name] = fn

	case "":
		return fail("missing kind")

	default:
		return fail(fmt.Sprintf("unknown kind %q", spec.Kind))
	}

	return nil
}

// buildCondition converts one YAML condition node into a condition tree,
// enforcing the tagged-union shape: exactly one variant key per node.
func buildCondition(yc *yamlCondition) (*condition.Node, error) {
	variants := 0
	if yc.Predicate != "" {
		variants++
	}
	if yc.TextFn != "" {
		variants++
	}
	if yc.All != nil {
		variants++
	}
	if yc.Any != nil {
		variants++
	}
	if yc.Not != nil {
		variants++
	}
	if variants != 1 {
		return nil, &condition.MalformedError{
			Reason: fmt.Sprintf("expected exactly one of predicate/text_fn/all/any/not, got %d", variants),
		}
	}

	switch {
	case yc.Predicate != "":
		return condition.Predicate(yc.Predicate), nil

	case yc.TextFn != "":
		return condition.TextFn(yc.TextFn), nil

	case yc.Not != nil:
		child, err := buildCondition(yc.Not)
		if err != nil {
			return nil, err
		}
		return condition.Not(child), nil

	case yc.All != nil:
		children, err := buildChildren(yc.All)
		if err != nil {
			return nil, err
		}
		return condition.All(children...), nil

	default: // yc.Any != nil
		children, err := buildChildren(yc.Any)
		if err != nil {
			return nil, err
		}
		return condition.Any(children...), nil
	}
}

func buildChildren(ycs []*yamlCondition) ([]*condition.Node, error) {
	children := make([]*condition.Node, 0, len(ycs))
	for i, yc := range ycs {
		if yc == nil {
			return nil, &condition.MalformedError{Reason: fmt.Sprintf("child %d is empty", i)}
		}
		child, err := buildCondition(yc)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

// BuildRegistry returns a registry holding the base registry's predicates
// plus the ones declared in this rule set. The base is not modified; a name
// collision between the two is a configuration error.
func (rs *RuleSet) BuildRegistry(base *predicate.Registry) (*predicate.Registry, error) {
	var reg *predicate.Registry
	if base != nil {
		reg = base.Clone()
	} else {
		reg = predicate.NewRegistry()
	}

	for name, fn := range rs.tokenPredicates {
		if err := reg.Register(name, fn); err != nil {
			return nil, err
		}
	}
	for name, fn := range rs.textPredicates {
		if err := reg.RegisterText(name, fn); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// merge appends the other rule set's rules and predicates to rs. The
// receiver's metadata, default label, and threshold win when both are set.
func (rs *RuleSet) merge(other *RuleSet) error {
	for name, fn := range other.tokenPredicates {
		if _, exists := rs.tokenPredicates[name]; exists {
			return fmt.Errorf("predicate %q declared in multiple rule files", name)
		}
		rs.tokenPredicates[name] = fn
	}
	for name, fn := range other.textPredicates {
		if _, exists := rs.textPredicates[name]; exists {
			return fmt.Errorf("text predicate %q declared in multiple rule files", name)
		}
		rs.textPredicates[name] = fn
	}

	rs.Rules = append(rs.Rules, other.Rules...)

	if rs.Default == "" {
		rs.Default = other.Default
	}
	if rs.Threshold == nil {
		rs.Threshold = other.Threshold
	}
	return nil
}
