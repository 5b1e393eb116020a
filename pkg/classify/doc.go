// Package classify implements the rule-first sentence classification core:
// an ordered rule table evaluated against a tagged token sequence, with a
// threshold-gated fallback to an external statistical scorer.
//
// # Dispatch
//
//	text -> token.Source -> tokens
//	       |
//	       v
//	for each rule in declared order:
//	    evaluate condition -> satisfied?
//	        yes -> {label, grammar}              (first match wins)
//	no match:
//	    scorer configured?
//	        no                      -> {default, low}
//	        (label, score >= t)     -> {label, classifier, score}
//	        (label, score <  t)     -> {default, low, score}  (label discarded)
//	        no prediction           -> {default, low}
//
// The threshold comparison is inclusive and scores are taken as-is, without
// clamping to [0, 1]. An unknown predicate reference aborts the whole call;
// it is a configuration error, never a non-match.
//
// # Basic usage
//
//	reg := predicate.NewRegistry()
//	reg.MustRegister("demand_verb", predicate.LemmaIn("verb", "demand", "require"))
//
//	table, err := classify.NewRuleTable([]classify.Rule{
//	    {Name: "demand", Label: "demand", Condition: condition.Predicate("demand_verb")},
//	}, reg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg := classify.DefaultConfig().WithDefault("fact").WithScorer(myScorer)
//	clf, err := classify.New(table, classify.NewEvaluator(reg, nil), mySource, cfg, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := clf.ClassifyText(ctx, "The court demands a response.")
//
// # Thread safety
//
// The rule table, registry, and configuration are immutable after
// construction, so concurrent classification calls share only read-only
// data and need no locking. Each call's result depends only on its inputs.
package classify
