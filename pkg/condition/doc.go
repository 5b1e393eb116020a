// Package condition defines the expression trees that decide when a
// classification rule fires.
//
// A condition is a tree combining named predicate references with logical
// combinators:
//
//   - Predicate(name) - a named boolean function over the token sequence
//   - TextFn(name)    - a named function that also receives the raw text
//   - All(c1..cn)     - true iff every child is true (empty: true)
//   - Any(c1..cn)     - true iff at least one child is true (empty: false)
//   - Not(c)          - negation
//
// Trees are plain data: built once from configuration (in code or from a
// rule file via pkg/ruleset), validated with Validate, and shared read-only
// across concurrent classification calls. Evaluation lives in pkg/classify.
//
// Example:
//
//	cond := condition.All(
//	    condition.Predicate("title_base"),
//	    condition.Any(
//	        condition.Predicate("pretrial"),
//	        condition.Predicate("short"),
//	    ),
//	)
//	if err := cond.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package condition
