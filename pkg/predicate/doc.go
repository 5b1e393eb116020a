// Package predicate provides the registry of named boolean predicates that
// condition trees reference.
//
// Two lookup tables are kept, selected by the condition node's type:
// token predicates (func(tokens) bool, for condition.Predicate nodes) and
// text predicates (func(tokens, text) bool, for condition.TextFn nodes).
// Keying on the node type rather than on the name keeps the two arities
// unambiguous even when the same name appears in both tables.
//
// Registration happens once at configuration time; after that the registry
// is read-only and safe for concurrent lookups. ValidateCondition lets rule
// tables reject unresolved predicate references eagerly instead of failing
// on first use.
//
// The builders (LemmaIn, SurfaceIn, TagPresent, TextContains, ...) cover
// the common predicate shapes so applications rarely write token loops by
// hand:
//
//	reg := predicate.NewRegistry()
//	reg.MustRegister("demand_verb", predicate.LemmaIn("verb", "demand", "require", "order"))
//	reg.MustRegisterText("mentions_court", predicate.TextContains("court"))
package predicate
