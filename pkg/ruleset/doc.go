// Package ruleset loads classification rule tables from declarative YAML
// files and keeps a running classifier in sync with them.
//
// # File format
//
//	name: sentence-rules
//	default: fact
//	threshold: 0.4
//
//	predicates:
//	  demand_verb:
//	    kind: lemma_in
//	    tag: verb
//	    values: [demand, require, order]
//	  mentions_court:
//	    kind: text_contains
//	    values: ["court"]
//
//	rules:
//	  - name: demand
//	    label: demand
//	    condition:
//	      predicate: demand_verb
//	  - name: court-title
//	    label: title
//	    condition:
//	      all:
//	        - text_fn: mentions_court
//	        - not:
//	            predicate: demand_verb
//
// A condition node carries exactly one of predicate, text_fn, all, any,
// not. The predicates section instantiates the builders from pkg/predicate;
// predicates the application registers in code are merged in through
// ManagerConfig.Registry. Rule order in the file is the dispatch priority.
//
// All validation - condition shapes, builder specs, predicate references -
// happens at load time. A Manager that fails a reload keeps the previous
// classifier serving; hot reload is available through Watcher (fsnotify)
// and Scheduler (cron), both optional.
package ruleset
