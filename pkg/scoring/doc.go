// Package scoring provides external classifier adapters for the classify
// package.
//
// A scorer is anything implementing the single-method classify.Scorer
// interface. This package ships:
//
//   - HTTPScorer: calls a remote scoring service (POST {"text": ...},
//     expects {"label": ..., "score": ...})
//   - Graceful: a decorator that turns adapter-internal errors into
//     "no prediction" so classification degrades to the default label
//     instead of aborting
//
// Adapters are synchronous from the classifier's point of view. The core
// applies no retry, timeout, or score clamping; adapters own those
// concerns.
package scoring
