// Package config defines the YAML service configuration for the sentra
// daemon and CLI: HTTP server settings, rule file location and reload
// behavior, the optional external scorer, fallback policy defaults, the
// tagger lexicon, logging, and metrics.
//
// Loading follows a fixed sequence: read file, apply defaults, validate.
// The library packages (classify, ruleset, scoring) take plain values and
// do not depend on this package.
package config
