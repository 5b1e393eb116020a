package ruleset

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"sentra-hq/sentra/pkg/classify"
	"sentra-hq/sentra/pkg/predicate"
	"sentra-hq/sentra/pkg/token"
)

// ManagerConfig wires a Manager to the embedding application's pieces.
type ManagerConfig struct {
	// Registry holds the application's own predicates. Rule-file
	// predicate declarations extend a clone of it on every load.
	Registry *predicate.Registry

	// TokenSource is the tokenization pipeline used by ClassifyText.
	TokenSource token.Source

	// Base is the fallback classify configuration (scorer, default,
	// threshold). Values set in the rule file override the default label
	// and threshold; the scorer always comes from here.
	Base *classify.Config

	// Metrics, when non-nil, is attached to every built classifier.
	Metrics *classify.Metrics
}

// Manager owns the currently active classifier and rebuilds it from a rule
// source on demand. A reload builds the complete new classifier - registry,
// validated rule table, configuration - before atomically swapping it in,
// so in-flight classifications always run against a consistent, immutable
// snapshot. A reload that fails validation leaves the previous classifier
// serving.
type Manager struct {
	source *FileSource
	config ManagerConfig
	logger *slog.Logger

	mu      sync.RWMutex
	current *classify.Classifier
}

// NewManager creates a manager and performs the initial load. It fails if
// the initial rule set does not validate.
func NewManager(source *FileSource, config ManagerConfig, logger *slog.Logger) (*Manager, error) {
	if source == nil {
		return nil, fmt.Errorf("rule source cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		source: source,
		config: config,
		logger: logger,
	}

	if err := m.Reload(context.Background()); err != nil {
		return nil, fmt.Errorf("initial rule load failed: %w", err)
	}

	return m, nil
}

// Current returns the active classifier. The returned classifier is
// immutable and remains valid even if a reload swaps in a newer one while
// the caller is still using it.
func (m *Manager) Current() *classify.Classifier {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Reload loads the rule source and swaps in a freshly built classifier.
// On any error the active classifier is left untouched.
func (m *Manager) Reload(ctx context.Context) error {
	rs, err := m.source.Load(ctx)
	if err != nil {
		return err
	}

	registry, err := rs.BuildRegistry(m.config.Registry)
	if err != nil {
		return err
	}

	table, err := classify.NewRuleTable(rs.Rules, registry)
	if err != nil {
		return err
	}

	cfg := classify.DefaultConfig()
	if m.config.Base != nil {
		cfg = m.config.Base.Clone()
	}
	if rs.Default != "" {
		cfg.WithDefault(rs.Default)
	}
	if rs.Threshold != nil {
		cfg.WithThreshold(*rs.Threshold)
	}

	evaluator := classify.NewEvaluator(registry, m.logger)
	classifier, err := classify.New(table, evaluator, m.config.TokenSource, cfg, m.logger)
	if err != nil {
		return err
	}
	if m.config.Metrics != nil {
		classifier.WithMetrics(m.config.Metrics)
	}

	m.mu.Lock()
	m.current = classifier
	m.mu.Unlock()

	m.logger.Info("rule set loaded",
		"name", rs.Name,
		"rule_count", table.Len(),
		"predicate_count", registry.Len(),
		"default", string(cfg.Default),
		"threshold", cfg.Threshold,
	)

	return nil
}
