package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"sentra-hq/sentra/pkg/classify"
	"sentra-hq/sentra/pkg/config"
	"sentra-hq/sentra/pkg/lexicon"
	"sentra-hq/sentra/pkg/predicate"
	"sentra-hq/sentra/pkg/ruleset"
	"sentra-hq/sentra/pkg/scoring"
	"sentra-hq/sentra/pkg/server"
	"sentra-hq/sentra/pkg/tokenizer"
)

var serveFlags struct {
	listenAddress string
	rulesPath     string
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the classification server",
	Long: `Start the HTTP classification server with the specified configuration.

The server loads the rule files, watches them for changes, and exposes
POST /v1/classify, GET /healthz, and GET /metrics.

Examples:
  # Start with default config
  sentra serve --config sentra.yaml

  # Override listen address and rule path
  sentra serve --config sentra.yaml --listen 0.0.0.0:9000 --rules ./rules

  # Validate config and rules without starting
  sentra serve --config sentra.yaml --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().StringVar(&serveFlags.rulesPath, "rules", "", "override rule file or directory path")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config and rules without starting the server")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigOrDefault()
	if err != nil {
		return err
	}

	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}
	if serveFlags.rulesPath != "" {
		cfg.Rules.Path = serveFlags.rulesPath
	}
	if cfg.Rules.Path == "" {
		return fmt.Errorf("no rule path configured: set rules.path or pass --rules")
	}

	logger := setupLogger(cfg.Logging.Level, cfg.Logging.Format)

	// Lexicon-backed tokenizer
	var store lexicon.Store
	if cfg.Lexicon.DBPath != "" {
		store, err = lexicon.NewSQLiteStore(cfg.Lexicon.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open lexicon: %w", err)
		}
		defer store.Close()
	}
	tok := tokenizer.NewSimple(store)

	// Fallback scorer
	base := classify.DefaultConfig()
	if cfg.Classifier.Default != "" {
		base.WithDefault(classify.Label(cfg.Classifier.Default))
	}
	if cfg.Classifier.Threshold != nil {
		base.WithThreshold(*cfg.Classifier.Threshold)
	}
	if cfg.Scorer.Endpoint != "" {
		httpScorer, err := scoring.NewHTTPScorer(scoring.HTTPScorerConfig{
			Endpoint: cfg.Scorer.Endpoint,
			Timeout:  cfg.Scorer.Timeout,
			Headers:  cfg.Scorer.Headers,
		})
		if err != nil {
			return fmt.Errorf("failed to create scorer: %w", err)
		}
		defer httpScorer.Close()

		var scorer classify.Scorer = httpScorer
		if cfg.Scorer.Graceful == nil || *cfg.Scorer.Graceful {
			scorer = scoring.Graceful(httpScorer, logger)
		}
		base.WithScorer(scorer)
	}

	// Metrics
	var promRegistry *prometheus.Registry
	var metrics *classify.Metrics
	if cfg.Metrics.Enabled == nil || *cfg.Metrics.Enabled {
		promRegistry = prometheus.NewRegistry()
		promRegistry.MustRegister(collectors.NewGoCollector())
		promRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = classify.NewMetrics(cfg.Metrics.Namespace, promRegistry)
	}

	// Rule manager with initial load
	source := ruleset.NewFileSource(cfg.Rules.Path, logger)
	manager, err := ruleset.NewManager(source, ruleset.ManagerConfig{
		Registry:    predicate.NewRegistry(),
		TokenSource: tok,
		Base:        base,
		Metrics:     metrics,
	}, logger)
	if err != nil {
		return err
	}

	if serveFlags.dryRun {
		fmt.Printf("✓ Configuration valid\n")
		fmt.Printf("✓ Rules valid (%d rules)\n", manager.Current().Rules().Len())
		return nil
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Hot reload on file change
	if cfg.Rules.Watch == nil || *cfg.Rules.Watch {
		watcher := ruleset.NewWatcher(manager, ruleset.DefaultDebounceInterval, logger)
		go func() {
			if err := watcher.Watch(ctx); err != nil {
				logger.Error("rule watcher stopped", "error", err)
			}
		}()
	}

	// Periodic reload for filesystems where fsnotify is unreliable
	if cfg.Rules.ReloadSchedule != "" {
		scheduler := ruleset.NewScheduler(manager, cfg.Rules.ReloadSchedule, logger)
		if err := scheduler.Start(ctx); err != nil {
			return fmt.Errorf("failed to start reload scheduler: %w", err)
		}
		defer scheduler.Stop()
	}

	srv := server.NewServer(cfg, manager, promRegistry, logger)
	return srv.Start(ctx)
}

// loadConfigOrDefault loads the --config file when given, falling back to
// built-in defaults otherwise.
func loadConfigOrDefault() (*config.Config, error) {
	if cfgFile == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(cfgFile)
}
