package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sentra-hq/sentra/pkg/classify"
	"sentra-hq/sentra/pkg/lexicon"
	"sentra-hq/sentra/pkg/predicate"
	"sentra-hq/sentra/pkg/ruleset"
	"sentra-hq/sentra/pkg/scoring"
	"sentra-hq/sentra/pkg/tokenizer"
)

var classifyFlags struct {
	rulesPath  string
	jsonOutput bool
}

var classifyCmd = &cobra.Command{
	Use:   "classify [text...]",
	Short: "Classify sentences from arguments or stdin",
	Long: `Classify one or more sentences against a rule file and print the
resulting label, kind, and score.

Each argument is classified as one sentence. With no arguments, sentences
are read from stdin, one per line.

Examples:
  # Classify a single sentence
  sentra classify --rules rules.yaml "turn the lights off"

  # Classify a file of sentences, one JSON result per line
  sentra classify --rules rules/ --json < sentences.txt`,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVar(&classifyFlags.rulesPath, "rules", "", "rule file or directory (required unless set in config)")
	classifyCmd.Flags().BoolVar(&classifyFlags.jsonOutput, "json", false, "print one JSON object per sentence")
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigOrDefault()
	if err != nil {
		return err
	}
	if classifyFlags.rulesPath != "" {
		cfg.Rules.Path = classifyFlags.rulesPath
	}
	if cfg.Rules.Path == "" {
		return fmt.Errorf("no rule path configured: set rules.path or pass --rules")
	}

	logger := setupLogger(cfg.Logging.Level, cfg.Logging.Format)

	var store lexicon.Store
	if cfg.Lexicon.DBPath != "" {
		store, err = lexicon.NewSQLiteStore(cfg.Lexicon.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open lexicon: %w", err)
		}
		defer store.Close()
	}
	tok := tokenizer.NewSimple(store)

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
		base.WithScorer(scoring.Graceful(httpScorer, logger))
	}

	source := ruleset.NewFileSource(cfg.Rules.Path, logger)
	manager, err := ruleset.NewManager(source, ruleset.ManagerConfig{
		Registry:    predicate.NewRegistry(),
		TokenSource: tok,
		Base:        base,
	}, logger)
	if err != nil {
		return err
	}
	classifier := manager.Current()

	ctx := cmd.Context()

	classifyOne := func(text string) error {
		result, err := classifier.ClassifyText(ctx, text)
		if err != nil {
			return fmt.Errorf("classification failed for %q: %w", text, err)
		}
		return printResult(text, result)
	}

	if len(args) > 0 {
		for _, text := range args {
			if err := classifyOne(text); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := classifyOne(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func printResult(text string, result *classify.Result) error {
	if classifyFlags.jsonOutput {
		out := map[string]any{
			"text":  text,
			"label": string(result.Label),
			"kind":  string(result.Kind),
		}
		if result.HasScore {
			out["score"] = result.Score
		}
		if result.Rule != "" {
			out["rule"] = result.Rule
		}
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(out)
	}

	line := fmt.Sprintf("%s\t%s", result.Label, result.Kind)
	if result.Rule != "" {
		line += "\trule=" + result.Rule
	}
	if result.HasScore {
		line += fmt.Sprintf("\tscore=%.3f", result.Score)
	}
	fmt.Println(line)
	return nil
}
