package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sentra-hq/sentra/pkg/classify"
	"sentra-hq/sentra/pkg/predicate"
	"sentra-hq/sentra/pkg/ruleset"
)

var validateFlags struct {
	rulesPath string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate rule files without classifying",
	Long: `Load and validate a rule file or directory: YAML structure, predicate
declarations, condition shape, and predicate references are all checked.

Examples:
  # Validate a single rule file
  sentra validate --rules rules.yaml

  # Validate a directory of rule files
  sentra validate --rules ./rules`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.rulesPath, "rules", "", "rule file or directory to validate")
	validateCmd.MarkFlagRequired("rules")
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger := setupLogger("warn", "text")

	source := ruleset.NewFileSource(validateFlags.rulesPath, logger)
	rs, err := source.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	registry, err := rs.BuildRegistry(predicate.NewRegistry())
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	table, err := classify.NewRuleTable(rs.Rules, registry)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("✓ Rule set valid\n")
	if rs.Name != "" {
		fmt.Printf("  Name:       %s\n", rs.Name)
	}
	if rs.Version != "" {
		fmt.Printf("  Version:    %s\n", rs.Version)
	}
	fmt.Printf("  Rules:      %d\n", table.Len())
	fmt.Printf("  Predicates: %d\n", registry.Len())
	if rs.Default != "" {
		fmt.Printf("  Default:    %s\n", rs.Default)
	}
	if rs.Threshold != nil {
		fmt.Printf("  Threshold:  %.2f\n", *rs.Threshold)
	}

	return nil
}
