package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sentra-hq/sentra/pkg/lexicon"
)

var lexiconFlags struct {
	dbPath string
}

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Manage the tagger lexicon database",
}

var lexiconImportCmd = &cobra.Command{
	Use:   "import <file.tsv>",
	Short: "Import TSV entries into a lexicon database",
	Long: `Import lexicon entries from a tab-separated file into a SQLite
database. Each line is "surface<TAB>lemma<TAB>tag"; blank lines and lines
starting with # are skipped. Existing entries are overwritten.

Examples:
  sentra lexicon import --db lexicon.db lexicon.tsv`,
	Args: cobra.ExactArgs(1),
	RunE: runLexiconImport,
}

var lexiconLookupCmd = &cobra.Command{
	Use:   "lookup <surface>",
	Short: "Look up a surface form in a lexicon database",
	Args:  cobra.ExactArgs(1),
	RunE:  runLexiconLookup,
}

func init() {
	rootCmd.AddCommand(lexiconCmd)
	lexiconCmd.AddCommand(lexiconImportCmd)
	lexiconCmd.AddCommand(lexiconLookupCmd)

	lexiconCmd.PersistentFlags().StringVar(&lexiconFlags.dbPath, "db", "", "lexicon database path")
	lexiconCmd.MarkPersistentFlagRequired("db")
}

func runLexiconImport(cmd *cobra.Command, args []string) error {
	store, err := lexicon.NewSQLiteStore(lexiconFlags.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open lexicon: %w", err)
	}
	defer store.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	n, err := lexicon.ImportTSV(cmd.Context(), store, f)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	total, err := store.Count(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("✓ Imported %d entries (%d total)\n", n, total)
	return nil
}

func runLexiconLookup(cmd *cobra.Command, args []string) error {
	store, err := lexicon.NewSQLiteStore(lexiconFlags.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open lexicon: %w", err)
	}
	defer store.Close()

	entry, err := store.Lookup(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("no entry for %q", args[0])
	}

	fmt.Printf("%s\t%s\t%s\n", entry.Surface, entry.Lemma, entry.Tag)
	return nil
}
