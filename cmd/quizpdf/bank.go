// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quizpdf/internal/bank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Manage the question bank (store, search, export)",
	Long: `Bank manages a local SQLite question bank built from converted quiz
files. Use subcommands to index quizzes, search questions, or export.`,
}

// --- store subcommand ---

var bankStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Ingest converted quizzes into the question bank",
	Long: `Store reads quiz JSON files from <bank-dir>/quizzes/, ingests them into
a SQLite database with full-text indexing, and writes an export file.
Unchanged quizzes are skipped on subsequent runs.`,
	RunE: runBankStore,
}

func runBankStore(cmd *cobra.Command, args []string) error {
	store, err := bank.NewStore(bankConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d quiz file(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- search subcommand ---

var bankSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the question bank",
	Long: `Search finds questions by full-text search over question and option
text, filtered by quiz or by a missing answer.`,
	RunE: runBankSearch,
}

func runBankSearch(cmd *cobra.Command, args []string) error {
	store, err := bank.NewStore(bankConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --quiz, or --missing-answer")
	}

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(os.Stdout, results, jsonOutput)
}

func formatSearchOutput(w io.Writer, results []bank.Result, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-4s  %-60s  %s\n", "Quiz", "No.", "Question", "Answer")
	fmt.Fprintln(w, strings.Repeat("-", 96))

	for _, r := range results {
		answer := "-"
		if r.Question.HasAnswer() {
			answer = strings.Join(r.Question.Answer, ", ")
		}
		fmt.Fprintf(w, "%-20s  %-4d  %-60s  %s\n",
			truncate(r.QuizID, 20), r.Question.Number, truncate(r.Question.Text, 60), answer)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var bankExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the question bank to YAML or JSON",
	Long: `Export writes the full question bank (or a filtered subset) to
<bank-dir>/index/export.yaml or export.json. Supports the same filter
flags as search for partial exports.`,
	RunE: runBankExport,
}

func runBankExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := bank.NewStore(bankConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background(), opts)
	case "json":
		path, err = store.ExportJSON(context.Background(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Println("Exported to", path)
	return nil
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command, args []string) bank.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}
	quizID, _ := cmd.Flags().GetString("quiz")
	missing, _ := cmd.Flags().GetBool("missing-answer")
	limit, _ := cmd.Flags().GetInt("limit")

	return bank.QueryOptions{
		Query:         queryText,
		QuizID:        quizID,
		MissingAnswer: missing,
		MaxResults:    limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	bankCmd.PersistentFlags().String("bank-dir", "bank", "base directory for the question bank (contains quizzes/, index/)")
	bankCmd.PersistentFlags().Int("max-results", 20, "default maximum number of search results")
	bindFlag(keyBankDir, bankCmd.PersistentFlags().Lookup("bank-dir"))
	bindFlag(keyMaxResults, bankCmd.PersistentFlags().Lookup("max-results"))

	// Search flags.
	bankSearchCmd.Flags().String("query", "", "full-text search query")
	bankSearchCmd.Flags().String("quiz", "", "filter by quiz ID")
	bankSearchCmd.Flags().Bool("missing-answer", false, "only questions without a recorded answer")
	bankSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	bankSearchCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	bankExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	bankExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	bankExportCmd.Flags().String("quiz", "", "filter by quiz ID for partial export")
	bankExportCmd.Flags().Bool("missing-answer", false, "only export questions without a recorded answer")

	// Wire subcommands.
	bankCmd.AddCommand(bankStoreCmd)
	bankCmd.AddCommand(bankSearchCmd)
	bankCmd.AddCommand(bankExportCmd)

	rootCmd.AddCommand(bankCmd)
}
