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

	"github.com/pdiddy/md-elections/internal/results"
	"github.com/pdiddy/md-elections/pkg/types"
)

const defaultIndexDir = "Data/index"

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Index, query and export converted results",
	Long: `Results manages a local SQLite index built from converted OpenElections
CSVs. Use subcommands to index outputs, list indexed elections, query rows
or vote totals, or export.`,
}

// --- store subcommand ---

var resultsStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Index converted CSVs into the results database",
	Long: `Store reads every "<YYYYMMDD>__md__general__county.csv" in --output-dir
and loads it into the SQLite index. Files unchanged since the last run are
skipped; changed files replace that election's rows.`,
	RunE: runResultsStore,
}

func runResultsStore(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	outputDir := stringSetting(cmd, "output-dir", "output_dir")
	summary, err := store.Ingest(context.Background(), outputDir, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- list subcommand ---

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed elections",
	RunE:  runResultsList,
}

func runResultsList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	elections, err := store.Elections(context.Background())
	if err != nil {
		return err
	}
	return printElections(os.Stdout, elections)
}

func printElections(w io.Writer, elections []results.Election) error {
	if len(elections) == 0 {
		_, err := fmt.Fprintln(w, "No elections indexed.")
		return err
	}
	fmt.Fprintf(w, "%-8s  %8s  %s\n", "Date", "Rows", "Source")
	for _, e := range elections {
		fmt.Fprintf(w, "%-8s  %8d  %s\n", e.Date, e.RowCount, e.SourceFile)
	}
	_, err := fmt.Fprintf(w, "\n%d elections\n", len(elections))
	return err
}

// --- query subcommand ---

var resultsQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "List indexed result rows matching filters",
	RunE:  runResultsQuery,
}

func runResultsQuery(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := store.Query(context.Background(), queryOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(os.Stdout, rows)
	}
	if len(rows) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-8s  %-16s  %-10s  %-28s  %-5s  %-28s  %8s  %s\n",
		"Date", "County", "Precinct", "Office", "Party", "Candidate", "Votes", "Winner")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 124))
	for _, r := range rows {
		fmt.Fprintf(os.Stdout, "%-8s  %-16s  %-10s  %-28s  %-5s  %-28s  %8d  %s\n",
			r.ElectionDate, truncate(r.County, 16), truncate(r.Precinct, 10), truncate(r.Office, 28),
			truncate(r.Party, 5), truncate(r.Candidate, 28), r.Votes, r.WinnerCell())
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(rows))
	return nil
}

// --- totals subcommand ---

var resultsTotalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Sum votes per candidate and office across counties",
	RunE:  runResultsTotals,
}

func runResultsTotals(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	totals, err := store.Totals(context.Background(), queryOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(os.Stdout, totals)
	}
	if len(totals) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-8s  %-32s  %-8s  %-32s  %-5s  %10s\n",
		"Date", "Office", "District", "Candidate", "Party", "Votes")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 108))
	for _, t := range totals {
		mark := ""
		if t.Winner {
			mark = " *"
		}
		fmt.Fprintf(os.Stdout, "%-8s  %-32s  %-8s  %-32s  %-5s  %10d%s\n",
			t.ElectionDate, truncate(t.Office, 32), truncate(t.District, 8),
			truncate(t.Candidate, 32), truncate(t.Party, 5), t.Votes, mark)
	}
	return nil
}

// --- export subcommand ---

var resultsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export indexed results to YAML or JSON",
	Long: `Export writes the indexed rows (or a filtered subset) to export.yaml or
export.json in the index directory. Supports the same filter flags as query.`,
	RunE: runResultsExport,
}

func runResultsExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd)

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

func openStore(cmd *cobra.Command) (*results.Store, error) {
	cfg := types.ResultsConfig{
		IndexDir:   stringSetting(cmd, "index-dir", "index_dir"),
		MaxResults: intSetting(cmd, "max-results", "max_results"),
	}
	return results.NewStore(cfg)
}

func queryOptsFromFlags(cmd *cobra.Command) results.QueryOptions {
	date, _ := cmd.Flags().GetString("date")
	county, _ := cmd.Flags().GetString("county")
	office, _ := cmd.Flags().GetString("office")
	candidate, _ := cmd.Flags().GetString("candidate")
	party, _ := cmd.Flags().GetString("party")
	winners, _ := cmd.Flags().GetBool("winners")

	return results.QueryOptions{
		ElectionDate: date,
		County:       county,
		Office:       office,
		Candidate:    candidate,
		Party:        party,
		WinnersOnly:  winners,
	}
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "filter by election date (YYYYMMDD)")
	cmd.Flags().String("county", "", "filter by county name")
	cmd.Flags().String("office", "", "filter by office (substring, case-insensitive)")
	cmd.Flags().String("candidate", "", "filter by candidate (substring, case-insensitive)")
	cmd.Flags().String("party", "", "filter by party")
	cmd.Flags().Bool("winners", false, "only rows marked as winners")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	resultsCmd.PersistentFlags().String("index-dir", defaultIndexDir, "directory for the results database and exports")
	resultsCmd.PersistentFlags().Int("max-results", 50, "maximum number of query results")

	resultsStoreCmd.Flags().String("output-dir", defaultOutputDir, "directory of converted OpenElections CSVs")

	addFilterFlags(resultsQueryCmd)
	resultsQueryCmd.Flags().Bool("json", false, "output results as JSON")

	addFilterFlags(resultsTotalsCmd)
	resultsTotalsCmd.Flags().Bool("json", false, "output totals as JSON")

	addFilterFlags(resultsExportCmd)
	resultsExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	resultsCmd.AddCommand(resultsStoreCmd)
	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsQueryCmd)
	resultsCmd.AddCommand(resultsTotalsCmd)
	resultsCmd.AddCommand(resultsExportCmd)

	rootCmd.AddCommand(resultsCmd)
}
