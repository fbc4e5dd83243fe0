// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/md-elections/internal/convert"
	"github.com/pdiddy/md-elections/internal/election"
	"github.com/pdiddy/md-elections/pkg/types"
)

const (
	defaultDataDir   = "Data"
	defaultOutputDir = "Data/openelections"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert general election files to OpenElections CSVs",
	Long: `Convert reads "<year> General Election.csv|txt" files, detects which
legacy layout each one uses, and writes one normalized
"<YYYYMMDD>__md__general__county.csv" per input.

With no arguments every matching file in --data-dir is converted in name
order. A file whose name does not match, or whose year has no known
election date, fails without producing output.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("data-dir", defaultDataDir, "directory containing source election files")
	convertCmd.Flags().String("output-dir", defaultOutputDir, "directory for converted OpenElections CSVs")
	convertCmd.Flags().Bool("xlsx", false, "also write an .xlsx workbook next to each CSV")
	convertCmd.Flags().Bool("skip-existing", false, "leave already converted outputs untouched")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := types.ConversionConfig{
		DataDir:      stringSetting(cmd, "data-dir", "data_dir"),
		OutputDir:    stringSetting(cmd, "output-dir", "output_dir"),
		XLSX:         boolSetting(cmd, "xlsx", "xlsx"),
		SkipExisting: boolSetting(cmd, "skip-existing", "skip_existing"),
	}

	inputs, err := inputFiles(cfg.DataDir, args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		fmt.Fprintf(os.Stderr, "No \"<year> General Election\" files found in %s\n", cfg.DataDir)
		return nil
	}

	result, err := convert.ConvertBatch(context.Background(), inputs, cfg, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

// inputFiles returns args when given, otherwise the matching files in dataDir.
func inputFiles(dataDir string, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	return election.Discover(dataDir)
}

var detectCmd = &cobra.Command{
	Use:   "detect [files...]",
	Short: "Print the detected layout of each source file",
	Long: `Detect classifies source files without converting them: "pipe" for
.txt exports, "modern" for CSVs with "Candidate Name" and "Office Name"
columns, and "pivoted" for every other CSV.`,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().String("data-dir", defaultDataDir, "directory containing source election files")

	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	inputs, err := inputFiles(stringSetting(cmd, "data-dir", "data_dir"), args)
	if err != nil {
		return err
	}

	failed := 0
	for _, in := range inputs {
		format, err := convert.DetectFile(in)
		if err != nil {
			fmt.Fprintf(os.Stdout, "%-8s  %s (%v)\n", "error", filepath.Base(in), err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stdout, "%-8s  %s\n", format, filepath.Base(in))
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be read", failed)
	}
	return nil
}
