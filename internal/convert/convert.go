// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns Maryland general-election source files into
// normalized OpenElections rows. A file is classified as one of three
// fixed layouts and handed to the matching Extractor; the batch functions
// write one CSV per input.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/md-elections/internal/election"
	"github.com/pdiddy/md-elections/internal/output"
	"github.com/pdiddy/md-elections/internal/textread"
	"github.com/pdiddy/md-elections/pkg/types"
)

// Extractor turns the decoded text of one source file into result rows.
// Each call starts from fresh state; nothing carries over between files.
type Extractor interface {
	// Format reports the layout this extractor understands.
	Format() types.Format

	// Extract parses text and returns the rows in source order.
	Extract(text string) ([]types.Row, error)
}

// ExtractorFor returns the extractor for format. Unknown formats fall back
// to the pivoted extractor, which is also what Detect picks for any CSV it
// cannot otherwise classify.
func ExtractorFor(format types.Format) Extractor {
	switch format {
	case types.FormatPipe:
		return PipeExtractor{}
	case types.FormatModern:
		return ModernExtractor{}
	default:
		return PivotedExtractor{}
	}
}

// FileResult describes one converted source file.
type FileResult struct {
	Input    string
	Output   string
	Format   types.Format
	Encoding textread.Encoding
	Rows     int
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath returns where the conversion of inputPath is written. Errors
// from the naming contract (unrecognized name, year without an election
// date) are returned unchanged.
func OutputPath(inputPath, outputDir string) (string, error) {
	name, err := election.OutputName(filepath.Base(inputPath))
	if err != nil {
		return "", err
	}
	return filepath.Join(outputDir, name), nil
}

// ExtractFile decodes and classifies the file at path and extracts its rows.
func ExtractFile(path string) ([]types.Row, FileResult, error) {
	res := FileResult{Input: path}

	text, enc, err := textread.ReadFile(path)
	if err != nil {
		return nil, res, err
	}
	res.Encoding = enc
	res.Format = Detect(path, text)

	rows, err := ExtractorFor(res.Format).Extract(text)
	if err != nil {
		return nil, res, fmt.Errorf("extracting %s rows from %s: %w", res.Format, path, err)
	}
	res.Rows = len(rows)
	return rows, res, nil
}

// ConvertFile converts one source file into cfg.OutputDir. The output name
// is resolved before the input is read, so a naming error never produces
// an output file.
func ConvertFile(inputPath string, cfg types.ConversionConfig) (FileResult, error) {
	outPath, err := OutputPath(inputPath, cfg.OutputDir)
	if err != nil {
		return FileResult{Input: inputPath}, err
	}

	rows, res, err := ExtractFile(inputPath)
	if err != nil {
		return res, err
	}
	res.Output = outPath

	n, err := output.WriteCSV(outPath, rows)
	if err != nil {
		return res, err
	}
	res.Rows = n

	if cfg.XLSX {
		xlsxPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".xlsx"
		date, _ := election.DateFromOutputName(filepath.Base(outPath))
		if err := output.WriteXLSX(xlsxPath, date, rows); err != nil {
			return res, fmt.Errorf("writing %s: %w", xlsxPath, err)
		}
	}
	return res, nil
}

// ConvertBatch converts each input in order, printing per-file status to w
// and returning a summary. Two inputs that map to the same output (for
// example a .csv and a .txt for one year) are not allowed to overwrite
// each other; the later one fails.
func ConvertBatch(ctx context.Context, inputs []string, cfg types.ConversionConfig, w io.Writer) (BatchResult, error) {
	var result BatchResult
	claimed := make(map[string]string)

	for _, in := range inputs {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		base := filepath.Base(in)
		outPath, err := OutputPath(in, cfg.OutputDir)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			result.Failed++
			continue
		}
		if prev, ok := claimed[outPath]; ok {
			fmt.Fprintf(w, "failed:  %s (output %s already written from %s)\n", base, outPath, filepath.Base(prev))
			result.Failed++
			continue
		}
		claimed[outPath] = in

		if cfg.SkipExisting {
			if _, err := os.Stat(outPath); err == nil {
				fmt.Fprintf(w, "skipped: %s (%s already exists)\n", base, outPath)
				result.Skipped++
				continue
			}
		}

		res, err := ConvertFile(in, cfg)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
			result.Failed++
			continue
		}

		fmt.Fprintf(w, "Wrote %s (%d rows, %s, %s)\n", res.Output, res.Rows, res.Format, res.Encoding)
		result.Converted++
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}
