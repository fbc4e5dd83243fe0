// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/md-elections/internal/normalize"
	"github.com/pdiddy/md-elections/internal/textread"
	"github.com/pdiddy/md-elections/pkg/types"
)

const pipeExt = ".txt"

// Detect picks the layout of a source file. A .txt extension always means
// the pipe-delimited export. For anything else the first CSV record is
// inspected: a header naming both "Candidate Name" and "Office Name" marks
// the modern tidy layout, and everything else is treated as a pivoted sheet.
func Detect(path, text string) types.Format {
	if strings.EqualFold(filepath.Ext(path), pipeExt) {
		return types.FormatPipe
	}

	header, err := newCSVReader(text).Read()
	if err != nil {
		return types.FormatPivoted
	}

	var hasCandidate, hasOffice bool
	for _, h := range header {
		switch normalize.Unquote(h) {
		case "Candidate Name":
			hasCandidate = true
		case "Office Name":
			hasOffice = true
		}
	}
	if hasCandidate && hasOffice {
		return types.FormatModern
	}
	return types.FormatPivoted
}

// DetectFile reads the file at path and returns its layout. Pipe files are
// classified by extension alone and are not read.
func DetectFile(path string) (types.Format, error) {
	if strings.EqualFold(filepath.Ext(path), pipeExt) {
		return types.FormatPipe, nil
	}
	text, _, err := textread.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Detect(path, text), nil
}

// newCSVReader returns a reader as forgiving as the hand-made sources
// need: stray quotes are kept, rows may have any number of cells, and
// classic Mac bare-CR line endings end a record.
func newCSVReader(text string) *csv.Reader {
	r := csv.NewReader(strings.NewReader(unifyLineEndings(text)))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return r
}

// unifyLineEndings rewrites \r\n and bare \r line endings as \n.
func unifyLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// readRecords returns every record in text. Records the CSV reader cannot
// parse are dropped.
func readRecords(text string) ([][]string, error) {
	r := newCSVReader(text)
	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// parseCount parses a vote cell such as "1,234". Blank, non-numeric and
// negative cells report false.
func parseCount(cell string) (int, bool) {
	s := strings.TrimSpace(normalize.Unquote(cell))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(s, ",", "")))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
