// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"

	"github.com/pdiddy/md-elections/internal/normalize"
	"github.com/pdiddy/md-elections/pkg/types"
)

// Field positions in a pipe-delimited record.
const (
	pipeOffice = 0
	pipeCounty = 2
	pipeLast   = 3
	pipeMiddle = 4
	pipeFirst  = 5
	pipeParty  = 6
	pipeWinner = 7
	pipeVotes  = 9

	pipeMinFields = 10
)

// sqlNull is how the database export writes NULL.
const sqlNull = `\N`

const (
	writeInName     = "Other Write-Ins"
	writeInLastCode = "zz998"
	unknownName     = "Unknown"
)

// PipeExtractor reads the flat "|" separated database export. Each line is
// one candidate's county total.
type PipeExtractor struct{}

// Format implements Extractor.
func (PipeExtractor) Format() types.Format { return types.FormatPipe }

// Extract implements Extractor.
func (PipeExtractor) Extract(text string) ([]types.Row, error) {
	var rows []types.Row

	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) < pipeMinFields {
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		if parts[pipeVotes] == sqlNull {
			continue
		}
		votes, ok := parseCount(parts[pipeVotes])
		if !ok {
			continue
		}

		last := parts[pipeLast]
		candidate := joinName(parts[pipeFirst], parts[pipeMiddle], last)
		if strings.EqualFold(candidate, writeInName) || strings.EqualFold(last, writeInLastCode) {
			candidate = writeInName
		}

		party := parts[pipeParty]
		if party == sqlNull {
			party = ""
		}

		rows = append(rows, types.Row{
			County:    normalize.County(parts[pipeCounty]),
			Office:    normalize.Office(parts[pipeOffice]),
			Party:     party,
			Candidate: candidate,
			Votes:     votes,
			Winner:    parts[pipeWinner] == "1",
		})
	}

	return rows, nil
}

// joinName joins the non-empty, non-NULL name parts with spaces, or
// returns "Unknown" when there are none.
func joinName(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" && p != sqlNull {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return unknownName
	}
	return strings.Join(kept, " ")
}

// splitLines splits on \n, \r\n and bare \r.
func splitLines(text string) []string {
	return strings.Split(unifyLineEndings(text), "\n")
}
