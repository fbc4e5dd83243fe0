// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"

	"github.com/pdiddy/md-elections/internal/normalize"
	"github.com/pdiddy/md-elections/pkg/types"
)

// officeMarkers identify the row that announces an office block.
var officeMarkers = []string{
	"Vote For",
	"Vote for",
	"Vote For One",
	"Vote For One Pair",
	"Vote for One Pair",
}

// PivotedExtractor reads the spreadsheet-style layout used by older
// county-level results. Each office is a block of rows:
//
//	Governor - Vote For One
//	,Alice (DEM),Bob (REP) Winner
//	Somerset County,120,80
//	...
//
// The marker row sets the office, the row with an empty first cell sets the
// candidate columns, and every following row with a county name supplies
// one vote count per candidate column.
type PivotedExtractor struct{}

// Format implements Extractor.
func (PivotedExtractor) Format() types.Format { return types.FormatPivoted }

type headerCandidate struct {
	name   string
	party  string
	winner bool
}

// Extract implements Extractor.
func (PivotedExtractor) Extract(text string) ([]types.Row, error) {
	records, err := readRecords(text)
	if err != nil {
		return nil, err
	}

	var (
		rows       []types.Row
		office     string
		candidates []headerCandidate
	)

	for _, fields := range records {
		cells := make([]string, len(fields))
		for i, c := range fields {
			cells[i] = strings.TrimSpace(c)
		}
		if isBlankRow(cells) {
			continue
		}

		first := normalize.Unquote(cells[0])

		if isOfficeMarker(first, cells[1:]) {
			office = normalize.Office(first)
			candidates = nil
			continue
		}

		if first == "" && office != "" {
			candidates = candidates[:0]
			for _, cell := range cells[1:] {
				if cell == "" {
					continue
				}
				name, party, winner := normalize.Candidate(cell)
				if name != "" {
					candidates = append(candidates, headerCandidate{name: name, party: party, winner: winner})
				}
			}
			continue
		}

		if office == "" || len(candidates) == 0 || first == "" {
			continue
		}

		county := normalize.County(first)
		for i, c := range candidates {
			col := i + 1
			if col >= len(cells) {
				continue
			}
			votes, ok := parseCount(cells[col])
			if !ok {
				continue
			}
			rows = append(rows, types.Row{
				County:    county,
				Office:    office,
				Party:     c.party,
				Candidate: c.name,
				Votes:     votes,
				Winner:    c.winner,
			})
		}
	}

	return rows, nil
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

// isOfficeMarker reports whether a row announces a new office: the first
// cell carries a "Vote For" phrase and at most one other cell is filled.
func isOfficeMarker(first string, rest []string) bool {
	if first == "" {
		return false
	}
	filled := 0
	for _, c := range rest {
		if c != "" {
			filled++
		}
	}
	if filled > 1 {
		return false
	}
	for _, m := range officeMarkers {
		if strings.Contains(first, m) {
			return true
		}
	}
	return false
}
