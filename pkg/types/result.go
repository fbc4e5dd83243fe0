// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strconv"

// Format identifies which legacy layout a source file uses. The set is
// fixed: every input is classified as exactly one of these.
type Format string

const (
	// FormatPivoted is a spreadsheet-style pivot: office marker row,
	// candidate header row, then one row of vote counts per county.
	FormatPivoted Format = "pivoted"

	// FormatPipe is a flat export with "|" separated fields and \N for NULL.
	FormatPipe Format = "pipe"

	// FormatModern is a tidy CSV with one row per precinct and candidate.
	FormatModern Format = "modern"
)

// Columns is the OpenElections header, in output order.
var Columns = []string{"county", "precinct", "office", "district", "party", "candidate", "votes", "winner"}

// WinnerTrue is the only non-empty value the winner column may take.
const WinnerTrue = "TRUE"

// Row is one normalized result: a single candidate's votes for one office
// in one county (or precinct).
type Row struct {
	// County is the normalized county name, e.g. "Prince George's" or "Baltimore City".
	County string `json:"county" yaml:"county"`

	// Precinct is empty when the source has no precinct granularity.
	Precinct string `json:"precinct" yaml:"precinct"`

	// Office is the normalized office title with "Vote For" suffixes removed.
	Office string `json:"office" yaml:"office"`

	District string `json:"district" yaml:"district"`
	Party    string `json:"party" yaml:"party"`

	Candidate string `json:"candidate" yaml:"candidate"`

	// Votes is always a successfully parsed, non-negative count.
	Votes int `json:"votes" yaml:"votes"`

	Winner bool `json:"winner" yaml:"winner"`
}

// WinnerCell returns the CSV encoding of Winner: "TRUE" or "".
func (r Row) WinnerCell() string {
	if r.Winner {
		return WinnerTrue
	}
	return ""
}

// Record returns the row's cells in Columns order.
func (r Row) Record() []string {
	return []string{
		r.County,
		r.Precinct,
		r.Office,
		r.District,
		r.Party,
		r.Candidate,
		strconv.Itoa(r.Votes),
		r.WinnerCell(),
	}
}
