// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"

	"github.com/pdiddy/md-elections/internal/normalize"
	"github.com/pdiddy/md-elections/pkg/types"
)

// Column names in the modern precinct-level files.
const (
	colCountyName       = "County Name"
	colCountyCode       = "County"
	colDistrictPrecinct = "Election District - Precinct"
	colDistrict         = "Election District"
	colPrecinct         = "Election Precinct"
	colOffice           = "Office Name"
	colOfficeDistrict   = "Office District"
	colCandidate        = "Candidate Name"
	colParty            = "Party"
	colWinner           = "Winner"
)

// countyCodes maps the State Board of Elections county codes to names.
var countyCodes = map[string]string{
	"01": "Allegany",
	"02": "Anne Arundel",
	"03": "Baltimore City",
	"04": "Baltimore",
	"05": "Calvert",
	"06": "Caroline",
	"07": "Carroll",
	"08": "Cecil",
	"09": "Charles",
	"10": "Dorchester",
	"11": "Frederick",
	"12": "Garrett",
	"13": "Harford",
	"14": "Howard",
	"15": "Kent",
	"16": "Montgomery",
	"17": "Prince George's",
	"18": "Queen Anne's",
	"19": "St. Mary's",
	"20": "Somerset",
	"21": "Talbot",
	"22": "Washington",
	"23": "Wicomico",
	"24": "Worcester",
}

var winnerValues = map[string]bool{"Y": true, "TRUE": true, "1": true}

// ModernExtractor reads the tidy precinct-level CSVs: one row per
// precinct and candidate, with votes possibly split across several
// "... Votes" columns by voting method.
type ModernExtractor struct{}

// Format implements Extractor.
func (ModernExtractor) Format() types.Format { return types.FormatModern }

// record gives by-name access to one CSV row.
type record struct {
	index  map[string]int
	fields []string
}

// get returns the trimmed cell under name, or "" when the column is
// missing from the header or the row is short.
func (r record) get(name string) string {
	i, ok := r.index[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// Extract implements Extractor.
func (ModernExtractor) Extract(text string) ([]types.Row, error) {
	records, err := readRecords(text)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	index := make(map[string]int, len(header))
	var voteCols []int
	for i, h := range header {
		index[h] = i
		if isVoteColumn(h) {
			voteCols = append(voteCols, i)
		}
	}

	rows := make([]types.Row, 0, len(records)-1)
	for _, fields := range records[1:] {
		rec := record{index: index, fields: fields}

		votes := 0
		for _, col := range voteCols {
			if col < len(fields) {
				votes += countOrZero(fields[col])
			}
		}

		rows = append(rows, types.Row{
			County:    modernCounty(rec),
			Precinct:  modernPrecinct(rec),
			Office:    normalize.Office(rec.get(colOffice)),
			District:  normalize.Unquote(rec.get(colOfficeDistrict)),
			Party:     normalize.Unquote(rec.get(colParty)),
			Candidate: normalize.Unquote(rec.get(colCandidate)),
			Votes:     votes,
			Winner:    winnerValues[strings.ToUpper(rec.get(colWinner))],
		})
	}
	return rows, nil
}

// isVoteColumn reports whether a header holds a vote count that belongs in
// the total. Columns such as "Provisional Against Votes" are excluded.
func isVoteColumn(header string) bool {
	return strings.Contains(header, "Votes") && !strings.Contains(header, "Against")
}

// countOrZero parses a vote cell, treating anything unparseable as zero so
// that one bad column does not drop the whole row.
func countOrZero(cell string) int {
	n, _ := parseCount(cell)
	return n
}

// modernCounty prefers the county name column and falls back to the
// two-digit county code. An unknown code is kept as the county.
func modernCounty(rec record) string {
	name := rec.get(colCountyName)
	if name == "" {
		code := zeroPad2(rec.get(colCountyCode))
		name = code
		if n, ok := countyCodes[code]; ok {
			name = n
		}
	}
	return normalize.County(name)
}

func modernPrecinct(rec record) string {
	if p := rec.get(colDistrictPrecinct); p != "" {
		return p
	}
	district := rec.get(colDistrict)
	precinct := rec.get(colPrecinct)
	if district == "" && precinct == "" {
		return ""
	}
	return district + "-" + precinct
}

func zeroPad2(s string) string {
	for len(s) < 2 {
		s = "0" + s
	}
	return s
}
