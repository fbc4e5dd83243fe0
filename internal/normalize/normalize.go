// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize cleans the free-text fields of Maryland election
// sources (office titles, county names, candidate cells) so that results
// from different years and layouts compare equal.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// space matches ASCII and Unicode whitespace, including NBSP.
const space = `[\s\p{Z}\x{85}]`

var (
	voteForSuffix      = regexp.MustCompile(`(?i)` + space + `*-` + space + `*Vote For.*$`)
	voteForParenSuffix = regexp.MustCompile(`(?i)` + space + `*-` + space + `*\(Vote for.*$`)
	countySuffix       = regexp.MustCompile(`(?i)` + space + `+County$`)
	citySuffix         = regexp.MustCompile(`(?i)` + space + `+city$`)
	trailingParens     = regexp.MustCompile(`\(([^()]*)\)` + space + `*$`)
	spaceRun           = regexp.MustCompile(space + `+`)
)

// officeSynonyms collapses titles that were renamed between election years.
var officeSynonyms = map[string]string{
	"President and Vice President of the United States": "President",
	"President / Vice President":                        "President",
	"President - Vice Pres":                             "President",
	"Governor / Lt. Governor":                           "Governor",
}

// countyFixes is keyed on the grave-accent spellings found in the sources.
var countyFixes = map[string]string{
	"Prince George`s": "Prince George's",
	"Queen Anne`s":    "Queen Anne's",
	"St. Mary`s":      "St. Mary's",
}

const winnerSuffix = " Winner"

// Unquote trims surrounding whitespace and then any enclosing double quotes.
func Unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}

// CollapseSpace replaces every whitespace run with a single space and trims the ends.
func CollapseSpace(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// Office returns the canonical title for a raw office cell. "Vote For One"
// style suffixes are removed and known renamings are collapsed, so
// "Comptroller - Vote For One" becomes "Comptroller".
func Office(raw string) string {
	office := Unquote(raw)
	office = voteForSuffix.ReplaceAllString(office, "")
	office = voteForParenSuffix.ReplaceAllString(office, "")
	office = strings.TrimFunc(office, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	if canonical, ok := officeSynonyms[office]; ok {
		return canonical
	}
	return office
}

// County returns the canonical county name: no " County" suffix, "City"
// capitalized, and straight apostrophes. Applying it twice is the same as
// applying it once.
func County(raw string) string {
	county := strings.TrimSpace(Unquote(raw))
	for {
		trimmed := countySuffix.ReplaceAllString(county, "")
		if trimmed == county {
			break
		}
		county = trimmed
	}
	county = citySuffix.ReplaceAllString(county, " City")
	// The fix table matches grave accents, so it runs before the blanket replace.
	if fixed, ok := countyFixes[county]; ok {
		county = fixed
	}
	return strings.ReplaceAll(county, "`", "'")
}

// Candidate splits a header cell such as "Jane Doe (DEM) Winner" into the
// candidate name, the party from a trailing parenthesized group, and the
// winner marker.
func Candidate(cell string) (name, party string, winner bool) {
	text := Unquote(cell)

	if strings.HasSuffix(text, winnerSuffix) {
		winner = true
		text = strings.TrimRightFunc(text[:len(text)-len(winnerSuffix)], unicode.IsSpace)
	}

	name = text
	if loc := trailingParens.FindStringSubmatchIndex(text); loc != nil {
		party = strings.TrimSpace(text[loc[2]:loc[3]])
		name = text[:loc[0]]
	}

	return CollapseSpace(name), CollapseSpace(party), winner
}
