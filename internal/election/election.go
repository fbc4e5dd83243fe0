// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package election maps source file names to OpenElections output names.
// Inputs are named "<year> General Election.csv" (or .txt); outputs are
// named after the election date, "<YYYYMMDD>__md__general__county.csv".
package election

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

var (
	// ErrUnrecognizedName is returned for files that do not follow the
	// "<year> General Election.(csv|txt)" pattern.
	ErrUnrecognizedName = errors.New("unrecognized filename format")

	// ErrNoElectionDate is returned when a year has no general-election date.
	ErrNoElectionDate = errors.New("no election date mapping")
)

var inputName = regexp.MustCompile(`(?i)^(\d{4})\s+General\s+Election\.(csv|txt)$`)

// electionDates holds the general-election date for every year with source data.
var electionDates = map[int]string{
	1986: "19861104",
	1988: "19881108",
	1990: "19901106",
	1992: "19921103",
	1994: "19941108",
	1996: "19961105",
	1998: "19981103",
	2000: "20001107",
	2002: "20021105",
	2012: "20121106",
	2014: "20141104",
	2016: "20161108",
	2018: "20181106",
	2020: "20201103",
	2022: "20221108",
	2024: "20241105",
}

const outputSuffix = "__md__general__county.csv"

// IsInputName reports whether name (a base name, not a path) matches the
// input naming pattern.
func IsInputName(name string) bool {
	return inputName.MatchString(name)
}

// ParseInputName extracts the election year from an input base name.
func ParseInputName(name string) (int, error) {
	m := inputName.FindStringSubmatch(name)
	if m == nil {
		return 0, fmt.Errorf("%w: %s", ErrUnrecognizedName, name)
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnrecognizedName, name)
	}
	return year, nil
}

// ElectionDate returns the YYYYMMDD general-election date for year.
func ElectionDate(year int) (string, error) {
	date, ok := electionDates[year]
	if !ok {
		return "", fmt.Errorf("%w for year %d", ErrNoElectionDate, year)
	}
	return date, nil
}

// OutputName returns the output file name for an input base name.
func OutputName(name string) (string, error) {
	year, err := ParseInputName(name)
	if err != nil {
		return "", err
	}
	date, err := ElectionDate(year)
	if err != nil {
		return "", err
	}
	return date + outputSuffix, nil
}

// DateFromOutputName returns the election date prefix of an output file
// name, or false when name is not an output file.
func DateFromOutputName(name string) (string, bool) {
	if len(name) != len("YYYYMMDD")+len(outputSuffix) || name[8:] != outputSuffix {
		return "", false
	}
	if _, err := strconv.Atoi(name[:8]); err != nil {
		return "", false
	}
	return name[:8], true
}

// Discover returns the sorted paths of the regular files in dir whose
// names match the input pattern.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading data directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !IsInputName(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
