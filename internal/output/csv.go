// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output writes normalized result rows in the OpenElections CSV
// layout and reads them back.
package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/pdiddy/md-elections/pkg/types"
)

// ErrBadHeader is returned by ReadCSV when a file does not start with the
// OpenElections header.
var ErrBadHeader = errors.New("unexpected CSV header")

// WriteCSV writes rows to path with the OpenElections header and returns
// the number of data rows written. Missing parent directories are created.
// The file is written under a temporary name and renamed into place, so a
// failed write leaves no partial output.
func WriteCSV(path string, rows []types.Row) (int, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeRows(tmp, rows); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return 0, fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("renaming into %s: %w", path, err)
	}
	return len(rows), nil
}

func writeRows(w io.Writer, rows []types.Row) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(types.Columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a file previously written by WriteCSV.
func ReadCSV(path string) ([]types.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = len(types.Columns)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	if !slices.Equal(header, types.Columns) {
		return nil, fmt.Errorf("%w in %s: %v", ErrBadHeader, path, header)
	}

	var rows []types.Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		votes, err := strconv.Atoi(rec[6])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: invalid votes %q", path, len(rows)+2, rec[6])
		}
		rows = append(rows, types.Row{
			County:    rec[0],
			Precinct:  rec[1],
			Office:    rec[2],
			District:  rec[3],
			Party:     rec[4],
			Candidate: rec[5],
			Votes:     votes,
			Winner:    rec[7] == types.WinnerTrue,
		})
	}
	return rows, nil
}
