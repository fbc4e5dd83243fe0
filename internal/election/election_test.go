// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package election

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "csv", input: "1998 General Election.csv", want: "19981103__md__general__county.csv"},
		{name: "txt", input: "2002 General Election.txt", want: "20021105__md__general__county.csv"},
		{name: "upper case extension", input: "2024 General Election.CSV", want: "20241105__md__general__county.csv"},
		{name: "mixed case words", input: "2012 general ELECTION.csv", want: "20121106__md__general__county.csv"},
		{name: "extra spaces", input: "1986  General   Election.txt", want: "19861104__md__general__county.csv"},
		{name: "primary election", input: "1998 Primary Election.csv", wantErr: ErrUnrecognizedName},
		{name: "xlsx", input: "1998 General Election.xlsx", wantErr: ErrUnrecognizedName},
		{name: "unmapped year", input: "2004 General Election.csv", wantErr: ErrNoElectionDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OutputName(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateFromOutputName(t *testing.T) {
	date, ok := DateFromOutputName("19981103__md__general__county.csv")
	assert.True(t, ok)
	assert.Equal(t, "19981103", date)

	_, ok = DateFromOutputName("19981103__md__general__county.xlsx")
	assert.False(t, ok)
	_, ok = DateFromOutputName("abcdefgh__md__general__county.csv")
	assert.False(t, ok)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"2000 General Election.csv",
		"1998 General Election.txt",
		"notes.txt",
		"2000 Primary Election.csv",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "1990 General Election.csv"), 0o755))

	paths, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "1998 General Election.txt"),
		filepath.Join(dir, "2000 General Election.csv"),
	}, paths)

	_, err = Discover(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
