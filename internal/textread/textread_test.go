// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textread

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantText string
		wantEnc  Encoding
	}{
		{
			name:     "plain ascii",
			data:     []byte("County,Votes\n"),
			wantText: "County,Votes\n",
			wantEnc:  UTF8,
		},
		{
			name:     "utf-8 with byte order mark",
			data:     append([]byte{0xEF, 0xBB, 0xBF}, []byte("Prince George’s")...),
			wantText: "Prince George’s",
			wantEnc:  UTF8,
		},
		{
			name:     "windows-1252 smart quote",
			data:     []byte("Prince George\x92s"),
			wantText: "Prince George’s",
			wantEnc:  Windows1252,
		},
		{
			name:     "windows-1252 e acute",
			data:     []byte("Jos\xe9"),
			wantText: "José",
			wantEnc:  Windows1252,
		},
		{
			name:     "byte undefined in windows-1252 falls back to latin-1",
			data:     []byte("A\x81B\xe9"),
			wantText: "A\u0081Bé",
			wantEnc:  Latin1,
		},
		{
			name:     "empty input",
			data:     nil,
			wantText: "",
			wantEnc:  UTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, enc := Decode(tt.data)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantEnc, enc)
		})
	}
}

func TestDecode_NeverFails(t *testing.T) {
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	text, enc := Decode(all)
	assert.Equal(t, Latin1, enc)
	assert.Len(t, []rune(text), 256)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "1998 General Election.csv")
	require.NoError(t, os.WriteFile(path, []byte("Somerset County,120\r\n"), 0o644))

	text, enc, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Somerset County,120\r\n", text)
	assert.Equal(t, UTF8, enc)

	_, _, err = ReadFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
