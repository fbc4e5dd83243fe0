// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textread loads source files whose character encoding is unknown.
// The files span decades and several export tools, so decoding tries a
// fixed list of encodings and always ends with one that accepts any byte.
package textread

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names the decoder that produced a text.
type Encoding string

const (
	UTF8        Encoding = "utf-8"
	Windows1252 Encoding = "windows-1252"
	Latin1      Encoding = "iso-8859-1"
)

// undefined1252 are the bytes Windows-1252 leaves unassigned. A file
// containing any of them is not treated as Windows-1252.
var undefined1252 = [256]bool{0x81: true, 0x8D: true, 0x8F: true, 0x90: true, 0x9D: true}

// ReadFile reads the whole file at path and decodes it. Only I/O errors are
// returned; decoding itself cannot fail.
func ReadFile(path string) (string, Encoding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	text, enc := Decode(data)
	return text, enc, nil
}

// Decode converts data to a Go string, trying UTF-8 (with an optional byte
// order mark), then Windows-1252, then ISO-8859-1.
func Decode(data []byte) (string, Encoding) {
	if utf8.Valid(data) {
		if text, err := decodeWith(unicode.UTF8BOM, data); err == nil {
			return text, UTF8
		}
	}

	if !hasUndefined1252(data) {
		if text, err := decodeWith(charmap.Windows1252, data); err == nil {
			return text, Windows1252
		}
	}

	// Every byte maps to the code point of the same value.
	text, _ := decodeWith(charmap.ISO8859_1, data)
	return text, Latin1
}

func decodeWith(enc encoding.Encoding, data []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func hasUndefined1252(data []byte) bool {
	for _, b := range data {
		if undefined1252[b] {
			return true
		}
	}
	return false
}
