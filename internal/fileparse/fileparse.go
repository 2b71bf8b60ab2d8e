// Package fileparse turns uploaded spreadsheet bytes into raw rows.
//
// Parsers implement the file-parser port consumed by the import service: they
// only produce a header and an ordered list of rows, never domain objects.
package fileparse

import (
	"strings"
)

// ParsedFile is the raw output of a parser: the header row plus every data
// row, in file order.
type ParsedFile struct {
	Header []string
	Rows   [][]string
}

// Parser converts raw upload bytes into rows, or fails with a structured
// parse error (UNSUPPORTED_FORMAT, EMPTY_FILE).
type Parser interface {
	Parse(filename, contentType string, data []byte) (*ParsedFile, error)
}

func hasExtension(filename string, exts ...string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
