package fileparse

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	apperrors "financehouse/internal/errors"
)

// csvContentTypes are the mime types accepted for CSV uploads. Browsers are
// inconsistent here, so a few spreadsheet-adjacent types are allowed when the
// extension also matches.
var csvContentTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"application/vnd.ms-excel": true,
	"text/plain":               true,
	"application/octet-stream": true,
}

// CSVParser parses comma or semicolon separated spreadsheets.
type CSVParser struct{}

// NewCSVParser creates a CSV file parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse rejects non-CSV uploads and empty files, then returns the header row
// and the data rows in file order. Rows with a deviating field count are kept
// as-is; per-row validation is the import pipeline's job.
func (p *CSVParser) Parse(filename, contentType string, data []byte) (*ParsedFile, error) {
	base := contentType
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		base = contentType[:idx]
	}
	base = strings.TrimSpace(strings.ToLower(base))

	if !hasExtension(filename, ".csv", ".txt") || (base != "" && !csvContentTypes[base]) {
		return nil, apperrors.ErrUnsupportedFormat
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, apperrors.ErrEmptyFile
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if delimiter := detectDelimiter(data); delimiter != 0 {
		reader.Comma = delimiter
	}

	var header []string
	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrUnsupportedFormat, err)
		}
		if header == nil {
			header = record
			continue
		}
		rows = append(rows, record)
	}

	if header == nil {
		return nil, apperrors.ErrEmptyFile
	}
	return &ParsedFile{Header: header, Rows: rows}, nil
}

// detectDelimiter picks semicolon when the first line contains semicolons but
// no commas, which is the common export format for pt-BR locales.
func detectDelimiter(data []byte) rune {
	firstLine := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		firstLine = data[:idx]
	}
	if bytes.ContainsRune(firstLine, ';') && !bytes.ContainsRune(firstLine, ',') {
		return ';'
	}
	return ','
}
