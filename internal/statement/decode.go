// Package statement turns raw bank and credit-card CSV exports into
// canonical transaction rows. Each supported export layout is a closed
// variant with its own field mapping; detection is a pure function over the
// header set.
package statement

import (
	"bytes"
	"encoding/csv"
	"strings"
	"unicode/utf8"
)

// Decode interprets statement bytes as UTF-8 (BOM tolerated) and falls back
// to Latin-1, which accepts any byte sequence. It never fails.
func Decode(b []byte) string {
	b = bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(b) {
		return string(b)
	}

	// Latin-1: each byte is the identical code point.
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}

// readCSV parses decoded statement text into a header row and data records.
// Ragged records are tolerated; mapping guards every column access. A file
// without a header row yields no headers and no records.
func readCSV(text string) ([]string, [][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[0], all[1:], nil
}

// fieldIndex maps lower-cased trimmed header names to their column position.
func fieldIndex(headers []string) map[string]int {
	fields := make(map[string]int, len(headers))
	for i, name := range headers {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := fields[key]; !ok {
			fields[key] = i
		}
	}
	return fields
}

// cell returns the trimmed value of the named column, or "" when the column
// is absent from the layout or the record is short.
func cell(fields map[string]int, rec []string, name string) string {
	idx, ok := fields[name]
	if !ok || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}
