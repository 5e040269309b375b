package table

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/MimeLyc/sanzang/internal/apperr"
	"github.com/MimeLyc/sanzang/pkg/textenc"
)

// asciiSpace matches what surrounds a record line in hand-edited tables.
// Full-width spaces are left alone since they can be part of a term.
const asciiSpace = " \t\n\v\f\r\x00"

// Parse builds a Table from delimited text:
//
//	~|source|target 1|target 2|~
//
// One record per line. The ~| and |~ markers are optional; fields are
// separated by "|" and kept exactly as written. Every record must have the
// same number of fields, at least two. Records are ordered by descending
// length of the source term so that longer terms are applied before the
// shorter terms they contain.
func Parse(raw string, enc textenc.Encoding) (*Table, error) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r", ""), "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	if len(lines) < 1 {
		return nil, apperr.New(apperr.ErrMalformedTable, "table must have at least 1 row")
	}

	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		records = append(records, NewRecord(splitRecord(line)...))
	}

	width := records[0].Width()
	if width < 2 {
		return nil, apperr.MalformedTable(1, "table must have at least 2 columns")
	}
	for i, rec := range records {
		if rec.Width() != width {
			return nil, apperr.MalformedTable(i+1, fmt.Sprintf("column mismatch: line %d", i+1))
		}
	}

	slices.SortStableFunc(records, func(a, b Record) int {
		return cmp.Compare(utf8.RuneCountInString(b.Source()), utf8.RuneCountInString(a.Source()))
	})

	return &Table{
		records:  records,
		width:    width,
		encoding: enc,
	}, nil
}

func splitRecord(line string) []string {
	line = strings.Trim(line, asciiSpace)
	if line == "" {
		return nil
	}
	line = strings.TrimPrefix(line, recordStart)
	line = strings.TrimSuffix(line, recordEnd)
	return strings.Split(line, separator)
}
