package table

import (
	"iter"
	"slices"
	"strings"

	"github.com/MimeLyc/sanzang/pkg/textenc"
)

const (
	recordStart = "~|"
	recordEnd   = "|~"
	separator   = "|"
)

// Record is one row of a translation table: a source term followed by one
// equivalent term per destination column. Records are immutable.
type Record struct {
	terms []string
}

// NewRecord builds a record from its columns. The slice is copied.
func NewRecord(terms ...string) Record {
	return Record{terms: slices.Clone(terms)}
}

// Source returns the source language term (column 0).
func (r Record) Source() string {
	if len(r.terms) == 0 {
		return ""
	}
	return r.terms[0]
}

// Term returns the term in column col.
func (r Record) Term(col int) string {
	return r.terms[col]
}

// Width is the number of columns in the record.
func (r Record) Width() int {
	return len(r.terms)
}

// Terms returns a copy of all columns.
func (r Record) Terms() []string {
	return slices.Clone(r.terms)
}

// String formats the record as a table file line.
func (r Record) String() string {
	return recordStart + strings.Join(r.terms, separator) + recordEnd
}

// Table is a validated, read-only set of records sorted by descending
// source term length. A Table is safe for concurrent use.
type Table struct {
	records  []Record
	width    int
	encoding textenc.Encoding
}

// Len is the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Width is the number of columns shared by every record.
func (t *Table) Width() int {
	return t.width
}

// Encoding is the text encoding declared for the table and the texts
// translated with it.
func (t *Table) Encoding() textenc.Encoding {
	return t.encoding
}

// Record returns the record at index i in table order.
func (t *Table) Record(i int) Record {
	return t.records[i]
}

// All iterates over the records in table order.
func (t *Table) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, rec := range t.records {
			if !yield(i, rec) {
				return
			}
		}
	}
}

// Find returns the first record whose source term equals term.
func (t *Table) Find(term string) (Record, bool) {
	for _, rec := range t.records {
		if rec.Source() == term {
			return rec, true
		}
	}
	return Record{}, false
}
