package translator

import "github.com/MimeLyc/sanzang/internal/table"

// DefaultChunkLines is the number of input lines rendered per listing chunk
// by TranslateIO.
const DefaultChunkLines = 96

// Translator applies a translation table to source text and renders
// numbered listings. It holds no mutable state and may be shared between
// goroutines.
type Translator struct {
	table      *table.Table
	chunkLines int
}

type Option func(*Translator)

// WithChunkLines sets how many input lines TranslateIO renders at a time.
// Values below 1 are ignored.
func WithChunkLines(n int) Option {
	return func(t *Translator) {
		if n > 0 {
			t.chunkLines = n
		}
	}
}

func New(tbl *table.Table, opts ...Option) *Translator {
	t := &Translator{
		table:      tbl,
		chunkLines: DefaultChunkLines,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Table returns the table the translator applies.
func (t *Translator) Table() *table.Table {
	return t.table
}
