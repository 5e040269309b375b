package translator

import (
	"strconv"
	"strings"

	"github.com/MimeLyc/sanzang/internal/table"
)

// Vocabulary returns the table records whose source term occurs in source,
// longest terms first.
func (t *Translator) Vocabulary(source string) []table.Record {
	return t.table.Match(source)
}

// Translate returns one text per table column. Index 0 is source itself;
// every other index is source with each vocabulary term replaced by its
// term in that column. Longer terms are replaced first, so a term is never
// split by a shorter term it contains. Replacement text is not protected
// from later, shorter terms.
func (t *Translator) Translate(source string) []string {
	texts := make([]string, t.table.Width())
	texts[0] = source

	vocab := t.Vocabulary(source)
	for col := 1; col < len(texts); col++ {
		text := source
		for _, rec := range vocab {
			text = strings.ReplaceAll(text, rec.Source(), rec.Term(col))
		}
		texts[col] = text
	}
	return texts
}

// RenderListing translates source and collates the result line by line:
//
//	[1.1] source line 1
//	[1.2] column 2 of line 1
//	...
//	<blank>
//
// pos is the number of the first line in source, which lets callers render
// a long text in pieces. Output uses CRLF if source contains a carriage
// return and LF otherwise.
func (t *Translator) RenderListing(source string, pos int) string {
	return t.renderListing(source, pos, newlineOf(source))
}

// newlineOf is CRLF if text contains a carriage return and LF otherwise.
func newlineOf(text string) string {
	if strings.Contains(text, "\r") {
		return "\r\n"
	}
	return "\n"
}

func (t *Translator) renderListing(source string, pos int, newline string) string {
	texts := t.Translate(source)
	columns := make([][]string, len(texts))
	for i, text := range texts {
		columns[i] = splitLines(text, newline)
	}

	var sb strings.Builder
	for line := range columns[0] {
		for col := range columns {
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(pos + line))
			sb.WriteByte('.')
			sb.WriteString(strconv.Itoa(col + 1))
			sb.WriteString("] ")
			if line < len(columns[col]) {
				sb.WriteString(columns[col][line])
			}
			sb.WriteString(newline)
		}
		sb.WriteString(newline)
	}
	return sb.String()
}

// splitLines splits text into lines. A terminator at the very end does not
// start another line; blank lines elsewhere are kept.
func splitLines(text, newline string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, newline), newline)
}
