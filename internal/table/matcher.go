package table

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// Match returns the records, in table order, whose source term occurs in
// text. Matching is literal and case-sensitive. Records with an empty
// source term never match.
func (t *Table) Match(text string) []Record {
	var matched []Record
	for _, rec := range t.records {
		src := rec.Source()
		if src != "" && strings.Contains(text, src) {
			matched = append(matched, rec)
		}
	}
	return matched
}

// DetectLanguage guesses the language of the source column.
func (t *Table) DetectLanguage() language.Tag {
	var sb strings.Builder
	for _, rec := range t.records {
		sb.WriteString(rec.Source())
		sb.WriteString(" ")
	}

	code := whatlanggo.DetectLang(sb.String()).Iso6391()
	if code == "" {
		return language.Und
	}
	tag, err := language.Parse(code)
	if err != nil {
		return language.Und
	}
	return tag
}
