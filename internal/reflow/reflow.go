// Package reflow prepares CJK source text for direct translation by
// breaking it into short lines at punctuation and spacing, so that terms are
// never split across lines and listings stay readable.
package reflow

import (
	"strings"
	"unicode/utf8"
)

const (
	// marginMarker ends a CBETA-style edition margin such as
	// "T31n1586_p0060a19(00)║".
	marginMarker = '║'
	ideoSpace    = '　'

	// verseMaxLen is the longest indented line treated as verse.
	verseMaxLen = 15
)

func isEnder(r rune) bool {
	switch r {
	case '：', '，', '；', '。', '？', '！', '」', '』', '.', ';', ':', '?':
		return true
	}
	return false
}

func isStarter(r rune) bool {
	switch r {
	case '「', '『', ideoSpace, '\t':
		return true
	}
	return false
}

// Reflow reformats CJK text into one clause per line:
//
//  1. edition margins ending in "║" are removed;
//  2. short lines indented with a full-width space get a trailing
//     full-width space, which keeps verse apart from the following prose;
//  3. all line breaks are removed;
//  4. a break goes after punctuation that ends a clause;
//  5. a break goes before an opening quote or indentation;
//  6. the text ends with a single line break.
//
// CRLF line endings are kept if the input used them.
func Reflow(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = markVerse(stripMargin(line))
	}
	text = strings.Join(lines, "\n")

	crlf := strings.Contains(text, "\r")
	text = strings.NewReplacer("\r", "", "\n", "").Replace(text)

	text = breakAfterEnders(text)
	text = breakBeforeStarters(text)

	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if crlf {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	return text
}

func stripMargin(line string) string {
	if i := strings.LastIndex(line, string(marginMarker)); i >= 0 {
		return line[i+utf8.RuneLen(marginMarker):]
	}
	return line
}

// markVerse counts a trailing CR as content, so CRLF text only marks
// indented lines of up to 14 visible characters.
func markVerse(line string) string {
	rest, ok := strings.CutPrefix(line, string(ideoSpace))
	if !ok {
		return line
	}
	if n := utf8.RuneCountInString(rest); n < 1 || n > verseMaxLen {
		return line
	}
	return line + string(ideoSpace)
}

func breakAfterEnders(text string) string {
	var sb strings.Builder
	sb.Grow(len(text) + len(text)/8)

	prev := utf8.RuneError
	for i, r := range text {
		if i > 0 && isEnder(prev) && !isEnder(r) {
			sb.WriteByte('\n')
		}
		sb.WriteRune(r)
		prev = r
	}
	return sb.String()
}

func breakBeforeStarters(text string) string {
	var sb strings.Builder
	sb.Grow(len(text) + len(text)/8)

	prev := utf8.RuneError
	for i, r := range text {
		if i > 0 && isStarter(r) && !isStarter(prev) && !isEnder(prev) && prev != '\n' {
			sb.WriteByte('\n')
		}
		sb.WriteRune(r)
		prev = r
	}
	return sb.String()
}
