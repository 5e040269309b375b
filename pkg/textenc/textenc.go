// Package textenc resolves text encoding names and transcodes between the
// configured data encoding and UTF-8, which is what the rest of the program
// works in.
package textenc

import (
	"io"
	"slices"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"

	"github.com/MimeLyc/sanzang/internal/apperr"
)

// DefaultName is used whenever the host encoding is missing or obsolete.
const DefaultName = "UTF-8"

// Encoding pairs a canonical name with its x/text implementation.
type Encoding struct {
	name string
	enc  encoding.Encoding
}

// Unicode forms are resolved directly; ianaindex does not carry UTF-32.
var builtin = map[string]encoding.Encoding{
	"utf-8":    unicode.UTF8,
	"utf8":     unicode.UTF8,
	"utf-16":   unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	"utf-16le": unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16be": unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf-32":   utf32.UTF32(utf32.BigEndian, utf32.UseBOM),
	"utf-32le": utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM),
	"utf-32be": utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM),
}

var builtinNames = map[string]string{
	"utf-8":    "UTF-8",
	"utf8":     "UTF-8",
	"utf-16":   "UTF-16",
	"utf-16le": "UTF-16LE",
	"utf-16be": "UTF-16BE",
	"utf-32":   "UTF-32",
	"utf-32le": "UTF-32LE",
	"utf-32be": "UTF-32BE",
}

// UTF8 returns the UTF-8 encoding.
func UTF8() Encoding {
	return Encoding{name: "UTF-8", enc: unicode.UTF8}
}

// Lookup resolves an encoding by IANA or WHATWG name, case-insensitively.
func Lookup(name string) (Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Encoding{}, apperr.New(apperr.ErrEncoding, "empty encoding name")
	}

	if enc, ok := builtin[key]; ok {
		return Encoding{name: builtinNames[key], enc: enc}, nil
	}

	enc, err := ianaindex.IANA.Encoding(key)
	if err == nil && enc != nil {
		return Encoding{name: canonicalName(enc, name), enc: enc}, nil
	}

	enc, herr := htmlindex.Get(key)
	if herr == nil && enc != nil {
		return Encoding{name: canonicalName(enc, name), enc: enc}, nil
	}

	if err == nil {
		// IANA knows the name but x/text has no converter for it
		return Encoding{}, apperr.Newf(apperr.ErrEncoding, "unsupported encoding: %s", name).
			WithContext("encoding", name)
	}
	return Encoding{}, apperr.NewWithCause(apperr.ErrEncoding,
		"unknown encoding: "+name, err).WithContext("encoding", name)
}

func canonicalName(enc encoding.Encoding, fallback string) string {
	if n, err := ianaindex.IANA.Name(enc); err == nil {
		return n
	}
	if n, err := htmlindex.Name(enc); err == nil {
		return n
	}
	return strings.ToUpper(strings.TrimSpace(fallback))
}

// Names lists the encodings that Lookup can resolve, sorted
// case-insensitively.
func Names() []string {
	var candidates []encoding.Encoding
	for _, group := range [][]encoding.Encoding{
		charmap.All,
		japanese.All,
		korean.All,
		simplifiedchinese.All,
		traditionalchinese.All,
	} {
		candidates = append(candidates, group...)
	}

	seen := make(map[string]bool)
	var names []string
	add := func(n string) {
		if n == "" || seen[strings.ToUpper(n)] {
			return
		}
		seen[strings.ToUpper(n)] = true
		names = append(names, n)
	}

	for _, n := range builtinNames {
		add(n)
	}
	for _, enc := range candidates {
		n, err := ianaindex.IANA.Name(enc)
		if err != nil {
			n, err = htmlindex.Name(enc)
		}
		if err != nil {
			continue
		}
		if _, lerr := Lookup(n); lerr == nil {
			add(n)
		}
	}

	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(strings.ToUpper(a), strings.ToUpper(b))
	})
	return names
}

// DataEncoding picks the data encoding for a host default. ASCII variants
// and old IBM/DOS code pages are subsets of UTF-8 or obsolete, so UTF-8 is
// used instead.
func DataEncoding(hostName string) string {
	upper := strings.ToUpper(strings.TrimSpace(hostName))
	switch {
	case upper == "":
		return DefaultName
	case strings.Contains(upper, "ASCII"),
		strings.Contains(upper, "IBM"),
		strings.HasPrefix(upper, "ANSI_X3.4"),
		strings.HasPrefix(upper, "CP437"),
		upper == "C", upper == "POSIX":
		return DefaultName
	}
	return hostName
}

func (e Encoding) Name() string {
	if e.enc == nil {
		return "UTF-8"
	}
	return e.name
}

func (e Encoding) String() string {
	return e.Name()
}

func (e Encoding) impl() encoding.Encoding {
	if e.enc == nil {
		return unicode.UTF8
	}
	return e.enc
}

// NewReader decodes r into UTF-8.
func (e Encoding) NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, e.impl().NewDecoder())
}

// NewWriter encodes UTF-8 written to it into w. Close must be called to
// flush buffered output; it does not close w.
func (e Encoding) NewWriter(w io.Writer) io.WriteCloser {
	return transform.NewWriter(w, e.impl().NewEncoder())
}

// DecodeString converts encoded bytes to a UTF-8 string.
func (e Encoding) DecodeString(b []byte) (string, error) {
	out, err := e.impl().NewDecoder().Bytes(b)
	if err != nil {
		return "", apperr.WrapError(err, apperr.ErrEncoding, "cannot decode "+e.Name()+" text")
	}
	return string(out), nil
}

// EncodeString converts a UTF-8 string to the encoding.
func (e Encoding) EncodeString(s string) ([]byte, error) {
	out, err := e.impl().NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, apperr.WrapError(err, apperr.ErrEncoding, "cannot encode text as "+e.Name())
	}
	return out, nil
}
