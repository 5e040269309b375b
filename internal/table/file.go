package table

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/MimeLyc/sanzang/internal/apperr"
	"github.com/MimeLyc/sanzang/pkg/textenc"
)

// Load reads and parses a table file stored in enc.
func Load(path string, enc textenc.Encoding) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.WrapError(err, apperr.ErrIO, "table file does not exist").
				WithContext("path", path)
		}
		return nil, apperr.WrapError(err, apperr.ErrIO, "failed to open table file").
			WithContext("path", path)
	}
	defer f.Close()

	return Read(f, enc)
}

// Read parses a table from r, decoding it from enc.
func Read(r io.Reader, enc textenc.Encoding) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperr.WrapError(err, apperr.ErrIO, "failed to read table")
	}
	text, err := enc.DecodeString(data)
	if err != nil {
		return nil, err
	}
	return Parse(text, enc)
}
