package translator

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/MimeLyc/sanzang/internal/apperr"
	"github.com/MimeLyc/sanzang/pkg/log"
)

// TranslateIO reads UTF-8 text from r and writes its listing to w. Input is
// processed in chunks of whole lines and each chunk is written and flushed
// before the next is read, so memory use does not grow with the input.
// The line ending switches to CRLF at the first chunk containing a carriage
// return and stays there, so a CRLF text whose last line is unterminated
// renders the same as with RenderListing of the whole input.
func (t *Translator) TranslateIO(ctx context.Context, r io.Reader, w io.Writer) error {
	in := bufio.NewReader(r)
	out := bufio.NewWriter(w)

	var (
		chunk   strings.Builder
		count   int
		first   = 1
		newline = "\n"
	)

	flush := func() error {
		if count == 0 {
			return nil
		}
		source := chunk.String()
		if newline == "\n" {
			newline = newlineOf(source)
		}
		if _, err := out.WriteString(t.renderListing(source, first, newline)); err != nil {
			return err
		}
		if err := out.Flush(); err != nil {
			return err
		}
		first += count
		count = 0
		chunk.Reset()
		return nil
	}

	for {
		line, err := in.ReadString('\n')
		if line != "" {
			chunk.WriteString(line)
			count++
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if count == t.chunkLines {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := flush(); err != nil {
				return err
			}
		}
	}

	return flush()
}

// TranslateFile translates the file at inPath into a listing at outPath,
// both in the table's encoding.
func (t *Translator) TranslateFile(ctx context.Context, inPath, outPath string) (err error) {
	enc := t.table.Encoding()

	in, err := os.Open(inPath)
	if err != nil {
		return apperr.WrapError(err, apperr.ErrIO, "failed to open input file").
			WithContext("input", inPath)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return apperr.WrapError(err, apperr.ErrIO, "failed to create output file").
			WithContext("output", outPath)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = apperr.WrapError(cerr, apperr.ErrIO, "failed to close output file").
				WithContext("output", outPath)
		}
	}()

	encoder := enc.NewWriter(out)
	if err := t.TranslateIO(ctx, enc.NewReader(in), encoder); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return apperr.WrapError(err, apperr.ErrIO, "failed to translate file").
			WithContext("input", inPath).
			WithContext("output", outPath)
	}
	if err := encoder.Close(); err != nil {
		return apperr.WrapError(err, apperr.ErrIO, "failed to flush output file").
			WithContext("output", outPath)
	}

	log.Debug("Translated %s -> %s (%s)", inPath, outPath, enc.Name())
	return nil
}
