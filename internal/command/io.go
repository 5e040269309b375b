package command

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/sanzang/internal/apperr"
	"github.com/MimeLyc/sanzang/internal/table"
	"github.com/MimeLyc/sanzang/internal/translator"
	"github.com/MimeLyc/sanzang/pkg/log"
	"github.com/MimeLyc/sanzang/pkg/textenc"
)

// loadTable reads the table at path in enc.
func (a *App) loadTable(path string, enc textenc.Encoding) (*table.Table, error) {
	tbl, err := table.Load(path, enc)
	if err != nil {
		return nil, err
	}
	if log.GetLogger().Level() <= log.LevelInfo {
		log.Info("Loaded table %s: %d records, %d columns, source language %s",
			path, tbl.Len(), tbl.Width(), tbl.DetectLanguage())
	}
	return tbl, nil
}

func (a *App) loadTranslator(path string, enc textenc.Encoding) (*translator.Translator, error) {
	tbl, err := a.loadTable(path, enc)
	if err != nil {
		return nil, err
	}
	return translator.New(tbl, translator.WithChunkLines(a.cfg.Text.ChunkLines)), nil
}

// withText runs fn with decoded input and encoding output. inPath and
// outPath default to the command's standard streams when empty.
func withText(cmd *cobra.Command, enc textenc.Encoding, inPath, outPath string, fn func(r io.Reader, w io.Writer) error) (err error) {
	var in io.Reader = cmd.InOrStdin()
	if inPath != "" {
		f, err := os.Open(inPath)
		if err != nil {
			return apperr.WrapError(err, apperr.ErrIO, "failed to open input file").
				WithContext("input", inPath)
		}
		defer f.Close()
		in = f
	}

	var out io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return apperr.WrapError(err, apperr.ErrIO, "failed to create output file").
				WithContext("output", outPath)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = apperr.WrapError(cerr, apperr.ErrIO, "failed to close output file").
					WithContext("output", outPath)
			}
		}()
		out = f
	}

	encoder := enc.NewWriter(out)
	if err := fn(enc.NewReader(in), encoder); err != nil {
		return ioError(err)
	}
	if err := encoder.Close(); err != nil {
		return ioError(err)
	}
	return nil
}

// ioError marks a stream error as IO unless it is already typed or is a
// cancellation.
func ioError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) || errors.Is(err, context.Canceled) {
		return err
	}
	return apperr.WrapError(err, apperr.ErrIO, "failed to process text")
}
