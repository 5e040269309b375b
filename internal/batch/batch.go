// Package batch translates many independent files with one shared table.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/MimeLyc/sanzang/internal/apperr"
	"github.com/MimeLyc/sanzang/pkg/file"
	"github.com/MimeLyc/sanzang/pkg/log"
)

// Pair names one input file and the listing file it is translated to.
type Pair struct {
	Input  string
	Output string
}

// FileTranslator translates a single file. *translator.Translator
// satisfies it.
type FileTranslator interface {
	TranslateFile(ctx context.Context, inPath, outPath string) error
}

// Translator fans file pairs out to a Runner.
type Translator struct {
	files  FileTranslator
	runner Runner

	mu       sync.Mutex
	progress io.Writer
}

type Option func(*Translator)

// WithProgress writes the absolute path of every completed output file to
// w, one per line. Lines from concurrent workers are not ordered.
func WithProgress(w io.Writer) Option {
	return func(t *Translator) {
		t.progress = w
	}
}

func New(files FileTranslator, runner Runner, opts ...Option) *Translator {
	if runner == nil {
		runner = Sequential{}
	}
	t := &Translator{
		files:  files,
		runner: runner,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TranslateBatch translates every pair and returns the output paths in
// pair order. The first failure stops the batch and is returned without
// partial results.
func (t *Translator) TranslateBatch(ctx context.Context, pairs []Pair) ([]string, error) {
	log.Info("Translating %d files", len(pairs))

	err := t.runner.Run(ctx, len(pairs), func(ctx context.Context, i int) error {
		p := pairs[i]
		if err := t.files.TranslateFile(ctx, p.Input, p.Output); err != nil {
			return err
		}
		t.report(p.Output)
		return nil
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Error("Batch aborted: %v", err)
		}
		return nil, err
	}

	outputs := make([]string, len(pairs))
	for i, p := range pairs {
		outputs[i] = p.Output
	}
	return outputs, nil
}

// TranslateToDir translates each input into outDir, keeping its base name.
func (t *Translator) TranslateToDir(ctx context.Context, inputs []string, outDir string) ([]string, error) {
	if err := file.CheckDir(outDir); err != nil {
		return nil, apperr.WrapError(err, apperr.ErrIO, "output directory is not usable").
			WithContext("dir", outDir)
	}

	pairs := make([]Pair, len(inputs))
	for i, in := range inputs {
		pairs[i] = Pair{Input: in, Output: file.InDir(outDir, in)}
	}
	return t.TranslateBatch(ctx, pairs)
}

func (t *Translator) report(path string) {
	if t.progress == nil {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := fmt.Fprintln(t.progress, path); err != nil {
		log.Warn("Failed to write progress for %s: %v", path, err)
	}
}
