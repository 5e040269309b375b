package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/MimeLyc/sanzang/internal/apperr"
	"github.com/MimeLyc/sanzang/internal/table"
	"github.com/MimeLyc/sanzang/internal/translator"
	"github.com/MimeLyc/sanzang/pkg/log"
	"github.com/MimeLyc/sanzang/pkg/textenc"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type MockFileTranslator struct {
	mock.Mock
}

func (m *MockFileTranslator) TranslateFile(ctx context.Context, inPath, outPath string) error {
	args := m.Called(ctx, inPath, outPath)
	return args.Error(0)
}

type translateFunc func(ctx context.Context, inPath, outPath string) error

func (f translateFunc) TranslateFile(ctx context.Context, inPath, outPath string) error {
	return f(ctx, inPath, outPath)
}

type fakeCaps struct {
	processors int
	concurrent bool
}

func (f fakeCaps) OS() string              { return "linux" }
func (f fakeCaps) Arch() string            { return "amd64" }
func (f fakeCaps) ProcessorCount() int     { return f.processors }
func (f fakeCaps) ConcurrentWorkers() bool { return f.concurrent }
func (f fakeCaps) DefaultEncoding() string { return "UTF-8" }

func TestSelectRunner(t *testing.T) {
	tests := []struct {
		name string
		caps fakeCaps
		jobs int
		want Runner
	}{
		{"auto uses processors", fakeCaps{processors: 8, concurrent: true}, -1, Pool{Workers: 8}},
		{"explicit jobs", fakeCaps{processors: 8, concurrent: true}, 3, Pool{Workers: 3}},
		{"one job", fakeCaps{processors: 8, concurrent: true}, 1, Sequential{}},
		{"zero jobs", fakeCaps{processors: 8, concurrent: true}, 0, Sequential{}},
		{"single processor", fakeCaps{processors: 1, concurrent: true}, -1, Sequential{}},
		{"no concurrent workers", fakeCaps{processors: 8, concurrent: false}, 4, Sequential{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectRunner(tt.caps, tt.jobs))
		})
	}
}

func TestTranslateBatch_Sequential(t *testing.T) {
	files := &MockFileTranslator{}
	files.On("TranslateFile", mock.Anything, "a.txt", "out/a.txt").Return(nil).Once()
	files.On("TranslateFile", mock.Anything, "b.txt", "out/b.txt").Return(nil).Once()

	b := New(files, Sequential{})
	got, err := b.TranslateBatch(context.Background(), []Pair{
		{Input: "a.txt", Output: "out/a.txt"},
		{Input: "b.txt", Output: "out/b.txt"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"out/a.txt", "out/b.txt"}, got)
	files.AssertExpectations(t)
}

// captureLog routes the global logger to a buffer for the rest of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.GetLogger()
	l := log.NewLogger(log.LevelWarn)
	l.SetOutput(&buf)
	log.SetLogger(l)
	t.Cleanup(func() { log.SetLogger(prev) })
	return &buf
}

func TestTranslateBatch_FailFast(t *testing.T) {
	logs := captureLog(t)

	files := &MockFileTranslator{}
	files.On("TranslateFile", mock.Anything, "a.txt", "a.out").Return(nil)
	files.On("TranslateFile", mock.Anything, "b.txt", "b.out").
		Return(apperr.New(apperr.ErrIO, "failed to open input file"))

	b := New(files, Sequential{})
	got, err := b.TranslateBatch(context.Background(), []Pair{
		{Input: "a.txt", Output: "a.out"},
		{Input: "b.txt", Output: "b.out"},
		{Input: "c.txt", Output: "c.out"},
	})

	require.Error(t, err)
	assert.True(t, apperr.IsErrorType(err, apperr.ErrIO))
	assert.Nil(t, got)
	files.AssertNotCalled(t, "TranslateFile", mock.Anything, "c.txt", "c.out")
	assert.Contains(t, logs.String(), "[ERROR] [batch.go:")
	assert.Contains(t, logs.String(), "Batch aborted: [IO] failed to open input file")
}

func TestTranslateBatch_PoolKeepsOrder(t *testing.T) {
	const n = 12

	var running, peak atomic.Int32
	files := translateFunc(func(ctx context.Context, in, out string) error {
		cur := running.Add(1)
		defer running.Add(-1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}

		var idx int
		if _, err := fmt.Sscanf(in, "in-%d", &idx); err != nil {
			return err
		}
		// Later files finish first.
		time.Sleep(time.Duration(n-idx) * time.Millisecond)
		return nil
	})

	pairs := make([]Pair, n)
	want := make([]string, n)
	for i := range pairs {
		pairs[i] = Pair{Input: fmt.Sprintf("in-%d", i), Output: fmt.Sprintf("out-%d", i)}
		want[i] = pairs[i].Output
	}

	got, err := New(files, Pool{Workers: 4}).TranslateBatch(context.Background(), pairs)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.LessOrEqual(t, peak.Load(), int32(4))
}

func TestTranslateBatch_PoolFailure(t *testing.T) {
	boom := errors.New("disk full")
	files := translateFunc(func(ctx context.Context, in, out string) error {
		if in == "in-3" {
			return boom
		}
		return nil
	})

	pairs := make([]Pair, 10)
	for i := range pairs {
		pairs[i] = Pair{Input: fmt.Sprintf("in-%d", i), Output: fmt.Sprintf("out-%d", i)}
	}

	got, err := New(files, Pool{Workers: 3}).TranslateBatch(context.Background(), pairs)
	require.ErrorIs(t, err, boom)
	assert.Nil(t, got)
}

func TestTranslateBatch_Cancelled(t *testing.T) {
	for _, runner := range []Runner{Sequential{}, Pool{Workers: 4}} {
		t.Run(fmt.Sprintf("%T", runner), func(t *testing.T) {
			logs := captureLog(t)
			files := &MockFileTranslator{}

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			got, err := New(files, runner).TranslateBatch(ctx, []Pair{{Input: "a", Output: "b"}})
			require.ErrorIs(t, err, context.Canceled)
			assert.Nil(t, got)
			assert.NotContains(t, logs.String(), "Batch aborted")
			files.AssertNotCalled(t, "TranslateFile", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTranslateBatch_Progress(t *testing.T) {
	files := &MockFileTranslator{}
	files.On("TranslateFile", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	var progress bytes.Buffer
	b := New(files, Sequential{}, WithProgress(&progress))
	_, err := b.TranslateBatch(context.Background(), []Pair{
		{Input: "a.txt", Output: "a.out"},
		{Input: "b.txt", Output: "/abs/b.out"},
	})
	require.NoError(t, err)

	absA, err := filepath.Abs("a.out")
	require.NoError(t, err)
	assert.Equal(t, absA+"\n/abs/b.out\n", progress.String())
}

func TestNew_DefaultsToSequential(t *testing.T) {
	b := New(&MockFileTranslator{}, nil)
	assert.Equal(t, Sequential{}, b.runner)
}

const sampleTable = `~|三藏| sānzàng| tripiṭaka|~
~|法師| fǎshī| dharma-master|~
~|玄奘| xuánzàng| xuanzang|~
~|奉| fèng| reverently|~
~|唐| táng| tang|~
~|大| dà| great|~
~|詔| zhào| imperial-order|~
~|譯| yì| translate/interpret|~`

// Batch output must equal single-file output for every file, whatever the
// runner.
func TestTranslateToDir_MatchesSingleFile(t *testing.T) {
	tbl, err := table.Parse(sampleTable, textenc.UTF8())
	require.NoError(t, err)
	tr := translator.New(tbl, translator.WithChunkLines(2))

	srcDir := t.TempDir()
	texts := []string{
		"　　　　大唐三藏法師玄奘奉\r\n　詔譯\r\n",
		"大唐\n三藏\n法師\n玄奘\n",
		"no terms at all\n",
		"",
		"詔譯",
	}
	inputs := make([]string, len(texts))
	for i, text := range texts {
		inputs[i] = filepath.Join(srcDir, fmt.Sprintf("text%d.txt", i))
		require.NoError(t, os.WriteFile(inputs[i], []byte(text), 0o644))
	}

	singleDir := t.TempDir()
	for _, in := range inputs {
		require.NoError(t, tr.TranslateFile(context.Background(), in, filepath.Join(singleDir, filepath.Base(in))))
	}

	for _, runner := range []Runner{Sequential{}, Pool{Workers: 3}} {
		t.Run(fmt.Sprintf("%T", runner), func(t *testing.T) {
			outDir := t.TempDir()
			got, err := New(tr, runner).TranslateToDir(context.Background(), inputs, outDir)
			require.NoError(t, err)
			require.Len(t, got, len(inputs))

			for i, out := range got {
				assert.Equal(t, filepath.Join(outDir, filepath.Base(inputs[i])), out)

				want, err := os.ReadFile(filepath.Join(singleDir, filepath.Base(inputs[i])))
				require.NoError(t, err)
				have, err := os.ReadFile(out)
				require.NoError(t, err)
				assert.Equal(t, string(want), string(have), out)
			}
		})
	}
}

func TestTranslateToDir_MissingInputAborts(t *testing.T) {
	tbl, err := table.Parse(sampleTable, textenc.UTF8())
	require.NoError(t, err)

	srcDir := t.TempDir()
	good := filepath.Join(srcDir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("大唐\n"), 0o644))

	_, err = New(translator.New(tbl), Sequential{}).
		TranslateToDir(context.Background(), []string{good, filepath.Join(srcDir, "missing.txt")}, t.TempDir())
	require.Error(t, err)
	assert.True(t, apperr.IsErrorType(err, apperr.ErrIO))
}

func TestTranslateToDir_BadOutputDir(t *testing.T) {
	files := &MockFileTranslator{}

	_, err := New(files, Sequential{}).
		TranslateToDir(context.Background(), []string{"a.txt"}, filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, apperr.IsErrorType(err, apperr.ErrIO))
	assert.True(t, strings.Contains(err.Error(), "nope"))
	files.AssertNotCalled(t, "TranslateFile", mock.Anything, mock.Anything, mock.Anything)
}
