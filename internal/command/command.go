// Package command implements the sanzang command line: translate, batch,
// reflow and lookup.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/sanzang/internal/apperr"
	"github.com/MimeLyc/sanzang/internal/config"
	"github.com/MimeLyc/sanzang/internal/platform"
	"github.com/MimeLyc/sanzang/pkg/log"
)

const name = "sanzang"

// Streams are the standard streams of an invocation.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process's standard streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// App carries the state shared by all commands of one invocation.
type App struct {
	streams Streams
	caps    platform.Capabilities
	cfg     *config.Config
	version string

	encoding      string
	listEncodings bool
	verbose       bool

	helpShown bool
}

type Option func(*App)

func WithCapabilities(caps platform.Capabilities) Option {
	return func(a *App) {
		a.caps = caps
	}
}

func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.cfg = cfg
	}
}

func WithVersion(version string) Option {
	return func(a *App) {
		a.version = version
	}
}

func newApp(streams Streams, opts ...Option) *App {
	a := &App{
		streams: streams,
		caps:    platform.Host(),
		version: "dev",
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.cfg == nil {
		a.cfg = config.Default()
	}
	return a
}

// Execute runs the command line args (without the program name) and
// reports the outcome as a Status. Errors are printed to streams.Err.
func Execute(ctx context.Context, args []string, streams Streams, opts ...Option) Status {
	a := newApp(streams, opts...)

	root := a.newRootCmd()
	root.SetArgs(args)

	cmd, err := root.ExecuteContextC(ctx)
	return a.status(cmd, err)
}

func (a *App) status(cmd *cobra.Command, err error) Status {
	switch {
	case err == nil && a.helpShown:
		return StatusHelp
	case err == nil:
		return StatusOK
	case errors.Is(err, context.Canceled):
		log.Info("Interrupted")
		return StatusInterrupted
	case errors.Is(err, syscall.EPIPE):
		return StatusBrokenPipe
	}

	a.report(err)
	if apperr.IsErrorType(err, apperr.ErrUsage) {
		if cmd != nil {
			fmt.Fprint(a.streams.Err, "\n"+cmd.UsageString())
		}
		return StatusUsage
	}
	return StatusFailure
}

// report prints a one-line diagnostic. Verbose mode adds the error chain
// and a hint.
func (a *App) report(err error) {
	fmt.Fprintf(a.streams.Err, "%s: %v\n", name, err)
	if !a.verbose {
		return
	}
	for i, e := range apperr.Chain(err) {
		if i == 0 {
			continue
		}
		fmt.Fprintf(a.streams.Err, "  caused by: %v\n", e)
	}
	fmt.Fprintf(a.streams.Err, "  hint: %s\n", apperr.Advice(err))
}

// usageArgs marks argument count errors as usage errors. Arguments are not
// checked when --list-encodings is given.
func (a *App) usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if a.listEncodings {
			return nil
		}
		if err := check(cmd, args); err != nil {
			return apperr.WrapError(err, apperr.ErrUsage, "invalid arguments")
		}
		return nil
	}
}

// run wraps a command body with the handling of --list-encodings.
func (a *App) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if a.listEncodings {
			return a.printEncodings(cmd.OutOrStdout())
		}
		return fn(cmd, args)
	}
}
