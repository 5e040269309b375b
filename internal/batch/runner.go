package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/MimeLyc/sanzang/internal/platform"
	"github.com/MimeLyc/sanzang/pkg/log"
)

// Task processes item i of a batch.
type Task func(ctx context.Context, i int) error

// Runner executes n tasks and returns the first error. Once a task fails
// or ctx is done no further tasks are started.
type Runner interface {
	Run(ctx context.Context, n int, task Task) error
}

// Sequential runs tasks one after another on the calling goroutine.
type Sequential struct{}

func (Sequential) Run(ctx context.Context, n int, task Task) error {
	for i := range n {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := task(ctx, i); err != nil {
			return err
		}
	}
	return nil
}

// Pool runs tasks on up to Workers goroutines.
type Pool struct {
	Workers int
}

func (p Pool) Run(ctx context.Context, n int, task Task) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.Workers, 1))

	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return task(gctx, i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// SelectRunner picks the runner for a batch once, at startup. A negative
// jobs value means one worker per processor. Hosts without concurrent
// workers, and job counts of one or less, get the sequential runner.
func SelectRunner(caps platform.Capabilities, jobs int) Runner {
	if jobs < 0 {
		jobs = caps.ProcessorCount()
	}
	if !caps.ConcurrentWorkers() || jobs <= 1 {
		log.Debug("Batch runner: sequential")
		return Sequential{}
	}
	log.Debug("Batch runner: pool of %d workers", jobs)
	return Pool{Workers: jobs}
}
