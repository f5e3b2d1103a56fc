// Package workerpool implements the thread-pool contract spec.md §5
// assumes the CFN optimizers run against: "run this callable in one of
// T parallel workers", with a join point once every submitted callable
// has returned.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Pool runs callables across a bounded number of parallel workers.
type Pool interface {
	// Go schedules fn to run in one of the pool's workers. Go may
	// block if every worker is currently busy.
	Go(fn func() error)

	// Wait blocks until every fn submitted via Go has returned, then
	// returns the first non-nil error any of them returned (if any).
	Wait() error
}

// ErrgroupPool is a Pool backed by golang.org/x/sync/errgroup, with
// concurrency capped by a golang.org/x/sync/semaphore.Weighted.
type ErrgroupPool struct {
	ctx context.Context
	g   *errgroup.Group
	sem *semaphore.Weighted
	n   int64
}

// NewErrgroupPool returns a Pool that runs at most workers callables
// concurrently. workers<=0 means "all available parallelism", mirrored
// from runtime.GOMAXPROCS at construction time.
func NewErrgroupPool(workers int) *ErrgroupPool {
	if workers <= 0 {
		workers = defaultWorkers()
	}
	g, ctx := errgroup.WithContext(context.Background())
	return &ErrgroupPool{
		ctx: ctx,
		g:   g,
		sem: semaphore.NewWeighted(int64(workers)),
		n:   int64(workers),
	}
}

// Go implements Pool.
func (p *ErrgroupPool) Go(fn func() error) {
	// Acquire blocks the caller (not a worker) until a slot is free,
	// bounding in-flight goroutines to the configured worker count
	// regardless of how many Go calls the caller makes up front.
	if err := p.sem.Acquire(p.ctx, 1); err != nil {
		// The shared context was canceled by an earlier failure;
		// errgroup already recorded that failure, so this submission
		// is simply dropped.
		return
	}
	p.g.Go(func() error {
		defer p.sem.Release(1)
		return fn()
	})
}

// Wait implements Pool.
func (p *ErrgroupPool) Wait() error {
	return p.g.Wait()
}
