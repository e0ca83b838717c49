package worker

import (
	"context"
	"fmt"
)

// Loop runs submitted functions one at a time, each to completion, on a
// single worker. It stands in for a UI event loop.
type Loop struct {
	pool *WorkerPool
	ctx  context.Context
}

type call struct {
	fn   func()
	done chan struct{}
}

func NewLoop(bufferSize int) *Loop {
	l := &Loop{ctx: context.Background()}
	l.pool = NewWorkerPool(1, bufferSize, func(ctx context.Context, job Job) error {
		c, ok := job.(*call)
		if !ok {
			return fmt.Errorf("unexpected job type %T", job)
		}
		defer close(c.done)
		c.fn()
		return nil
	})
	return l
}

// Start launches the worker. Do must not be called before Start.
func (l *Loop) Start(ctx context.Context) {
	l.ctx = ctx
	l.pool.Start(ctx)
}

// Do runs fn on the loop and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	c := &call{fn: fn, done: make(chan struct{})}
	if err := l.pool.Submit(ctx, c); err != nil {
		return err
	}

	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.ctx.Done():
		return ErrStopped
	}
}

func (l *Loop) Stop() {
	l.pool.Stop()
}
