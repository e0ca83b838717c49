package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoop_RunsCallsSerially(t *testing.T) {
	loop := NewLoop(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop.Start(ctx)
	defer loop.Stop()

	var (
		running atomic.Int32
		overlap atomic.Bool
		count   int
		wg      sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := loop.Do(ctx, func() {
				if running.Add(1) > 1 {
					overlap.Store(true)
				}
				count++ // only ever touched on the loop
				time.Sleep(time.Millisecond)
				running.Add(-1)
			})
			if err != nil {
				t.Errorf("Do failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if overlap.Load() {
		t.Error("calls overlapped")
	}
	if count != 50 {
		t.Errorf("expected 50 calls, got %d", count)
	}
}

func TestLoop_DoWaitsForCompletion(t *testing.T) {
	loop := NewLoop(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop.Start(ctx)
	defer loop.Stop()

	done := false
	if err := loop.Do(ctx, func() {
		time.Sleep(10 * time.Millisecond)
		done = true
	}); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if !done {
		t.Error("Do returned before fn finished")
	}
}

func TestLoop_DoAfterStop(t *testing.T) {
	loop := NewLoop(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop.Start(ctx)
	loop.Stop()

	err := loop.Do(ctx, func() {})
	if !errors.Is(err, ErrStopped) {
		t.Errorf("expected ErrStopped, got %v", err)
	}
}

func TestLoop_DoAfterCancel(t *testing.T) {
	loop := NewLoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	loop.Start(ctx)
	cancel()
	loop.Stop()

	callCtx, callCancel := context.WithTimeout(context.Background(), time.Second)
	defer callCancel()

	if err := loop.Do(callCtx, func() {}); err == nil {
		t.Error("expected an error once the loop is cancelled")
	}
}
