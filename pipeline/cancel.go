// Package pipeline carries the ambient concurrency and cancellation
// contract shared by medialaxis, perimeter, and infill (spec §5): cooperative
// cancellation polled between layer/region iterations, and a work-stealing
// range-for for per-layer parallelism. None of the pack's example repos pull
// in a goroutine-pool dependency for this (katalvlaran-lvlath's own
// concurrency tests use bare sync/goroutines), so this package follows suit
// rather than introducing an ungrounded dependency.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrCancelled is the CancellationRequested error kind of spec §7: it
// propagates as an early unwind across all components, with no partial
// output committed.
var ErrCancelled = errors.New("pipeline: cancellation requested")

// CheckCancel polls ctx and returns a wrapped ErrCancelled if it has been
// cancelled, nil otherwise. Call this between layer iterations and at the
// start of every region loop (spec §5 "Cancellation").
func CheckCancel(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	return nil
}

// LayerFunc processes one layer index; it must return promptly on
// cancellation and must not partially mutate shared state before returning
// an error.
type LayerFunc func(ctx context.Context, layer int) error

// ForEachLayer runs fn over [0, n) using a fixed worker pool (GOMAXPROCS
// workers by default), each worker claiming layer indices from a shared
// atomic cursor -- the Go rendition of "threads iterate disjoint layer
// ranges in a work-stealing range-for" (spec §5). It returns the first
// error encountered (including ErrCancelled) after all in-flight workers
// have stopped; no partial results are visible across layer boundaries
// because each layer owns its own output slot exclusively.
func ForEachLayer(ctx context.Context, n int, fn LayerFunc) error {
	if n <= 0 {
		return nil
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}

	var cursor int64 = -1
	var firstErr error
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				if err := CheckCancel(ctx); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
				idx := int(atomic.AddInt64(&cursor, 1))
				if idx >= n {
					return
				}
				if err := fn(ctx, idx); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
			}
		}()
	}
	wg.Wait()
	return firstErr
}
