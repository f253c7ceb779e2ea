package sitegen

import (
	"context"
	"runtime"
	"sync"
)

// Worker sizing constants.
const (
	// MinWorkers ensures at least one writer is available.
	MinWorkers = 1

	// MaxWorkers caps concurrent page writers; page rendering is
	// cheap, so more mostly contends on the filesystem.
	MaxWorkers = 16
)

// ResolveWorkers maps a requested worker count to the usable range.
// Zero or negative selects a CPU-based default.
func ResolveWorkers(requested int) int {
	if requested > 0 {
		if requested > MaxWorkers {
			return MaxWorkers
		}
		return requested
	}
	n := runtime.NumCPU()
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// runParallel executes tasks on a bounded worker pool. The first
// error wins; remaining tasks are skipped once an error or context
// cancellation is observed.
func runParallel(ctx context.Context, workers int, tasks []func() error) error {
	if workers < 1 {
		workers = 1
	}
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	sem := make(chan struct{}, workers)

	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	for _, task := range tasks {
		if failed() {
			break
		}
		if err := ctx.Err(); err != nil {
			setErr(err)
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(task func() error) {
			defer wg.Done()
			defer func() { <-sem }()
			if failed() {
				return
			}
			if err := task(); err != nil {
				setErr(err)
			}
		}(task)
	}
	wg.Wait()
	return firstErr
}
