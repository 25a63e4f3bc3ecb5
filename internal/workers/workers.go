package workers

import (
	"context"
	"sync"
)

// Workers runs a set of background workers concurrently.
type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

// NewWorkers bundles the given workers. None of them is started yet.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker in its own goroutine and returns immediately.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			worker.Run(ctx)
		}()
	}
}

// Wait blocks until every started worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
