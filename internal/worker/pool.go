// internal/worker/pool.go
package worker

import (
	"context"
	"sync"
)

// Job is a unit of CPU-bound work. Execute must be safe to run concurrently
// with other jobs; jobs share no mutable state.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job.
type Result interface {
	Err() error
}

// Pool fans a batch of jobs out across a bounded number of goroutines.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker count. Counts below 1 are
// clamped to 1.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Execute runs all jobs and returns results positionally: results[i] belongs
// to jobs[i], so callers get deterministic ordering regardless of which
// worker finished first. A cancelled context leaves the remaining slots nil.
func (p *Pool) Execute(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	indices := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				results[i] = jobs[i].Execute(ctx)
			}
		}()
	}

	for i := range jobs {
		select {
		case <-ctx.Done():
			close(indices)
			wg.Wait()
			return results
		case indices <- i:
		}
	}
	close(indices)
	wg.Wait()

	return results
}
