// Package pool implements a fixed-size parallel region abstraction with
// static contiguous partitioning. A Pool spawns exactly Workers goroutines
// per region, joins them at an implicit barrier, and combines per-worker
// partial results only after the join.
package pool

import (
	"fmt"
	"sync"
)

// Pool runs parallel regions on a fixed number of workers. The worker
// count is set once at construction and never changes mid-region.
type Pool struct {
	workers int
}

// New creates a Pool with the given worker count. A count below one is a
// configuration error, not a runtime condition, so it fails fast.
func New(workers int) (*Pool, error) {
	if workers < 1 {
		return nil, fmt.Errorf("pool: worker count must be >= 1, got %d", workers)
	}

	return &Pool{workers: workers}, nil
}

// Workers returns the fixed worker count of the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Region runs body once per worker, passing each worker its ordinal
// identity in [0, Workers). It returns only after every worker has
// finished, so the return acts as a barrier: all writes made inside the
// region happen before any read that follows the call.
func (p *Pool) Region(body func(id int)) {
	var wg sync.WaitGroup
	wg.Add(p.workers)

	for id := 0; id < p.workers; id++ {
		go func(id int) {
			defer wg.Done()
			body(id)
		}(id)
	}

	wg.Wait()
}

// Bounds returns the contiguous subrange [lo, hi) of [0, n) assigned to
// worker id. Ranges are as equal as possible and cover [0, n) exactly
// once across all workers; a worker whose range is empty gets lo == hi.
func (p *Pool) Bounds(n, id int) (lo, hi int) {
	lo = n * id / p.workers
	hi = n * (id + 1) / p.workers

	return lo, hi
}

// For runs body(id, i) for every i in [0, n), statically partitioned into
// contiguous subranges, one per worker. Each index is processed exactly
// once by exactly one worker. Indices within a worker's range run in
// ascending order; no ordering holds between workers.
func (p *Pool) For(n int, body func(id, i int)) {
	p.Region(func(id int) {
		lo, hi := p.Bounds(n, id)
		for i := lo; i < hi; i++ {
			body(id, i)
		}
	})
}

// Sum evaluates f over [0, n) in parallel and returns the total. Each
// worker accumulates into a private partial sum; partials are combined in
// worker order after the join, never while workers are still running, so
// no locking is needed on the hot path and the result is reproducible for
// a fixed worker count.
func (p *Pool) Sum(n int, f func(i int) float64) float64 {
	partials := make([]float64, p.workers)

	p.Region(func(id int) {
		lo, hi := p.Bounds(n, id)

		var s float64
		for i := lo; i < hi; i++ {
			s += f(i)
		}

		partials[id] = s
	})

	var total float64
	for _, s := range partials {
		total += s
	}

	return total
}
