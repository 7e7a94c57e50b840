// Package workload provides the numeric and timing bodies the benchmark
// experiments run: a strictly serial accumulator, a parallel-reducible
// accumulator, a single-slot contention simulator, and a sleep-based task
// farm for granularity experiments.
package workload

import (
	"math"

	"github.com/weiihann/scalor/pool"
)

// argScale spreads integer indices over the trig functions' domain so
// successive terms differ and the loop cannot be folded to a constant.
const argScale = 1e-6

// SerialSum accumulates sin(i*argScale) for i in [0, n) on the calling
// goroutine, in strict ascending index order. It is the irreducibly
// sequential section of the Amdahl experiment and must never be
// partitioned; its value depends only on n.
func SerialSum(n int) float64 {
	var s float64
	for i := 0; i < n; i++ {
		s += math.Sin(float64(i) * argScale)
	}

	return s
}

// ParallelSum accumulates cos(i*argScale) for i in [0, n) across the
// pool's workers. It uses a different function from SerialSum so neither
// sum can be computed from the other. The reduction is commutative and
// associative; results across worker counts agree up to floating-point
// summation order.
func ParallelSum(p *pool.Pool, n int) float64 {
	return p.Sum(n, func(i int) float64 {
		return math.Cos(float64(i) * argScale)
	})
}
