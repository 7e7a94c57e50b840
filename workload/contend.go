package workload

import (
	"sync"
	"time"

	"github.com/weiihann/scalor/pool"
)

// Slot is a single-occupancy shared resource. At most one worker holds it
// at any instant; acquisition blocks until the holder releases.
type Slot struct {
	mu sync.Mutex
}

// Use acquires the slot, runs body, and releases on every exit path
// including panics.
func (s *Slot) Use(body func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	body()
}

// ContendConfig holds the tuning parameters of the contention simulator.
// Parallel and Serial are per-unit phase durations. Sleep defaults to
// time.Sleep and exists so tests can substitute a recording clock.
type ContendConfig struct {
	Iters    int
	Parallel time.Duration
	Serial   time.Duration
	Sleep    func(time.Duration)
}

// Contend runs Iters work units across the pool's workers. Each unit
// sleeps the uncontended Parallel phase with no synchronization, then
// holds the slot for the Serial phase. The slot serializes that phase, so
// total wall time can never drop below Iters*Serial no matter how many
// workers run.
func Contend(p *pool.Pool, cfg ContendConfig) {
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var slot Slot

	p.For(cfg.Iters, func(_, _ int) {
		sleep(cfg.Parallel)

		slot.Use(func() {
			sleep(cfg.Serial)
		})
	})
}

// FarmConfig holds the tuning parameters of the granularity task farm.
type FarmConfig struct {
	Tasks   int
	PerTask time.Duration
	Sleep   func(time.Duration)
}

// Farm runs Tasks identical units, each sleeping PerTask, partitioned
// across the pool's workers with no shared state at all. It exists to
// show that adding workers only pays off once units are big enough to
// cover scheduling overhead. Returns the number of units executed.
func Farm(p *pool.Pool, cfg FarmConfig) int {
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	done := make([]int, p.Workers())

	p.For(cfg.Tasks, func(id, _ int) {
		sleep(cfg.PerTask)
		done[id]++
	})

	total := 0
	for _, n := range done {
		total += n
	}

	return total
}
