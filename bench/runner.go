package bench

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/weiihann/scalor/pool"
	"github.com/weiihann/scalor/workload"
)

// Runner drives one experiment shape at a fixed worker count. The worker
// count is resolved before construction and never changes; each Run*
// method times exactly one parallel region from start to the barrier at
// its end.
type Runner struct {
	Pool   *pool.Pool
	Logger *slog.Logger
}

// NewRunner creates a Runner with a pool of the given size.
func NewRunner(workers int, logger *slog.Logger) (*Runner, error) {
	p, err := pool.New(workers)
	if err != nil {
		return nil, err
	}

	return &Runner{
		Pool:   p,
		Logger: logger.With(slog.Int("threads", workers)),
	}, nil
}

// RunProbe runs one parallel region in which every worker reports its
// identity. Each line is written to w under a mutex so concurrent
// reports never interleave; the pairs are also returned structurally.
func (r *Runner) RunProbe(w io.Writer) ProbeResult {
	threads := r.Pool.Workers()
	reports := make([]ThreadReport, threads)

	var mu sync.Mutex

	r.Pool.Region(func(id int) {
		reports[id] = ThreadReport{Thread: id, Threads: threads}

		mu.Lock()
		fmt.Fprintf(w, "Hello from thread %d of %d\n", id, threads)
		mu.Unlock()
	})

	return ProbeResult{Threads: threads, Reports: reports}
}

// AmdahlConfig holds the iteration counts for the two accumulators. The
// defaults upstream are tuning constants; anything machine-appropriate
// works as long as the serial section is a visible fraction of the run.
type AmdahlConfig struct {
	SerialN   int
	ParallelN int
}

// RunAmdahl times the serial accumulator followed by the parallel one in
// a single span. The serial part never parallelizes, so wall time can
// never drop below its cost no matter the worker count.
func (r *Runner) RunAmdahl(cfg AmdahlConfig) (*AmdahlResult, error) {
	if cfg.SerialN < 0 || cfg.ParallelN < 0 {
		return nil, fmt.Errorf(
			"iteration counts must be >= 0, got serial=%d parallel=%d",
			cfg.SerialN, cfg.ParallelN,
		)
	}

	r.Logger.Info("starting amdahl run",
		slog.Int("serial_n", cfg.SerialN),
		slog.Int("parallel_n", cfg.ParallelN),
	)

	start := time.Now()

	a := workload.SerialSum(cfg.SerialN)
	b := workload.ParallelSum(r.Pool, cfg.ParallelN)

	elapsed := time.Since(start)

	r.Logger.Info("amdahl run finished", slog.Duration("wall", elapsed))

	return &AmdahlResult{
		Threads:     r.Pool.Workers(),
		SerialN:     cfg.SerialN,
		ParallelN:   cfg.ParallelN,
		SerialSum:   a,
		ParallelSum: b,
		WallSeconds: elapsed.Seconds(),
	}, nil
}

// RunContention times one pass of the single-slot contention simulator.
func (r *Runner) RunContention(cfg workload.ContendConfig) (*ContentionResult, error) {
	if cfg.Iters < 0 {
		return nil, fmt.Errorf("iters must be >= 0, got %d", cfg.Iters)
	}

	if cfg.Parallel < 0 || cfg.Serial < 0 {
		return nil, fmt.Errorf(
			"phase durations must be >= 0, got parallel=%s serial=%s",
			cfg.Parallel, cfg.Serial,
		)
	}

	r.Logger.Info("starting contention run",
		slog.Int("iters", cfg.Iters),
		slog.Duration("parallel_phase", cfg.Parallel),
		slog.Duration("serial_phase", cfg.Serial),
	)

	start := time.Now()
	workload.Contend(r.Pool, cfg)
	elapsed := time.Since(start)

	r.Logger.Info("contention run finished", slog.Duration("wall", elapsed))

	return &ContentionResult{
		Threads:     r.Pool.Workers(),
		Iters:       cfg.Iters,
		ParallelMs:  float64(cfg.Parallel) / float64(time.Millisecond),
		SerialMs:    float64(cfg.Serial) / float64(time.Millisecond),
		WallSeconds: elapsed.Seconds(),
	}, nil
}

// GranularityConfig holds the task farm parameters plus the measurement
// protocol: Warmup untimed passes followed by Reps timed ones.
type GranularityConfig struct {
	Tasks   int
	PerTask time.Duration
	Reps    int
	Warmup  int
}

// RunGranularity runs the task farm Warmup+Reps times and reports the
// median wall time of the timed repetitions. Single runs of sleep-sized
// tasks are noisy; the median is stable where the mean is not.
func (r *Runner) RunGranularity(cfg GranularityConfig) (*GranularityResult, error) {
	if cfg.Tasks < 0 {
		return nil, fmt.Errorf("tasks must be >= 0, got %d", cfg.Tasks)
	}

	if cfg.Reps < 1 {
		return nil, fmt.Errorf("reps must be >= 1, got %d", cfg.Reps)
	}

	farm := workload.FarmConfig{Tasks: cfg.Tasks, PerTask: cfg.PerTask}

	r.Logger.Info("starting granularity run",
		slog.Int("tasks", cfg.Tasks),
		slog.Duration("per_task", cfg.PerTask),
		slog.Int("reps", cfg.Reps),
		slog.Int("warmup", cfg.Warmup),
	)

	for i := 0; i < cfg.Warmup; i++ {
		workload.Farm(r.Pool, farm)
	}

	walls := make([]float64, 0, cfg.Reps)

	for i := 0; i < cfg.Reps; i++ {
		start := time.Now()

		done := workload.Farm(r.Pool, farm)
		if done != cfg.Tasks {
			return nil, fmt.Errorf(
				"task farm ran %d of %d tasks", done, cfg.Tasks,
			)
		}

		walls = append(walls, time.Since(start).Seconds())
	}

	sort.Float64s(walls)
	median := stat.Quantile(0.5, stat.Empirical, walls, nil)

	result := &GranularityResult{
		Threads:     r.Pool.Workers(),
		Tasks:       cfg.Tasks,
		PerTaskSecs: cfg.PerTask.Seconds(),
		Reps:        cfg.Reps,
		WallSeconds: median,
	}

	// Sample standard deviation needs at least two samples.
	if cfg.Reps > 1 {
		result.WallStdDev = stat.StdDev(walls, nil)
	}

	if median > 0 {
		result.TasksPerSec = float64(cfg.Tasks) / median
	}

	r.Logger.Info("granularity run finished",
		slog.Float64("median_wall_seconds", median),
	)

	return result, nil
}

// SweepConfig describes a sweep over thread counts: the experiment is
// re-run Reps times per count and the median wall time kept.
type SweepConfig struct {
	Threads []int
	Reps    int
}

// RunSweep measures one experiment at each requested thread count. The
// experiment callback receives a fresh Runner per count and returns the
// wall seconds of one run.
func RunSweep(
	logger *slog.Logger,
	cfg SweepConfig,
	experiment func(r *Runner) (float64, error),
) ([]SweepPoint, error) {
	if len(cfg.Threads) == 0 {
		return nil, fmt.Errorf("sweep needs at least one thread count")
	}

	reps := cfg.Reps
	if reps < 1 {
		reps = 1
	}

	points := make([]SweepPoint, 0, len(cfg.Threads))

	for _, threads := range cfg.Threads {
		runner, err := NewRunner(threads, logger)
		if err != nil {
			return nil, err
		}

		walls := make([]float64, 0, reps)

		for i := 0; i < reps; i++ {
			sec, expErr := experiment(runner)
			if expErr != nil {
				return nil, fmt.Errorf(
					"run with %d threads: %w", threads, expErr,
				)
			}

			walls = append(walls, sec)
		}

		sort.Float64s(walls)
		median := stat.Quantile(0.5, stat.Empirical, walls, nil)

		logger.Info("sweep point measured",
			slog.Int("threads", threads),
			slog.Float64("median_wall_seconds", median),
		)

		points = append(points, SweepPoint{
			Threads:     threads,
			WallSeconds: median,
		})
	}

	return points, nil
}
