// Package bench orchestrates the benchmark experiments: it resolves the
// worker count, times whole parallel regions on a monotonic clock, and
// returns structured results for reporting.
package bench

// ThreadReport is one worker's identity report from the probe run.
type ThreadReport struct {
	Thread  int `json:"thread"`
	Threads int `json:"threads"`
}

// ProbeResult holds the outcome of a probe run: one report per worker.
type ProbeResult struct {
	Threads int            `json:"threads"`
	Reports []ThreadReport `json:"reports"`
}

// AmdahlResult holds the outcome of one Amdahl run. SerialSum and
// ParallelSum are the two accumulator values; WallSeconds spans both.
type AmdahlResult struct {
	Threads     int     `json:"threads"`
	SerialN     int     `json:"serial_n"`
	ParallelN   int     `json:"parallel_n"`
	SerialSum   float64 `json:"serial_sum"`
	ParallelSum float64 `json:"parallel_sum"`
	WallSeconds float64 `json:"wall_seconds"`
}

// ContentionResult holds the outcome of one contention run.
type ContentionResult struct {
	Threads     int     `json:"threads"`
	Iters       int     `json:"iters"`
	ParallelMs  float64 `json:"parallel_ms"`
	SerialMs    float64 `json:"serial_ms"`
	WallSeconds float64 `json:"wall_seconds"`
}

// GranularityResult holds the outcome of one granularity run. WallSeconds
// is the median over the measured repetitions.
type GranularityResult struct {
	Threads     int     `json:"threads"`
	Tasks       int     `json:"tasks"`
	PerTaskSecs float64 `json:"per_task_seconds"`
	Reps        int     `json:"reps"`
	WallSeconds float64 `json:"wall_seconds"`
	TasksPerSec float64 `json:"tasks_per_second"`
	WallStdDev  float64 `json:"wall_stddev_seconds"`
}

// SweepPoint is one thread count's measurement within a sweep.
type SweepPoint struct {
	Threads     int     `json:"threads"`
	WallSeconds float64 `json:"wall_seconds"`
}
