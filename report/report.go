// Package report formats benchmark results: single-run console lines and
// markdown comparison tables for thread-count sweeps.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/weiihann/scalor/bench"
)

// PrintAmdahl writes the one-line summary of an Amdahl run.
func PrintAmdahl(w io.Writer, r *bench.AmdahlResult) {
	fmt.Fprintf(w, "threads=%d a=%.6g b=%.6g wall=%.6fs\n",
		r.Threads, r.SerialSum, r.ParallelSum, r.WallSeconds)
}

// PrintContention writes the one-line summary of a contention run.
func PrintContention(w io.Writer, r *bench.ContentionResult) {
	fmt.Fprintf(w, "threads=%d iters=%d parallel_ms=%g serial_ms=%g wall=%.6fs\n",
		r.Threads, r.Iters, r.ParallelMs, r.SerialMs, r.WallSeconds)
}

// PrintGranularity writes the one-line summary of a granularity run.
func PrintGranularity(w io.Writer, r *bench.GranularityResult) {
	fmt.Fprintf(w, "threads=%d tasks=%d sleep=%.6fs wall=%.6fs tasks_per_s=%.1f\n",
		r.Threads, r.Tasks, r.PerTaskSecs, r.WallSeconds, r.TasksPerSec)
}

// Generate writes a markdown sweep table. Speedup is relative to the
// first point, which by convention is the lowest thread count; efficiency
// is speedup over threads.
func Generate(w io.Writer, name string, host bench.Host, points []bench.SweepPoint) error {
	if len(points) == 0 {
		return fmt.Errorf("no sweep points to report")
	}

	fmt.Fprintf(w, "## %s sweep\n", name)
	fmt.Fprintln(w)

	if host.CPUModel != "" {
		fmt.Fprintf(w, "CPU: %s (%d physical / %d logical cores)\n",
			host.CPUModel, host.PhysicalCPUs, host.LogicalCPUs)
	} else {
		fmt.Fprintf(w, "CPU: %d physical / %d logical cores\n",
			host.PhysicalCPUs, host.LogicalCPUs)
	}

	fmt.Fprintln(w)

	fmt.Fprintln(w, "| Threads | Wall | Speedup | Efficiency |")
	fmt.Fprintln(w, "|---------|------|---------|------------|")

	baseline := points[0].WallSeconds

	for _, pt := range points {
		speedup := 1.0
		if pt.WallSeconds > 0 {
			speedup = baseline / pt.WallSeconds
		}

		efficiency := speedup / float64(pt.Threads) * 100

		fmt.Fprintf(w, "| %d | %s | %.2fx | %.0f%% |\n",
			pt.Threads,
			formatSeconds(pt.WallSeconds),
			speedup,
			efficiency,
		)
	}

	return nil
}

// GenerateJSON writes v as indented JSON to w.
func GenerateJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func formatSeconds(sec float64) string {
	if sec < 1 {
		return fmt.Sprintf("%.1fms", sec*1000)
	}

	return fmt.Sprintf("%.2fs", sec)
}
