// Package main provides the CLI entry point for scalor, a parallel
// scaling benchmark harness demonstrating Amdahl's Law and shared-resource
// contention limits.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/weiihann/scalor/bench"
	"github.com/weiihann/scalor/report"
	"github.com/weiihann/scalor/workload"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "scalor",
		Short: "Parallel scaling benchmark harness",
		Long: `Scalor runs small fixed-shape parallel experiments that demonstrate the
two fundamental limits on parallel speedup: a strictly serial fraction of
work (Amdahl's Law) and contention for a single-slot shared resource.

The worker count is taken from --threads, then SCALOR_NUM_THREADS or
OMP_NUM_THREADS, then the machine's hardware concurrency.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newProbeCmd(logger))
	root.AddCommand(newAmdahlCmd(logger))
	root.AddCommand(newContentionCmd(logger))
	root.AddCommand(newGranularityCmd(logger))
	root.AddCommand(newSweepCmd(logger))

	return root
}

func newRunner(logger *slog.Logger, requested int) (*bench.Runner, error) {
	threads, err := bench.ResolveThreads(logger, requested)
	if err != nil {
		return nil, err
	}

	return bench.NewRunner(threads, logger)
}

func newProbeCmd(logger *slog.Logger) *cobra.Command {
	var threads int

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Verify the parallel runtime: one hello line per worker",
		RunE: func(_ *cobra.Command, _ []string) error {
			runner, err := newRunner(logger, threads)
			if err != nil {
				return err
			}

			runner.RunProbe(os.Stdout)

			return nil
		},
	}

	cmd.Flags().IntVar(&threads, "threads", 0,
		"Worker count (0 = environment, then hardware concurrency)")

	return cmd
}

func newAmdahlCmd(logger *slog.Logger) *cobra.Command {
	var (
		threads   int
		serialN   int
		parallelN int
	)

	cmd := &cobra.Command{
		Use:   "amdahl",
		Short: "Demonstrate Amdahl's Law: a serial section caps speedup",
		Long: `Runs a strictly serial accumulation followed by a parallel one inside a
single timed span. The serial part never speeds up with more workers, so
it bounds the total wall time from below at any thread count.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			runner, err := newRunner(logger, threads)
			if err != nil {
				return err
			}

			result, err := runner.RunAmdahl(bench.AmdahlConfig{
				SerialN:   serialN,
				ParallelN: parallelN,
			})
			if err != nil {
				return err
			}

			report.PrintAmdahl(os.Stdout, result)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&threads, "threads", 0,
		"Worker count (0 = environment, then hardware concurrency)")
	flags.IntVar(&serialN, "serial-n", 50_000_000,
		"Iterations of the strictly serial accumulator")
	flags.IntVar(&parallelN, "parallel-n", 250_000_000,
		"Iterations of the parallel accumulator")

	return cmd
}

func newContentionCmd(logger *slog.Logger) *cobra.Command {
	var (
		threads  int
		iters    int
		parallel time.Duration
		serial   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "contention",
		Short: "Demonstrate a single-slot shared-resource bottleneck",
		Long: `Each work unit sleeps an uncontended parallel phase, then holds a
single-occupancy slot for a serialized phase. The slot serializes that
phase across all workers, so wall time approaches iters x serial-phase
as the thread count grows.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			runner, err := newRunner(logger, threads)
			if err != nil {
				return err
			}

			result, err := runner.RunContention(workload.ContendConfig{
				Iters:    iters,
				Parallel: parallel,
				Serial:   serial,
			})
			if err != nil {
				return err
			}

			report.PrintContention(os.Stdout, result)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&threads, "threads", 0,
		"Worker count (0 = environment, then hardware concurrency)")
	flags.IntVar(&iters, "iters", 200,
		"Total work units")
	flags.DurationVar(&parallel, "parallel-phase", 2*time.Millisecond,
		"Uncontended phase duration per unit")
	flags.DurationVar(&serial, "serial-phase", 5*time.Millisecond,
		"Serialized (slot-holding) phase duration per unit")

	return cmd
}

func newGranularityCmd(logger *slog.Logger) *cobra.Command {
	var (
		threads int
		tasks   int
		perTask time.Duration
		reps    int
		warmup  int
	)

	cmd := &cobra.Command{
		Use:   "granularity",
		Short: "Show that parallelism only pays for big-enough tasks",
		RunE: func(_ *cobra.Command, _ []string) error {
			runner, err := newRunner(logger, threads)
			if err != nil {
				return err
			}

			result, err := runner.RunGranularity(bench.GranularityConfig{
				Tasks:   tasks,
				PerTask: perTask,
				Reps:    reps,
				Warmup:  warmup,
			})
			if err != nil {
				return err
			}

			report.PrintGranularity(os.Stdout, result)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&threads, "threads", 0,
		"Worker count (0 = environment, then hardware concurrency)")
	flags.IntVar(&tasks, "tasks", 1000,
		"Total number of identical tasks")
	flags.DurationVar(&perTask, "per-task", time.Millisecond,
		"Simulated duration of each task")
	flags.IntVar(&reps, "reps", 5,
		"Timed repetitions (median is reported)")
	flags.IntVar(&warmup, "warmup", 2,
		"Untimed warmup repetitions")

	return cmd
}

func newSweepCmd(logger *slog.Logger) *cobra.Command {
	var (
		experiment string
		counts     []int
		reps       int
		outputJSON bool

		serialN   int
		parallelN int

		iters    int
		parallel time.Duration
		serial   time.Duration

		tasks   int
		perTask time.Duration
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run one experiment across several thread counts",
		Long: `Repeats an experiment at each requested thread count and reports the
median wall time per count, with speedup and efficiency relative to the
first count. This is the empirical demonstration the single-run commands
only hint at.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			run, err := sweepExperiment(experiment, sweepParams{
				serialN:   serialN,
				parallelN: parallelN,
				iters:     iters,
				parallel:  parallel,
				serial:    serial,
				tasks:     tasks,
				perTask:   perTask,
			})
			if err != nil {
				return err
			}

			host := bench.SnapshotHost(logger)

			logger.Info("starting sweep",
				slog.String("experiment", experiment),
				slog.Any("threads", counts),
				slog.Int("reps", reps),
				slog.Int("physical_cpus", host.PhysicalCPUs),
				slog.Int("logical_cpus", host.LogicalCPUs),
			)

			points, err := bench.RunSweep(logger, bench.SweepConfig{
				Threads: counts,
				Reps:    reps,
			}, run)
			if err != nil {
				return err
			}

			if outputJSON {
				return report.GenerateJSON(os.Stdout, points)
			}

			return report.Generate(os.Stdout, experiment, host, points)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&experiment, "experiment", "amdahl",
		"Experiment to sweep: amdahl, contention, granularity")
	flags.IntSliceVar(&counts, "counts", []int{1, 2, 4, 8},
		"Thread counts to measure")
	flags.IntVar(&reps, "reps", 3,
		"Repetitions per thread count (median is kept)")
	flags.BoolVar(&outputJSON, "json", false,
		"Output sweep points as JSON instead of a table")

	flags.IntVar(&serialN, "serial-n", 10_000_000,
		"Amdahl: iterations of the serial accumulator")
	flags.IntVar(&parallelN, "parallel-n", 50_000_000,
		"Amdahl: iterations of the parallel accumulator")

	flags.IntVar(&iters, "iters", 100,
		"Contention: total work units")
	flags.DurationVar(&parallel, "parallel-phase", 2*time.Millisecond,
		"Contention: uncontended phase duration per unit")
	flags.DurationVar(&serial, "serial-phase", 5*time.Millisecond,
		"Contention: serialized phase duration per unit")

	flags.IntVar(&tasks, "tasks", 1000,
		"Granularity: total number of tasks")
	flags.DurationVar(&perTask, "per-task", time.Millisecond,
		"Granularity: simulated duration of each task")

	return cmd
}

type sweepParams struct {
	serialN   int
	parallelN int
	iters     int
	parallel  time.Duration
	serial    time.Duration
	tasks     int
	perTask   time.Duration
}

func sweepExperiment(
	name string,
	p sweepParams,
) (func(r *bench.Runner) (float64, error), error) {
	switch name {
	case "amdahl":
		cfg := bench.AmdahlConfig{SerialN: p.serialN, ParallelN: p.parallelN}

		return func(r *bench.Runner) (float64, error) {
			result, err := r.RunAmdahl(cfg)
			if err != nil {
				return 0, err
			}

			return result.WallSeconds, nil
		}, nil

	case "contention":
		cfg := workload.ContendConfig{
			Iters:    p.iters,
			Parallel: p.parallel,
			Serial:   p.serial,
		}

		return func(r *bench.Runner) (float64, error) {
			result, err := r.RunContention(cfg)
			if err != nil {
				return 0, err
			}

			return result.WallSeconds, nil
		}, nil

	case "granularity":
		cfg := bench.GranularityConfig{
			Tasks:   p.tasks,
			PerTask: p.perTask,
			Reps:    1,
		}

		return func(r *bench.Runner) (float64, error) {
			result, err := r.RunGranularity(cfg)
			if err != nil {
				return 0, err
			}

			return result.WallSeconds, nil
		}, nil

	default:
		return nil, fmt.Errorf(
			"unknown experiment %q (want amdahl, contention, or granularity)",
			name,
		)
	}
}
