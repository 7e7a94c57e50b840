package bench

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
)

// Environment variables consulted when no explicit thread count is given.
// SCALOR_NUM_THREADS wins; OMP_NUM_THREADS is honored so existing lab
// scripts keep working.
const (
	EnvThreads    = "SCALOR_NUM_THREADS"
	EnvThreadsOMP = "OMP_NUM_THREADS"
)

// ResolveThreads determines the worker count for a run, read once before
// the run starts. An explicit requested value > 0 wins. Zero means "not
// requested": the environment is consulted, and an unset or invalid
// variable falls back to hardware concurrency. A negative request is a
// misconfiguration and fails fast.
func ResolveThreads(logger *slog.Logger, requested int) (int, error) {
	if requested < 0 {
		return 0, fmt.Errorf("thread count must be >= 1, got %d", requested)
	}

	if requested > 0 {
		return requested, nil
	}

	for _, env := range []string{EnvThreads, EnvThreadsOMP} {
		raw, ok := os.LookupEnv(env)
		if !ok {
			continue
		}

		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			logger.Warn("ignoring invalid thread count",
				slog.String("env", env),
				slog.String("value", raw),
			)

			continue
		}

		return n, nil
	}

	return runtime.NumCPU(), nil
}
