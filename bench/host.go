package bench

import (
	"log/slog"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
)

// Host is a snapshot of the machine a benchmark ran on. Scaling numbers
// are meaningless without it: speedup past the physical core count is
// hyperthreading, not parallelism.
type Host struct {
	LogicalCPUs  int    `json:"logical_cpus"`
	PhysicalCPUs int    `json:"physical_cpus"`
	CPUModel     string `json:"cpu_model,omitempty"`
}

// SnapshotHost collects core counts and the CPU model. Probing failures
// degrade to the runtime's view of the machine rather than aborting a
// benchmark over a reporting detail.
func SnapshotHost(logger *slog.Logger) Host {
	h := Host{LogicalCPUs: runtime.NumCPU()}

	if logical, err := cpu.Counts(true); err == nil && logical > 0 {
		h.LogicalCPUs = logical
	}

	physical, err := cpu.Counts(false)
	if err != nil || physical < 1 {
		logger.Warn("failed to count physical cores, using logical count",
			slog.Any("error", err),
		)

		physical = h.LogicalCPUs
	}

	h.PhysicalCPUs = physical

	info, err := cpu.Info()
	if err != nil || len(info) == 0 {
		logger.Warn("failed to read cpu model", slog.Any("error", err))

		return h
	}

	h.CPUModel = info[0].ModelName

	return h
}
