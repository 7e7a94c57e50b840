package bench

import (
	"runtime"
	"testing"
)

func TestResolveThreadsExplicitWins(t *testing.T) {
	t.Setenv(EnvThreads, "99")

	got, err := ResolveThreads(testLogger(), 3)
	if err != nil {
		t.Fatalf("ResolveThreads failed: %v", err)
	}
	if got != 3 {
		t.Errorf("threads = %d, want 3", got)
	}
}

func TestResolveThreadsFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want int
	}{
		{
			name: "scalor var",
			env:  map[string]string{EnvThreads: "6"},
			want: 6,
		},
		{
			name: "omp fallback",
			env:  map[string]string{EnvThreadsOMP: "2"},
			want: 2,
		},
		{
			name: "scalor var wins over omp",
			env: map[string]string{
				EnvThreads:    "4",
				EnvThreadsOMP: "2",
			},
			want: 4,
		},
		{
			name: "invalid scalor var falls through to omp",
			env: map[string]string{
				EnvThreads:    "banana",
				EnvThreadsOMP: "2",
			},
			want: 2,
		},
		{
			name: "nonpositive env ignored",
			env:  map[string]string{EnvThreads: "0"},
			want: runtime.NumCPU(),
		},
		{
			name: "unset falls back to hardware",
			env:  nil,
			want: runtime.NumCPU(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear both, then apply the case's values.
			t.Setenv(EnvThreads, "")
			t.Setenv(EnvThreadsOMP, "")

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := ResolveThreads(testLogger(), 0)
			if err != nil {
				t.Fatalf("ResolveThreads failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("threads = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveThreadsRejectsNegative(t *testing.T) {
	if _, err := ResolveThreads(testLogger(), -1); err == nil {
		t.Error("expected error for negative request")
	}
}

func TestSnapshotHostHasCores(t *testing.T) {
	h := SnapshotHost(testLogger())

	if h.LogicalCPUs < 1 {
		t.Errorf("logical cpus = %d, want >= 1", h.LogicalCPUs)
	}
	if h.PhysicalCPUs < 1 {
		t.Errorf("physical cpus = %d, want >= 1", h.PhysicalCPUs)
	}
	if h.PhysicalCPUs > h.LogicalCPUs {
		t.Errorf("physical (%d) > logical (%d)", h.PhysicalCPUs, h.LogicalCPUs)
	}
}
