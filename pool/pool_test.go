package pool

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadCounts(t *testing.T) {
	for _, workers := range []int{0, -1, -100} {
		_, err := New(workers)
		require.Error(t, err, "workers=%d", workers)
	}
}

func TestRegionRunsEveryWorkerOnce(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 7, 16} {
		p, err := New(workers)
		require.NoError(t, err)

		var mu sync.Mutex
		seen := make(map[int]int)

		p.Region(func(id int) {
			mu.Lock()
			seen[id]++
			mu.Unlock()
		})

		require.Len(t, seen, workers)
		for id := 0; id < workers; id++ {
			require.Equal(t, 1, seen[id], "worker %d", id)
		}
	}
}

func TestRegionIsABarrier(t *testing.T) {
	p, err := New(8)
	require.NoError(t, err)

	// Writes inside the region must be visible after Region returns
	// without any extra synchronization.
	results := make([]int, p.Workers())

	p.Region(func(id int) {
		results[id] = id + 1
	})

	for id, v := range results {
		require.Equal(t, id+1, v)
	}
}

func TestBoundsCoverRangeExactly(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		n       int
	}{
		{"even split", 4, 100},
		{"uneven split", 3, 10},
		{"more workers than items", 8, 3},
		{"single worker", 1, 17},
		{"empty range", 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.workers)
			require.NoError(t, err)

			covered := 0
			prevHi := 0

			for id := 0; id < tt.workers; id++ {
				lo, hi := p.Bounds(tt.n, id)
				require.LessOrEqual(t, lo, hi)
				require.Equal(t, prevHi, lo, "ranges must be contiguous")

				covered += hi - lo
				prevHi = hi
			}

			require.Equal(t, tt.n, covered)
			require.Equal(t, tt.n, prevHi)
		})
	}
}

func TestForVisitsEachIndexExactlyOnce(t *testing.T) {
	const n = 1000

	for _, workers := range []int{1, 3, 4, 16} {
		p, err := New(workers)
		require.NoError(t, err)

		visits := make([]int32, n)

		p.For(n, func(_, i int) {
			atomic.AddInt32(&visits[i], 1)
		})

		for i, v := range visits {
			require.EqualValues(t, 1, v, "index %d", i)
		}
	}
}

func TestSumMatchesSequential(t *testing.T) {
	const n = 10000

	f := func(i int) float64 { return float64(i) }

	var want float64
	for i := 0; i < n; i++ {
		want += f(i)
	}

	for _, workers := range []int{1, 2, 5, 8} {
		p, err := New(workers)
		require.NoError(t, err)

		got := p.Sum(n, f)
		require.InEpsilon(t, want, got, 1e-12, "workers=%d", workers)
	}
}

func TestSumEmptyRange(t *testing.T) {
	p, err := New(4)
	require.NoError(t, err)

	got := p.Sum(0, func(int) float64 { return 1 })
	require.Zero(t, got)
}
