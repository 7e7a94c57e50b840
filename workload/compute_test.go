package workload

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weiihann/scalor/pool"
)

func TestSerialSumDeterministic(t *testing.T) {
	const n = 100000

	first := SerialSum(n)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, SerialSum(n))
	}
}

func TestSerialSumKnownValues(t *testing.T) {
	require.Zero(t, SerialSum(0))
	// Single term: sin(0) = 0.
	require.Zero(t, SerialSum(1))
	require.Positive(t, SerialSum(1000))
}

func TestParallelSumAgreesAcrossWorkerCounts(t *testing.T) {
	const n = 500000

	single, err := pool.New(1)
	require.NoError(t, err)

	want := ParallelSum(single, n)

	for _, workers := range []int{2, 3, 4, 8, 16} {
		p, err := pool.New(workers)
		require.NoError(t, err)

		got := ParallelSum(p, n)
		require.InEpsilon(t, want, got, 1e-9, "workers=%d", workers)
	}
}

func TestSerialAndParallelSumsDiffer(t *testing.T) {
	// The two accumulators use different functions so neither run can be
	// folded into the other; with n=1 they already disagree
	// (sin(0)=0, cos(0)=1).
	p, err := pool.New(1)
	require.NoError(t, err)

	require.NotEqual(t, SerialSum(1), ParallelSum(p, 1))
}
