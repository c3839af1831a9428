package qsort

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func randomInts(n int, seed uint64) []int32 {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	arr := make([]int32, n)
	for i := range arr {
		arr[i] = rng.Int32()
	}
	return arr
}

func sortAndCheck(t *testing.T, cfg Config, arr []int32) Stats {
	t.Helper()
	want := slices.Clone(arr)
	slices.Sort(want)

	stats, err := NewSorter(cfg).Sort(arr)
	require.NoError(t, err)
	require.Equal(t, want, arr)
	require.LessOrEqual(t, stats.PeakRunning, int64(cfg.WorkerBudget))
	return stats
}

func TestSortBoundaries(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("empty", func(t *testing.T) {
		stats := sortAndCheck(t, cfg, []int32{})
		require.Zero(t, stats.Spawned)
	})

	t.Run("single", func(t *testing.T) {
		arr := []int32{42}
		stats := sortAndCheck(t, cfg, arr)
		require.Equal(t, []int32{42}, arr)
		require.Zero(t, stats.Spawned)
	})

	t.Run("cutoff minus one", func(t *testing.T) {
		stats := sortAndCheck(t, cfg, randomInts(cfg.SequentialCutoff-1, 1))
		require.Zero(t, stats.Spawned)
		require.Equal(t, int64(1), stats.BaseCases)
	})

	t.Run("budget one spawns exactly one worker", func(t *testing.T) {
		c := cfg
		c.WorkerBudget = 1
		stats := sortAndCheck(t, c, randomInts(200_000, 2))
		require.Equal(t, int64(1), stats.Spawned)
		require.Equal(t, int64(1), stats.PeakRunning)
		require.Positive(t, stats.SequentialFallbacks)
	})

	t.Run("all equal", func(t *testing.T) {
		stats := sortAndCheck(t, cfg, slices.Repeat([]int32{-3}, 50_000))
		require.LessOrEqual(t, stats.Spawned, int64(cfg.WorkerBudget))
	})

	t.Run("reversed with eight workers", func(t *testing.T) {
		arr := make([]int32, 500_000)
		for i := range arr {
			arr[i] = int32(len(arr) - i)
		}
		c := cfg
		c.WorkerBudget = 8
		stats := sortAndCheck(t, c, arr)
		require.LessOrEqual(t, stats.Spawned, int64(8))
	})
}

func TestSortBudgetIsPerCall(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorkerBudget = 1
	s := NewSorter(cfg)
	for i := range 3 {
		arr := randomInts(10_000, uint64(i))
		stats, err := s.Sort(arr)
		require.NoError(t, err)
		require.True(t, slices.IsSorted(arr))
		require.Equal(t, int64(1), stats.Spawned)
	}
}

func TestSortReclaimSlots(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorkerBudget = 3
	cfg.ReclaimSlots = true
	cfg.SequentialCutoff = 16
	for seed := range uint64(5) {
		sortAndCheck(t, cfg, randomInts(100_000, seed))
	}
}

func TestSortSmallCutoffManyWorkers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorkerBudget = MaxWorkers
	cfg.SequentialCutoff = 2
	cfg.PivotSampleSize = 3
	stats := sortAndCheck(t, cfg, randomInts(20_000, 9))
	require.Equal(t, int64(MaxWorkers), stats.Spawned)
}

func TestSortWorkerFailure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorkerBudget = 4
	s := NewSorter(cfg)
	s.spawnHook = func(slot int) {
		if slot == 0 {
			panic("boom")
		}
	}

	_, err := s.Sort(randomInts(50_000, 3))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrWorkerFailed))
	require.Contains(t, err.Error(), "boom")
}

func TestParallelSort(t *testing.T) {
	arr := randomInts(100_000, 11)
	require.NoError(t, ParallelSort(arr, 8))
	require.True(t, slices.IsSorted(arr))

	// 상한을 넘는 예산은 잘라낸다
	arr = randomInts(100_000, 12)
	require.NoError(t, ParallelSort(arr, 10_000))
	require.True(t, slices.IsSorted(arr))
}

func TestSortIdempotent(t *testing.T) {
	arr := randomInts(30_000, 13)
	require.NoError(t, ParallelSort(arr, 4))
	again := slices.Clone(arr)
	require.NoError(t, ParallelSort(again, 4))
	require.Equal(t, arr, again)
}

func BenchmarkSort(b *testing.B) {
	src := randomInts(1_000_000, 99)
	arr := make([]int32, len(src))
	for _, budget := range []int{1, 2, 4, 8} {
		cfg := DefaultConfig()
		cfg.WorkerBudget = budget
		s := NewSorter(cfg)
		b.Run("workers="+strconv.Itoa(budget), func(b *testing.B) {
			for range b.N {
				copy(arr, src)
				if _, err := s.Sort(arr); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
