package qsort

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSequentialSort(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	random := make([]int32, 5000)
	for i := range random {
		random[i] = rng.Int32N(100) - 50
	}
	reversed := make([]int32, 3000)
	for i := range reversed {
		reversed[i] = int32(len(reversed) - i)
	}

	tests := []struct {
		name string
		arr  []int32
	}{
		{"empty", nil},
		{"single", []int32{1}},
		{"small", []int32{3, 1, 2}},
		{"random with duplicates", random},
		{"reversed", reversed},
		{"constant", slices.Repeat([]int32{9}, 500)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arr := slices.Clone(tt.arr)
			want := slices.Clone(tt.arr)
			slices.Sort(want)
			SequentialSort(arr)
			require.Equal(t, want, arr)
		})
	}
}

func TestHeapSort(t *testing.T) {
	arr := []int32{5, -1, 3, 3, 0, 9, -7, 2}
	heapSort(arr)
	require.True(t, slices.IsSorted(arr))
}

// 깊이 0으로 시작하면 곧바로 힙정렬 경로를 탄다
func TestQuickSortDepthExhausted(t *testing.T) {
	arr := make([]int32, 200)
	for i := range arr {
		arr[i] = int32((i * 37) % 101)
	}
	quickSortHelper(arr, 0, len(arr)-1, 0)
	require.True(t, slices.IsSorted(arr))
}
