package qsort

import (
	"cmp"
	"math/rand/v2"
	"slices"
)

// pivotCandidate 피벗 후보 (인덱스, 값)
type pivotCandidate struct {
	index int
	value int32
}

// selectPivot 표본 중앙값으로 피벗 인덱스 선택.
// 최대 sampleSize개(구간이 더 작으면 n개)의 임의 위치를 뽑아 값으로 정렬한 뒤
// 가운데 후보의 인덱스를 돌려준다. 중복 추출은 상관없다.
func selectPivot(arr []int32, sampleSize int, rng *rand.Rand) int {
	n := len(arr)
	if n < 2 {
		return 0
	}
	k := min(sampleSize, n)

	// 기본 표본 크기까지는 스택 배열로 처리
	var buf [DefaultPivotSampleSize]pivotCandidate
	samples := buf[:0]
	if k > len(buf) {
		samples = make([]pivotCandidate, 0, k)
	}

	for range k {
		idx := rng.IntN(n)
		samples = append(samples, pivotCandidate{index: idx, value: arr[idx]})
	}
	slices.SortFunc(samples, func(a, b pivotCandidate) int {
		return cmp.Compare(a.value, b.value)
	})
	return samples[k/2].index
}
