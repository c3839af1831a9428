package qsort

import "math/rand/v2"

// partition Lomuto 분할. 피벗의 최종 위치를 돌려준다.
// 반환 후 arr[:p]는 모두 arr[p]보다 작고, arr[p+1:]는 모두 arr[p] 이상이다.
func partition(arr []int32, sampleSize int, rng *rand.Rand) int {
	n := len(arr)
	if n < 2 {
		return 0
	}

	// 피벗을 맨 끝으로
	last := n - 1
	p := selectPivot(arr, sampleSize, rng)
	arr[p], arr[last] = arr[last], arr[p]
	pivot := arr[last]

	store := 0
	for i := 0; i < last; i++ {
		if arr[i] < pivot {
			arr[i], arr[store] = arr[store], arr[i]
			store++
		}
	}
	arr[store], arr[last] = arr[last], arr[store]
	return store
}
