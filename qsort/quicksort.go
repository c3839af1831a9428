package qsort

import "math/bits"

// insertionThreshold 이 크기 이하는 삽입정렬
const insertionThreshold = 16

// SequentialSort 단일 고루틴 정렬 (3-way 퀵소트 + 삽입정렬, 깊이 초과 시 힙정렬)
func SequentialSort(arr []int32) {
	if len(arr) < 2 {
		return
	}
	quickSortHelper(arr, 0, len(arr)-1, 2*bits.Len(uint(len(arr))))
}

func quickSortHelper(arr []int32, low, high, depth int) {
	for low < high {
		size := high - low + 1

		if size <= insertionThreshold {
			insertionSort(arr, low, high)
			return
		}
		// 피벗이 계속 나쁘게 뽑히면 힙정렬로 전환
		if depth == 0 {
			heapSort(arr[low : high+1])
			return
		}
		depth--

		lt, gt := partition3Way(arr, low, high)

		// 작은 쪽만 재귀, 큰 쪽은 루프 (스택 깊이 O(log n))
		if lt-low < high-gt {
			quickSortHelper(arr, low, lt-1, depth)
			low = gt + 1
		} else {
			quickSortHelper(arr, gt+1, high, depth)
			high = lt - 1
		}
	}
}

// partition3Way arr[low..lt-1] < pivot, arr[lt..gt] == pivot, arr[gt+1..high] > pivot
func partition3Way(arr []int32, low, high int) (int, int) {
	medianOfThree(arr, low, low+(high-low)/2, high)
	pivot := arr[low]

	lt := low
	i := low + 1
	gt := high + 1

	for i < gt {
		switch {
		case arr[i] < pivot:
			arr[lt], arr[i] = arr[i], arr[lt]
			lt++
			i++
		case arr[i] > pivot:
			gt--
			arr[i], arr[gt] = arr[gt], arr[i]
		default:
			i++
		}
	}

	return lt, gt - 1
}

// medianOfThree 세 값의 중앙값을 arr[a]로 옮긴다
func medianOfThree(arr []int32, a, b, c int) {
	if arr[a] > arr[b] {
		arr[a], arr[b] = arr[b], arr[a]
	}
	if arr[b] > arr[c] {
		arr[b], arr[c] = arr[c], arr[b]
	}
	if arr[a] > arr[b] {
		arr[a], arr[b] = arr[b], arr[a]
	}
	arr[a], arr[b] = arr[b], arr[a]
}

func insertionSort(arr []int32, low, high int) {
	for i := low + 1; i <= high; i++ {
		key := arr[i]
		j := i - 1
		for j >= low && arr[j] > key {
			arr[j+1] = arr[j]
			j--
		}
		arr[j+1] = key
	}
}

func heapSort(arr []int32) {
	n := len(arr)
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(arr, i, n)
	}
	for end := n - 1; end > 0; end-- {
		arr[0], arr[end] = arr[end], arr[0]
		siftDown(arr, 0, end)
	}
}

func siftDown(arr []int32, root, n int) {
	for {
		child := 2*root + 1
		if child >= n {
			return
		}
		if child+1 < n && arr[child] < arr[child+1] {
			child++
		}
		if arr[root] >= arr[child] {
			return
		}
		arr[root], arr[child] = arr[child], arr[root]
		root = child
	}
}
