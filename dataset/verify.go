package dataset

import (
	"context"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// ErrNotSorted 오름차순이 아닌 인접 쌍 발견
var ErrNotSorted = errors.New("dataset: not sorted")

// minChunk 병렬 검사 시 조각 최소 크기
const minChunk = 1 << 16

// IsSorted 인접 쌍 순차 검사
func IsSorted(arr []int32) bool {
	for i := 1; i < len(arr); i++ {
		if arr[i-1] > arr[i] {
			return false
		}
	}
	return true
}

// VerifySorted 배열을 parts개 조각으로 나눠 병렬 검사.
// 각 조각은 자기 앞 원소와의 경계 쌍도 확인한다.
func VerifySorted(ctx context.Context, arr []int32, parts int) error {
	n := len(arr)
	if parts < 1 {
		parts = 1
	}
	chunk := max((n+parts-1)/parts, minChunk)

	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			start := max(lo, 1)
			for i := start; i < hi; i++ {
				if arr[i-1] > arr[i] {
					return errors.Wrapf(ErrNotSorted, "인덱스 %d: %d > %d", i, arr[i-1], arr[i])
				}
				if i&0xffff == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// SameMultiset 두 배열의 값별 개수가 같은지 (순서 무관)
func SameMultiset(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[int32]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		c := counts[v]
		if c == 0 {
			return false
		}
		counts[v] = c - 1
	}
	return true
}
