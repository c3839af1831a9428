package dataset

import (
	"math/rand/v2"

	"github.com/cockroachdb/errors"
)

// Shape 입력 데이터 형태
type Shape string

const (
	Random     Shape = "random"
	Ascending  Shape = "ascending"
	Descending Shape = "descending"
	Constant   Shape = "constant"
	FewUnique  Shape = "few_unique"
)

// Shapes 지원하는 모든 형태
var Shapes = []Shape{Random, Ascending, Descending, Constant, FewUnique}

// ParseShape 문자열을 Shape로
func ParseShape(s string) (Shape, error) {
	for _, shape := range Shapes {
		if string(shape) == s {
			return shape, nil
		}
	}
	return "", errors.Newf("알 수 없는 데이터 형태 %q", s)
}

// Generate 임의 데이터 생성. size가 maxElements를 넘으면 잘라내고 clamped=true.
// 고정 시드로 재현 가능한 결과를 만든다.
func Generate(size, maxElements int, seed uint64) (data []int32, clamped bool) {
	return GenerateShape(Random, size, maxElements, seed)
}

// GenerateShape 형태를 지정해서 데이터 생성
func GenerateShape(shape Shape, size, maxElements int, seed uint64) (data []int32, clamped bool) {
	if size < 0 {
		size = 0
	}
	if maxElements > 0 && size > maxElements {
		size = maxElements
		clamped = true
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	data = make([]int32, size)
	switch shape {
	case Ascending:
		for i := range data {
			data[i] = int32(i)
		}
	case Descending:
		for i := range data {
			data[i] = int32(size - i)
		}
	case Constant:
		v := rng.Int32()
		for i := range data {
			data[i] = v
		}
	case FewUnique:
		for i := range data {
			data[i] = rng.Int32N(8)
		}
	default:
		for i := range data {
			data[i] = rng.Int32()
		}
	}
	return data, clamped
}
