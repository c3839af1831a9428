package qsort

import "github.com/cockroachdb/errors"

var (
	// ErrWorkerFailed 워커가 정상 종료하지 못함. 오른쪽 구간의 정렬을 보장할 수 없으므로 복구 불가.
	ErrWorkerFailed = errors.New("qsort: worker failed")
	// ErrInvalidConfig 설정 값 오류
	ErrInvalidConfig = errors.New("qsort: invalid config")
)
