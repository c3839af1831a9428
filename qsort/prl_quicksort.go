package qsort

import (
	"math/rand/v2"
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// Stats 한 번의 정렬 호출에 대한 통계
type Stats struct {
	Spawned             int64 `json:"spawned"`              // 생성된 워커 총수
	PeakRunning         int64 `json:"peak_running"`         // 동시에 돌던 워커 최대치
	SequentialFallbacks int64 `json:"sequential_fallbacks"` // 예산 소진으로 순차 정렬한 구간 수
	BaseCases           int64 `json:"base_cases"`           // cutoff 미만이라 순차 정렬한 구간 수
}

// Sorter 워커 예산을 가진 병렬 퀵소트
type Sorter struct {
	cfg Config

	// 테스트용. 워커 시작 직후 슬롯 번호와 함께 호출된다.
	spawnHook func(slot int)
}

// NewSorter 설정을 정규화해서 Sorter 생성
func NewSorter(cfg Config) *Sorter {
	cfg.Normalize()
	return &Sorter{cfg: cfg}
}

// Config 정규화된 설정
func (s *Sorter) Config() Config {
	return s.cfg
}

// Sort arr를 제자리에서 오름차순 정렬한다. 모든 워커가 join된 뒤에만 반환한다.
// 워커 예산은 호출마다 새로 만들어지므로 연속 호출끼리 카운터를 공유하지 않는다.
func (s *Sorter) Sort(arr []int32) (Stats, error) {
	r := &recursor{
		cfg:       s.cfg,
		pool:      newWorkerPool(s.cfg.WorkerBudget, s.cfg.ReclaimSlots),
		spawnHook: s.spawnHook,
	}
	err := r.sort(arr, rand.New(rand.NewPCG(s.cfg.Seed, 0)))
	return r.stats(), err
}

// ParallelSort 기본 설정에 워커 예산만 지정해서 정렬
func ParallelSort(arr []int32, workerBudget int) error {
	cfg := DefaultConfig()
	cfg.WorkerBudget = workerBudget
	_, err := NewSorter(cfg).Sort(arr)
	return err
}

type recursor struct {
	cfg       Config
	pool      *workerPool
	spawnHook func(slot int)

	spawned   atomic.Int64
	fallbacks atomic.Int64
	baseCases atomic.Int64
}

func (r *recursor) stats() Stats {
	return Stats{
		Spawned:             r.spawned.Load(),
		PeakRunning:         r.pool.peak.Load(),
		SequentialFallbacks: r.fallbacks.Load(),
		BaseCases:           r.baseCases.Load(),
	}
}

// sort 재귀 진입점. 워커도 같은 함수를 자기 구간에 대해 실행한다.
func (r *recursor) sort(arr []int32, rng *rand.Rand) error {
	if len(arr) < r.cfg.SequentialCutoff {
		r.baseCases.Add(1)
		SequentialSort(arr)
		return nil
	}

	slot, ok := r.pool.tryAcquire()
	if !ok {
		// 예산 소진. 분할 없이 구간 전체를 순차 정렬
		r.fallbacks.Add(1)
		SequentialSort(arr)
		return nil
	}

	p := partition(arr, r.cfg.PivotSampleSize, rng)

	//* 두 슬라이스는 겹치지 않는다. left의 cap을 잘라서 append로도 right를 건드리지 못하게 함
	left, right := arr[:p:p], arr[p:]

	seq := r.spawned.Add(1)
	worker := r.spawn(slot, func() error {
		return r.sort(right, rand.New(rand.NewPCG(r.cfg.Seed, uint64(seq))))
	})

	leftErr := r.sort(left, rng)

	// 오른쪽이 끝나야 이 구간 전체가 정렬된 것
	err := worker.join()
	r.pool.release()
	if err != nil {
		return err
	}
	return leftErr
}

// task fork/join 단위. 워커 하나에 대응한다.
type task struct {
	done chan struct{}
	err  error
}

func (r *recursor) spawn(slot int, fn func() error) *task {
	t := &task{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		defer func() {
			if rec := recover(); rec != nil {
				t.err = errors.Wrapf(ErrWorkerFailed, "워커 %d 패닉: %v", slot, rec)
			}
		}()

		r.pool.enter()
		defer r.pool.exit()

		if r.spawnHook != nil {
			r.spawnHook(slot)
		}
		t.err = fn()
	}()
	return t
}

// join 워커 종료까지 대기. done 채널 close가 워커의 쓰기와 이후 읽기 사이의 순서를 보장한다.
func (t *task) join() error {
	<-t.done
	return t.err
}
