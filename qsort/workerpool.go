package qsort

import (
	"sync"
	"sync/atomic"
)

// workerPool 한 번의 정렬 호출 동안만 사는 워커 예산.
// * 전역 변수 대신 Sorter가 매 호출마다 새로 만들어 넘긴다.
type workerPool struct {
	mu       sync.Mutex
	active   int // 락으로만 읽고 쓴다
	capacity int
	reclaim  bool

	running atomic.Int64
	peak    atomic.Int64
}

func newWorkerPool(capacity int, reclaim bool) *workerPool {
	return &workerPool{capacity: capacity, reclaim: reclaim}
}

// tryAcquire 슬롯 획득 시도. 성공하면 증가 전 값을 슬롯 번호로 돌려준다.
// 락은 비교-증가 동안만 잡는다.
func (p *workerPool) tryAcquire() (slot int, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active < p.capacity {
		slot = p.active
		p.active++
		return slot, true
	}
	return 0, false
}

// release reclaim 모드에서만 슬롯을 돌려준다. 기본 모드는 단조 증가.
func (p *workerPool) release() {
	if !p.reclaim {
		return
	}
	p.mu.Lock()
	p.active--
	p.mu.Unlock()
}

// status 사용 중 슬롯 수와 용량
func (p *workerPool) status() (used int, capacity int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active, p.capacity
}

// enter / exit 실제로 동시에 돌고 있는 워커 수 추적 (예산 불변식 확인용)
func (p *workerPool) enter() {
	n := p.running.Add(1)
	for {
		peak := p.peak.Load()
		if n <= peak || p.peak.CompareAndSwap(peak, n) {
			return
		}
	}
}

func (p *workerPool) exit() {
	p.running.Add(-1)
}
