package bench

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"slices"
	"time"

	"github.com/cockroachdb/errors"

	"psort/dataset"
	"psort/qsort"
)

// 알고리즘 이름
const (
	Sequential      = "sequential"
	Stdlib          = "stdlib"
	Parallel        = "parallel"
	ParallelReclaim = "parallel_reclaim"
)

// Algorithms 기본 비교 대상
var Algorithms = []string{Sequential, Stdlib, Parallel, ParallelReclaim}

// Result 벤치마크 결과
type Result struct {
	Algorithm    string        `json:"algorithm"`
	DataSize     int           `json:"data_size"`
	Shape        string        `json:"shape"`
	WorkerBudget int           `json:"worker_budget"`
	TestRun      int           `json:"test_run"`
	Duration     time.Duration `json:"duration"`
	MemoryUsage  uint64        `json:"memory_usage_bytes"`
	GoroutineNum int           `json:"goroutine_num"`
	Stats        qsort.Stats   `json:"stats"`
	Sorted       bool          `json:"sorted"`
}

// systemStats 측정 시작 시점 상태
type systemStats struct {
	startTime time.Time
	startMem  runtime.MemStats
}

func startStats() *systemStats {
	runtime.GC()
	s := &systemStats{}
	runtime.ReadMemStats(&s.startMem)
	s.startTime = time.Now()
	return s
}

// endStats 경과 시간과 누적 할당량
func (s *systemStats) endStats() (time.Duration, uint64) {
	duration := time.Since(s.startTime)
	var endMem runtime.MemStats
	runtime.ReadMemStats(&endMem)
	return duration, endMem.TotalAlloc - s.startMem.TotalAlloc
}

// Run data의 복사본을 algorithm으로 정렬하고 측정한다. 원본은 건드리지 않는다.
func Run(algorithm string, data []int32, cfg qsort.Config, metrics *Metrics) (Result, error) {
	result := Result{
		Algorithm:    algorithm,
		DataSize:     len(data),
		WorkerBudget: cfg.WorkerBudget,
	}

	testData := slices.Clone(data)

	var sortFn func([]int32) (qsort.Stats, error)
	switch algorithm {
	case Sequential:
		sortFn = func(arr []int32) (qsort.Stats, error) {
			qsort.SequentialSort(arr)
			return qsort.Stats{}, nil
		}
	case Stdlib:
		sortFn = func(arr []int32) (qsort.Stats, error) {
			slices.Sort(arr)
			return qsort.Stats{}, nil
		}
	case Parallel, ParallelReclaim:
		c := cfg
		c.ReclaimSlots = algorithm == ParallelReclaim
		sorter := qsort.NewSorter(c)
		result.WorkerBudget = sorter.Config().WorkerBudget
		sortFn = sorter.Sort
	default:
		return Result{}, errors.Newf("알 수 없는 알고리즘 %q", algorithm)
	}

	result.GoroutineNum = runtime.NumGoroutine()
	stats := startStats()
	st, err := sortFn(testData)
	result.Duration, result.MemoryUsage = stats.endStats()
	if err != nil {
		return Result{}, errors.Wrapf(err, "%s 정렬 실패", algorithm)
	}

	result.Stats = st
	result.Sorted = dataset.IsSorted(testData) && dataset.SameMultiset(data, testData)
	metrics.observe(result)
	return result, nil
}

// Suite 벤치마크 묶음 설정
type Suite struct {
	Sizes      []int
	Shapes     []dataset.Shape
	Algorithms []string
	Runs       int
	Config     qsort.Config
}

// RunSuite 크기 x 형태 x 알고리즘 x 반복 횟수만큼 실행. 진행 상황은 progress로.
func RunSuite(ctx context.Context, suite Suite, metrics *Metrics, progress io.Writer) ([]Result, error) {
	if suite.Runs < 1 {
		suite.Runs = 1
	}
	if len(suite.Shapes) == 0 {
		suite.Shapes = []dataset.Shape{dataset.Random}
	}
	if len(suite.Algorithms) == 0 {
		suite.Algorithms = Algorithms
	}

	var results []Result
	for _, size := range suite.Sizes {
		for _, shape := range suite.Shapes {
			data, clamped := dataset.GenerateShape(shape, size, suite.Config.MaxElements, suite.Config.Seed)
			if clamped {
				fmt.Fprintf(progress, "크기 %d는 상한 %d로 조정됨\n", size, len(data))
			}
			fmt.Fprintf(progress, "%d개 데이터 (%s) 테스트 중...\n", len(data), shape)

			for _, algo := range suite.Algorithms {
				for run := 1; run <= suite.Runs; run++ {
					if err := ctx.Err(); err != nil {
						return results, err
					}
					fmt.Fprintf(progress, "  %s - 테스트 %d\n", algo, run)
					result, err := Run(algo, data, suite.Config, metrics)
					if err != nil {
						return results, err
					}
					result.Shape = string(shape)
					result.TestRun = run
					results = append(results, result)
				}
			}
		}
	}
	return results, nil
}
