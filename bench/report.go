package bench

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
)

var algoNames = map[string]string{
	Sequential:      "순차 퀵소트",
	Stdlib:          "표준 라이브러리",
	Parallel:        "병렬 퀵소트",
	ParallelReclaim: "병렬 퀵소트 (슬롯 반환)",
}

func algoName(algo string) string {
	if name, ok := algoNames[algo]; ok {
		return name
	}
	return algo
}

type group struct {
	size  int
	shape string
}

// groups 결과에 나온 (크기, 형태) 조합을 처음 나온 순서대로
func groups(results []Result) []group {
	seen := map[group]bool{}
	var out []group
	for _, r := range results {
		g := group{size: r.DataSize, shape: r.Shape}
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

func algorithmsOf(results []Result) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range results {
		if !seen[r.Algorithm] {
			seen[r.Algorithm] = true
			out = append(out, r.Algorithm)
		}
	}
	return out
}

// FormatMarkdown 마크다운 보고서 생성
func FormatMarkdown(results []Result, now time.Time) string {
	var builder strings.Builder

	builder.WriteString("# 정렬 알고리즘 벤치마크 결과\n\n")
	builder.WriteString(fmt.Sprintf("실행 시간: %s\n", now.Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("CPU 코어 수: %d\n", runtime.NumCPU()))
	builder.WriteString(fmt.Sprintf("GOMAXPROCS: %d\n\n", runtime.GOMAXPROCS(0)))

	algorithms := algorithmsOf(results)

	for _, g := range groups(results) {
		builder.WriteString(fmt.Sprintf("## %s - %s개 데이터\n\n", g.shape, humanize.Comma(int64(g.size))))
		builder.WriteString("| 알고리즘 | 테스트 | 실행시간 | 메모리사용량 | 워커 | 최대 동시 워커 | 순차 폴백 | 정렬 확인 |\n")
		builder.WriteString("|----------|--------|----------|--------------|------|----------------|-----------|-----------|\n")
		for _, algo := range algorithms {
			for _, r := range results {
				if r.Algorithm != algo || r.DataSize != g.size || r.Shape != g.shape {
					continue
				}
				check := "✅"
				if !r.Sorted {
					check = "❌"
				}
				builder.WriteString(fmt.Sprintf("| %s | %d | %v | %s | %d | %d | %d | %s |\n",
					algoName(algo), r.TestRun, r.Duration, humanize.Bytes(r.MemoryUsage),
					r.Stats.Spawned, r.Stats.PeakRunning, r.Stats.SequentialFallbacks, check))
			}
		}
		builder.WriteString("\n")
	}

	builder.WriteString("## 요약 통계\n\n")
	for _, g := range groups(results) {
		builder.WriteString(fmt.Sprintf("### %s - %s개 데이터 평균\n\n", g.shape, humanize.Comma(int64(g.size))))
		builder.WriteString("| 알고리즘 | 평균 실행시간 | 평균 메모리사용량 |\n")
		builder.WriteString("|----------|---------------|-------------------|\n")
		for _, algo := range algorithms {
			var totalDuration time.Duration
			var totalMemory uint64
			count := 0
			for _, r := range results {
				if r.Algorithm == algo && r.DataSize == g.size && r.Shape == g.shape {
					totalDuration += r.Duration
					totalMemory += r.MemoryUsage
					count++
				}
			}
			if count > 0 {
				builder.WriteString(fmt.Sprintf("| %s | %v | %s |\n",
					algoName(algo), totalDuration/time.Duration(count), humanize.Bytes(totalMemory/uint64(count))))
			}
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

// SaveMarkdown 마크다운 보고서 저장
func SaveMarkdown(results []Result, path string) error {
	return writeFile(path, func(w *bufio.Writer) error {
		_, err := w.WriteString(FormatMarkdown(results, time.Now()))
		return err
	})
}

// SaveJSON JSON 보고서 저장
func SaveJSON(results []Result, path string) error {
	return writeFile(path, func(w *bufio.Writer) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	})
}

func writeFile(path string, fn func(w *bufio.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "보고서 생성 실패 %s", path)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "보고서 닫기 실패 %s", path)
		}
	}()

	writer := bufio.NewWriterSize(file, 32*1024)
	if err := fn(writer); err != nil {
		return errors.Wrapf(err, "보고서 쓰기 실패 %s", path)
	}
	return errors.Wrapf(writer.Flush(), "보고서 쓰기 실패 %s", path)
}
