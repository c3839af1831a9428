package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"psort/dataset"
	"psort/qsort"
)

func newRunCmd(flags *sortFlags) *cobra.Command {
	var (
		size             int
		shape            string
		input            string
		output           string
		checkPermutation bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "데이터를 만들거나 읽어서 정렬하고 검증한다",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var data []int32
			if input != "" {
				if data, err = dataset.ReadFile(input); err != nil {
					return err
				}
				if len(data) > cfg.MaxElements {
					fmt.Fprintf(cmd.ErrOrStderr(), "경고: 입력 %d개 중 앞 %d개만 사용\n", len(data), cfg.MaxElements)
					data = data[:cfg.MaxElements]
				}
			} else {
				s, err := dataset.ParseShape(shape)
				if err != nil {
					return err
				}
				var clamped bool
				if data, clamped = dataset.GenerateShape(s, size, cfg.MaxElements, cfg.Seed); clamped {
					fmt.Fprintf(cmd.ErrOrStderr(), "경고: 크기가 상한 %d로 조정됨\n", cfg.MaxElements)
				}
			}

			printConfig(out, cfg)
			return sortAndReport(cmd, out, cfg, data, checkPermutation, output)
		},
	}
	cmd.Flags().IntVar(&size, "size", qsort.DefaultMaxElements, "생성할 원소 수")
	cmd.Flags().StringVar(&shape, "shape", string(dataset.Random), "데이터 형태 (random, ascending, descending, constant, few_unique)")
	cmd.Flags().StringVar(&input, "input", "", "한 줄에 정수 하나인 입력 파일 (지정하면 생성하지 않음)")
	cmd.Flags().StringVar(&output, "output", "", "정렬 결과를 쓸 파일")
	cmd.Flags().BoolVar(&checkPermutation, "check-permutation", false, "정렬 전후 값 개수 비교 (메모리 추가 사용)")
	return cmd
}

func sortAndReport(
	cmd *cobra.Command, out io.Writer, cfg qsort.Config, data []int32, checkPermutation bool, output string,
) error {
	var original []int32
	if checkPermutation {
		original = slices.Clone(data)
	}

	fmt.Fprintf(out, "%s개 데이터 정렬 중...\n", humanize.Comma(int64(len(data))))
	start := time.Now()
	stats, err := qsort.NewSorter(cfg).Sort(data)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	if err := dataset.VerifySorted(cmd.Context(), data, runtime.NumCPU()); err != nil {
		fmt.Fprintln(out, "❌ 배열이 정렬되지 않았습니다")
		return err
	}
	if checkPermutation && !dataset.SameMultiset(original, data) {
		fmt.Fprintln(out, "❌ 정렬 전후 원소가 다릅니다")
		return errors.New("정렬 결과가 입력의 순열이 아님")
	}
	fmt.Fprintln(out, "✅ 배열이 정렬되었습니다")
	fmt.Fprintf(out, "실행 시간: %g초\n", elapsed.Seconds())
	fmt.Fprintf(out, "워커 생성: %d, 최대 동시 워커: %d, 순차 폴백: %d, 기본 구간: %d\n",
		stats.Spawned, stats.PeakRunning, stats.SequentialFallbacks, stats.BaseCases)

	if output != "" {
		if err := dataset.WriteFile(data, output); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s 파일이 생성되었습니다.\n", output)
	}
	return nil
}
