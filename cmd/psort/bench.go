package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"psort/bench"
	"psort/dataset"
)

func newBenchCmd(flags *sortFlags) *cobra.Command {
	var (
		sizes       []int
		shapes      []string
		algorithms  []string
		runs        int
		outDir      string
		showMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "정렬 알고리즘 벤치마크",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			suite := bench.Suite{
				Sizes:      sizes,
				Algorithms: algorithms,
				Runs:       runs,
				Config:     cfg,
			}
			for _, name := range shapes {
				shape, err := dataset.ParseShape(name)
				if err != nil {
					return err
				}
				suite.Shapes = append(suite.Shapes, shape)
			}

			fmt.Fprintln(out, "정렬 알고리즘 벤치마크 시작...")
			fmt.Fprintf(out, "CPU 코어 수: %d\n", runtime.NumCPU())
			fmt.Fprintf(out, "GOMAXPROCS: %d\n\n", runtime.GOMAXPROCS(0))
			printConfig(out, cfg)

			metrics := bench.NewMetrics()
			start := time.Now()
			results, err := bench.RunSuite(cmd.Context(), suite, metrics, out)
			if err != nil {
				return errors.Wrap(err, "벤치마크 중단")
			}

			fmt.Fprintln(out, "결과 저장 중...")
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return errors.Wrapf(err, "출력 디렉터리 생성 실패 %s", outDir)
			}
			mdPath := filepath.Join(outDir, "benchmark_results.md")
			if err := bench.SaveMarkdown(results, mdPath); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s 파일이 생성되었습니다.\n", mdPath)
			jsonPath := filepath.Join(outDir, "benchmark_results.json")
			if err := bench.SaveJSON(results, jsonPath); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s 파일이 생성되었습니다.\n", jsonPath)

			if showMetrics {
				fmt.Fprintln(out)
				if err := metrics.WriteText(out); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "벤치마크 완료! (%v)\n", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&sizes, "sizes", []int{1_000, 10_000, 100_000, 1_000_000}, "데이터 크기 목록")
	cmd.Flags().StringSliceVar(&shapes, "shapes", []string{string(dataset.Random)}, "데이터 형태 목록")
	cmd.Flags().StringSliceVar(&algorithms, "algorithms", bench.Algorithms, "비교할 알고리즘")
	cmd.Flags().IntVar(&runs, "runs", 3, "조합별 반복 횟수")
	cmd.Flags().StringVar(&outDir, "out", ".", "보고서 디렉터리")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Prometheus 지표 출력")
	return cmd
}
