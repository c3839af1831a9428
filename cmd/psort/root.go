package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"psort/qsort"
)

// sortFlags 모든 하위 명령이 공유하는 정렬 설정 플래그
type sortFlags struct {
	configPath  string
	maxElements int
	workers     int
	cutoff      int
	samples     int
	seed        uint64
	reclaim     bool
}

func newRootCmd() *cobra.Command {
	flags := &sortFlags{}
	root := &cobra.Command{
		Use:           "psort",
		Short:         "워커 수 제한 병렬 퀵소트",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "TOML 설정 파일")
	pf.IntVar(&flags.maxElements, "max-elements", qsort.DefaultMaxElements, "배열 크기 상한")
	pf.IntVar(&flags.workers, "workers", qsort.DefaultWorkerBudget, "동시 워커 예산")
	pf.IntVar(&flags.cutoff, "cutoff", qsort.DefaultSequentialCutoff, "이 크기 미만 구간은 순차 정렬")
	pf.IntVar(&flags.samples, "samples", qsort.DefaultPivotSampleSize, "피벗 표본 수")
	pf.Uint64Var(&flags.seed, "seed", qsort.DefaultSeed, "난수 시드")
	pf.BoolVar(&flags.reclaim, "reclaim", false, "join된 워커의 슬롯을 예산에 반환")

	root.AddCommand(
		newRunCmd(flags),
		newBenchCmd(flags),
		newDatasetCmd(flags),
	)
	return root
}

// resolve 설정 파일 -> 명시된 플래그 순으로 적용하고 정규화한다
func (f *sortFlags) resolve(cmd *cobra.Command) (qsort.Config, error) {
	cfg := qsort.DefaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = qsort.LoadConfig(f.configPath); err != nil {
			return qsort.Config{}, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("max-elements") {
		cfg.MaxElements = f.maxElements
	}
	if changed("workers") {
		cfg.WorkerBudget = f.workers
	}
	if changed("cutoff") {
		cfg.SequentialCutoff = f.cutoff
	}
	if changed("samples") {
		cfg.PivotSampleSize = f.samples
	}
	if changed("seed") {
		cfg.Seed = f.seed
	}
	if changed("reclaim") {
		cfg.ReclaimSlots = f.reclaim
	}

	for _, field := range cfg.Normalize() {
		fmt.Fprintf(cmd.ErrOrStderr(), "경고: %s 값이 상한으로 조정됨\n", field)
	}
	return cfg, nil
}

func printConfig(w io.Writer, cfg qsort.Config) {
	fmt.Fprintf(w, "📋 설정:\n")
	fmt.Fprintf(w, "   - 워커 예산: %d\n", cfg.WorkerBudget)
	fmt.Fprintf(w, "   - 순차 정렬 기준: %d\n", cfg.SequentialCutoff)
	fmt.Fprintf(w, "   - 피벗 표본 수: %d\n", cfg.PivotSampleSize)
	fmt.Fprintf(w, "   - 슬롯 반환: %v\n\n", cfg.ReclaimSlots)
}
