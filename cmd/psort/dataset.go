package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"psort/dataset"
)

func newDatasetCmd(flags *sortFlags) *cobra.Command {
	var kind, path string
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "저장소에 보관된 데이터셋 관리",
	}
	cmd.PersistentFlags().StringVar(&kind, "store", "pebble", "저장소 종류 (bolt, badger, pebble)")
	cmd.PersistentFlags().StringVar(&path, "path", "psort-data", "저장소 경로")

	withStore := func(fn func(cmd *cobra.Command, s dataset.Store) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) (err error) {
			s, err := dataset.OpenStore(kind, path)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := s.Close(); err == nil {
					err = cerr
				}
			}()
			return fn(cmd, s)
		}
	}

	var (
		name  string
		size  int
		shape string
		to    string
		check bool
	)

	save := &cobra.Command{
		Use:   "save",
		Short: "데이터를 생성해서 저장",
		RunE: withStore(func(cmd *cobra.Command, s dataset.Store) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			sh, err := dataset.ParseShape(shape)
			if err != nil {
				return err
			}
			data, clamped := dataset.GenerateShape(sh, size, cfg.MaxElements, cfg.Seed)
			if clamped {
				fmt.Fprintf(cmd.ErrOrStderr(), "경고: 크기가 상한 %d로 조정됨\n", cfg.MaxElements)
			}
			if err := s.Save(name, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s개 저장 (%s)\n", name, humanize.Comma(int64(len(data))), kind)
			return nil
		}),
	}
	save.Flags().IntVar(&size, "size", 1_000_000, "원소 수")
	save.Flags().StringVar(&shape, "shape", string(dataset.Random), "데이터 형태")

	sortCmd := &cobra.Command{
		Use:   "sort",
		Short: "저장된 데이터셋을 정렬해서 다시 저장",
		RunE: withStore(func(cmd *cobra.Command, s dataset.Store) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			data, err := s.Load(name)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printConfig(out, cfg)
			if err := sortAndReport(cmd, out, cfg, data, check, ""); err != nil {
				return err
			}
			dst := to
			if dst == "" {
				dst = name
			}
			if err := s.Save(dst, data); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s -> %s 저장 완료\n", name, dst)
			return nil
		}),
	}
	sortCmd.Flags().StringVar(&to, "to", "", "결과 데이터셋 이름 (기본: 덮어쓰기)")
	sortCmd.Flags().BoolVar(&check, "check-permutation", false, "정렬 전후 값 개수 비교")

	list := &cobra.Command{
		Use:   "list",
		Short: "데이터셋 목록",
		RunE: withStore(func(cmd *cobra.Command, s dataset.Store) error {
			names, err := s.List()
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		}),
	}

	rm := &cobra.Command{
		Use:   "rm",
		Short: "데이터셋 삭제",
		RunE: withStore(func(cmd *cobra.Command, s dataset.Store) error {
			return s.Delete(name)
		}),
	}

	for _, c := range []*cobra.Command{save, sortCmd, rm} {
		c.Flags().StringVar(&name, "name", "", "데이터셋 이름")
		_ = c.MarkFlagRequired("name")
	}
	cmd.AddCommand(save, sortCmd, list, rm)
	return cmd
}
