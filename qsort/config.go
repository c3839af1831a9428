package qsort

import (
	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// 플랫폼 상한값. 넘는 요청은 에러 대신 상한으로 잘라낸다.
const (
	MaxSize    = 100_000_000
	MaxWorkers = 100
)

// 기본값
const (
	DefaultMaxElements      = 10_000_000
	DefaultWorkerBudget     = 8
	DefaultSequentialCutoff = 100
	DefaultPivotSampleSize  = 20
	DefaultSeed             = 42
)

// Config 병렬 정렬 설정
type Config struct {
	MaxElements      int    `toml:"max_elements"`
	WorkerBudget     int    `toml:"worker_budget"`
	SequentialCutoff int    `toml:"sequential_cutoff"`
	PivotSampleSize  int    `toml:"pivot_sample_size"`
	ReclaimSlots     bool   `toml:"reclaim_slots"`
	Seed             uint64 `toml:"seed"`
}

// DefaultConfig 기본 설정 반환
func DefaultConfig() Config {
	return Config{
		MaxElements:      DefaultMaxElements,
		WorkerBudget:     DefaultWorkerBudget,
		SequentialCutoff: DefaultSequentialCutoff,
		PivotSampleSize:  DefaultPivotSampleSize,
		Seed:             DefaultSeed,
	}
}

// Normalize 0 이하 값은 기본값으로, 상한을 넘는 값은 상한으로 바꾼다.
// 잘려나간 필드 이름들을 돌려준다.
func (c *Config) Normalize() (clamped []string) {
	if c.MaxElements <= 0 {
		c.MaxElements = DefaultMaxElements
	}
	if c.MaxElements > MaxSize {
		c.MaxElements = MaxSize
		clamped = append(clamped, "max_elements")
	}
	if c.WorkerBudget <= 0 {
		c.WorkerBudget = DefaultWorkerBudget
	}
	if c.WorkerBudget > MaxWorkers {
		c.WorkerBudget = MaxWorkers
		clamped = append(clamped, "worker_budget")
	}
	if c.SequentialCutoff <= 0 {
		c.SequentialCutoff = DefaultSequentialCutoff
	}
	if c.PivotSampleSize <= 0 {
		c.PivotSampleSize = DefaultPivotSampleSize
	}
	return clamped
}

// LoadConfig TOML 파일에서 설정을 읽는다. 파일에 없는 값은 기본값 유지.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "설정 파일 %s 읽기 실패", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "알 수 없는 키 %v", undecoded)
	}
	if cfg.SequentialCutoff < 0 || cfg.PivotSampleSize < 0 || cfg.WorkerBudget < 0 {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "음수 값은 허용되지 않음 (%s)", path)
	}
	return cfg, nil
}
