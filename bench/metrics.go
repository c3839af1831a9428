package bench

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics 벤치마크 실행 지표. 전역 레지스트리를 쓰지 않는다.
type Metrics struct {
	Registry *prometheus.Registry

	duration  *prometheus.HistogramVec
	sorts     *prometheus.CounterVec
	spawned   *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
}

// NewMetrics 지표 생성 및 등록
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "psort",
			Name:      "sort_duration_seconds",
			Help:      "Wall-clock time of one sort call.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 12),
		}, []string{"algorithm"}),
		sorts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "psort",
			Name:      "sorts_total",
			Help:      "Sort calls by algorithm and verification result.",
		}, []string{"algorithm", "result"}),
		spawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "psort",
			Name:      "workers_spawned_total",
			Help:      "Workers spawned by the parallel sorter.",
		}, []string{"algorithm"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "psort",
			Name:      "sequential_fallbacks_total",
			Help:      "Ranges sorted sequentially because the worker budget was exhausted.",
		}, []string{"algorithm"}),
	}
	m.Registry.MustRegister(m.duration, m.sorts, m.spawned, m.fallbacks)
	return m
}

func (m *Metrics) observe(r Result) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(r.Algorithm).Observe(r.Duration.Seconds())
	result := "sorted"
	if !r.Sorted {
		result = "unsorted"
	}
	m.sorts.WithLabelValues(r.Algorithm, result).Inc()
	m.spawned.WithLabelValues(r.Algorithm).Add(float64(r.Stats.Spawned))
	m.fallbacks.WithLabelValues(r.Algorithm).Add(float64(r.Stats.SequentialFallbacks))
}

// WriteText 텍스트 노출 형식으로 출력
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.Registry.Gather()
	if err != nil {
		return errors.Wrap(err, "지표 수집 실패")
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return errors.Wrap(err, "지표 출력 실패")
		}
	}
	return nil
}
