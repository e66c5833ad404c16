// Package metrics はレイアウト生成の Prometheus メトリクスを提供します。
// グローバルレジストリは使わず、Recorder ごとに専用のレジストリを持ちます。
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "layout"

const (
	ResultSuccess      = "success"
	ResultPrecondition = "precondition"
	ResultInvocation   = "invocation"
	ResultBusy         = "busy"
)

// Recorder は生成試行の結果・所要時間・要素数を記録します。
type Recorder struct {
	registry *prometheus.Registry

	generations *prometheus.CounterVec
	duration    prometheus.Histogram
	elements    prometheus.Histogram
}

// NewRecorder は専用レジストリにメトリクスを登録した Recorder を返します。
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Total number of layout generation attempts",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Layout generation duration in seconds",
				Buckets:   []float64{.5, 1, 2.5, 5, 10, 20, 30, 60},
			},
		),
		elements: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "elements",
				Help:      "Number of elements in generated layouts",
				Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
			},
		),
	}
	r.registry.MustRegister(r.generations, r.duration, r.elements)
	return r
}

// Registry は Recorder 専用のレジストリを返します。
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveSuccess は成功した生成を記録します。
func (r *Recorder) ObserveSuccess(d time.Duration, elements int) {
	r.generations.WithLabelValues(ResultSuccess).Inc()
	r.duration.Observe(d.Seconds())
	r.elements.Observe(float64(elements))
}

// ObserveFailure は失敗した生成を result ラベル付きで記録します。
// モデル呼び出しを伴った失敗のみ所要時間を記録します。
func (r *Recorder) ObserveFailure(result string, d time.Duration) {
	r.generations.WithLabelValues(result).Inc()
	if result == ResultInvocation {
		r.duration.Observe(d.Seconds())
	}
}

// WriteTextfile は node_exporter の textfile collector 形式でメトリクスを書き出します。
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("メトリクスの書き出しに失敗しました: %w", err)
	}
	return nil
}
