package simulator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus 指标：按策略维度记录运行次数与虚拟耗时分布
// 注意观测值是模拟出的虚拟秒，不是真实墙钟时间
var (
	simulationRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "faketape",
		Subsystem: "simulator",
		Name:      "runs_total",
		Help:      "Total number of completed simulation runs per strategy.",
	}, []string{"strategy"})

	indexBuildSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "faketape",
		Subsystem: "simulator",
		Name:      "index_build_virtual_seconds",
		Help:      "Virtual time spent building the index per run.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 12),
	}, []string{"strategy"})

	averageAccessSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "faketape",
		Subsystem: "simulator",
		Name:      "average_access_virtual_seconds",
		Help:      "Virtual average access time per query in a run.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 14),
	}, []string{"strategy"})
)

// observeResult 把一次运行的结果计入 Prometheus 指标
func observeResult(res Result) {
	simulationRuns.WithLabelValues(res.StrategyName).Inc()
	indexBuildSeconds.WithLabelValues(res.StrategyName).Observe(res.IndexBuildTime)
	averageAccessSeconds.WithLabelValues(res.StrategyName).Observe(res.AverageAccessTime)
}
