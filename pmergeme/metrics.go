package main

import (
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// sortMetrics 벤치마크 한 번 동안 모은 지표. 끝나면 textfile 로 내보낸다.
type sortMetrics struct {
	registry    *prometheus.Registry
	duration    *prometheus.HistogramVec
	comparisons *prometheus.CounterVec
	elements    *prometheus.CounterVec
	storeBytes  *prometheus.GaugeVec
}

func newSortMetrics() *sortMetrics {
	m := &sortMetrics{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pmergeme_sort_duration_microseconds",
			Help:    "Merge-insert sort latency in microseconds by container",
			Buckets: prometheus.ExponentialBuckets(1, 2.0, 24),
		}, []string{"container", "window"}),
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pmergeme_comparisons_total",
			Help: "Element comparisons performed by container",
		}, []string{"container", "window"}),
		elements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pmergeme_sorted_elements_total",
			Help: "Elements sorted by container",
		}, []string{"container", "window"}),
		storeBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pmergeme_store_size_bytes",
			Help: "Dataset store size in bytes",
		}, []string{"store"}),
	}

	m.registry.MustRegister(m.duration, m.comparisons, m.elements, m.storeBytes)
	return m
}

func (m *sortMetrics) observe(r BenchmarkResult) {
	m.duration.WithLabelValues(r.Container, r.Window).Observe(float64(r.Duration.Nanoseconds()) / 1e3)
	m.comparisons.WithLabelValues(r.Container, r.Window).Add(float64(r.Comparisons))
	m.elements.WithLabelValues(r.Container, r.Window).Add(float64(r.DataSize))
}

func (m *sortMetrics) setStoreSize(store string, bytes int64) {
	m.storeBytes.WithLabelValues(store).Set(float64(bytes))
}

// writeTextfile node_exporter textfile collector 형식
func (m *sortMetrics) writeTextfile(path string) error {
	return errors.Wrapf(prometheus.WriteToTextfile(path, m.registry), "metrics: write %s", path)
}
