package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the viewer.
type Metrics struct {
	ViewerReady    prometheus.Gauge
	LoadDuration   prometheus.Histogram
	LoadFailures   prometheus.Counter
	AssetFeatures  *prometheus.GaugeVec // labels: asset={earthquakes,region,tsunami}
	TableRenders   prometheus.Counter
	RenderedRows   prometheus.Gauge
	TableSorts     prometheus.Counter
	DatasetChanges *prometheus.CounterVec // labels: dataset, outcome={applied,rejected}
}

// NewMetrics creates and registers all viewer metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith registers the viewer metrics with reg. The CLI passes a
// private registry since it exposes no /metrics endpoint.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.ViewerReady,
		m.LoadDuration,
		m.LoadFailures,
		m.AssetFeatures,
		m.TableRenders,
		m.RenderedRows,
		m.TableSorts,
		m.DatasetChanges,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as many
// as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ViewerReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_viewer",
			Name:      "ready",
			Help:      "1 once assets are loaded and the view is interactive.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_viewer",
			Name:      "load_duration_seconds",
			Help:      "Time to fetch all input assets.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		LoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_viewer",
			Name:      "load_failures_total",
			Help:      "Asset loads that aborted initialization.",
		}),
		AssetFeatures: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "quake_viewer",
			Name:      "asset_features",
			Help:      "Features per loaded asset.",
		}, []string{"asset"}),
		TableRenders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_viewer",
			Name:      "table_renders_total",
			Help:      "Full table rebuilds.",
		}),
		RenderedRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_viewer",
			Name:      "rendered_rows",
			Help:      "Rows in the table after the last render.",
		}),
		TableSorts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_viewer",
			Name:      "table_sorts_total",
			Help:      "Sort requests applied to the table.",
		}),
		DatasetChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_viewer",
			Name:      "dataset_changes_total",
			Help:      "Dataset selector changes by requested dataset and outcome.",
		}, []string{"dataset", "outcome"}),
	}
}
