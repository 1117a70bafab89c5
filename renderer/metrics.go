package renderer

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects render statistics on a private prometheus registry so
// that multiple renderers can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	rays         *prometheus.CounterVec
	samples      prometheus.Counter
	passes       prometheus.Counter
	blockRows    *prometheus.GaugeVec
	passDuration prometheus.Histogram
	frameTime    prometheus.Histogram
}

// Create a new metrics collection.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		rays: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bvhtrace_rays_total",
			Help: "Number of ray queries issued against the scene",
		}, []string{"tracer"}),
		samples: factory.NewCounter(prometheus.CounterOpts{
			Name: "bvhtrace_samples_total",
			Help: "Number of pixel samples traced",
		}),
		passes: factory.NewCounter(prometheus.CounterOpts{
			Name: "bvhtrace_passes_total",
			Help: "Number of completed render passes",
		}),
		blockRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bvhtrace_tracer_block_rows",
			Help: "Rows assigned to each tracer in the last pass",
		}, []string{"tracer"}),
		passDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bvhtrace_pass_duration_seconds",
			Help:    "Wall time for rendering a single pass",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 16),
		}),
		frameTime: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bvhtrace_frame_duration_seconds",
			Help:    "Wall time for rendering a frame",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 16),
		}),
	}
}

// Get the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Get an http handler exposing the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
