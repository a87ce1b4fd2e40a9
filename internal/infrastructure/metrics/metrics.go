// Package metrics expone las métricas Prometheus del servicio en un registro propio.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Nombres de métricas.
const (
	MetricExportsTotal          = "tagihan_exports_total"
	MetricExportDurationSeconds = "tagihan_export_duration_seconds"
	MetricExportPages           = "tagihan_export_pages"
	MetricAssetFetchTotal       = "tagihan_asset_fetch_total"
)

// Resultados usados como etiqueta.
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultCache = "cache"
)

// Metrics agrupa los colectores. Todos los métodos toleran un receptor nil.
type Metrics struct {
	registry *prometheus.Registry

	exportsTotal   *prometheus.CounterVec
	exportDuration *prometheus.HistogramVec
	exportPages    prometheus.Histogram
	assetFetch     *prometheus.CounterVec
}

// New registra los colectores junto a los de proceso y runtime de Go.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		exportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricExportsTotal,
			Help: "Exportaciones de tagihan por motor y resultado.",
		}, []string{"renderer", "result"}),
		exportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricExportDurationSeconds,
			Help:    "Duración de composición + render.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"renderer"}),
		exportPages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricExportPages,
			Help:    "Páginas por documento.",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		assetFetch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricAssetFetchTotal,
			Help: "Cargas de membrete y firma por resultado.",
		}, []string{"asset", "result"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.exportsTotal, m.exportDuration, m.exportPages, m.assetFetch,
	)
	return m
}

// Registry registro subyacente.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler handler HTTP de /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveExport registra una exportación terminada.
func (m *Metrics) ObserveExport(renderer string, pages int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.exportsTotal.WithLabelValues(renderer, result).Inc()
	m.exportDuration.WithLabelValues(renderer).Observe(elapsed.Seconds())
	if err == nil {
		m.exportPages.Observe(float64(pages))
	}
}

// AssetFetched registra el resultado de cargar un asset ("letterhead" o "signature").
func (m *Metrics) AssetFetched(asset, result string) {
	if m == nil {
		return
	}
	m.assetFetch.WithLabelValues(asset, result).Inc()
}
