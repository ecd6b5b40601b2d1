package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	ServiceRunning prometheus.Gauge

	// Catalog fetch metrics.
	CatalogRequests *prometheus.CounterVec // labels: outcome={success,error,empty}
	CatalogDuration prometheus.Histogram
	EventsFetched   prometheus.Histogram
	RecordsRejected prometheus.Counter

	// Map composition metrics.
	MapsComposed    prometheus.Counter
	ComposeDuration prometheus.Histogram
	MapsExported    prometheus.Counter

	// Raster overlay metrics.
	RasterLoads *prometheus.CounterVec // labels: outcome={success,error}
	RasterCache *prometheus.CounterVec // labels: result={hit,miss}

	// Kafka sink metrics.
	EventsPublished  prometheus.Counter
	PublishErrors    prometheus.Counter
	PublisherEnabled prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ServiceRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_map",
			Name:      "service_running",
			Help:      "1 while the HTTP service is accepting requests, 0 during shutdown.",
		}),
		CatalogRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "catalog_requests_total",
			Help:      "USGS catalog queries by outcome.",
		}, []string{"outcome"}),
		CatalogDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_map",
			Name:      "catalog_request_duration_seconds",
			Help:      "USGS catalog request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		EventsFetched: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_map",
			Name:      "events_fetched",
			Help:      "Number of earthquake records returned per catalog query.",
			Buckets:   []float64{1, 10, 50, 100, 250, 500, 1000, 2500, 5000},
		}),
		RecordsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "records_rejected_total",
			Help:      "Total records dropped during normalization.",
		}),
		MapsComposed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "maps_composed_total",
			Help:      "Total maps assembled from fetched records.",
		}),
		ComposeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_map",
			Name:      "map_compose_duration_seconds",
			Help:      "Duration of a complete fetch-normalize-compose cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		MapsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "maps_exported_total",
			Help:      "Total maps written to standalone HTML files.",
		}),
		RasterLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "raster_loads_total",
			Help:      "Raster overlay loads by outcome.",
		}, []string{"outcome"}),
		RasterCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "raster_cache_total",
			Help:      "Raster cache lookups by result.",
		}, []string{"result"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "events_published_total",
			Help:      "Total normalized records written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_map",
			Name:      "publish_errors_total",
			Help:      "Total failed writes to the sink topic.",
		}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_map",
			Name:      "publisher_enabled",
			Help:      "1 when the Kafka sink is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.ServiceRunning,
		m.CatalogRequests,
		m.CatalogDuration,
		m.EventsFetched,
		m.RecordsRejected,
		m.MapsComposed,
		m.ComposeDuration,
		m.MapsExported,
		m.RasterLoads,
		m.RasterCache,
		m.EventsPublished,
		m.PublishErrors,
		m.PublisherEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ServiceRunning:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quake_map", Name: "service_running"}),
		CatalogRequests:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_map", Name: "catalog_requests_total"}, []string{"outcome"}),
		CatalogDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quake_map", Name: "catalog_request_duration_seconds"}),
		EventsFetched:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quake_map", Name: "events_fetched"}),
		RecordsRejected:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_map", Name: "records_rejected_total"}),
		MapsComposed:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_map", Name: "maps_composed_total"}),
		ComposeDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quake_map", Name: "map_compose_duration_seconds"}),
		MapsExported:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_map", Name: "maps_exported_total"}),
		RasterLoads:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_map", Name: "raster_loads_total"}, []string{"outcome"}),
		RasterCache:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_map", Name: "raster_cache_total"}, []string{"result"}),
		EventsPublished:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_map", Name: "events_published_total"}),
		PublishErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_map", Name: "publish_errors_total"}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quake_map", Name: "publisher_enabled"}),
	}
}
