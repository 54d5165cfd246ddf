package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gallery_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gallery_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_db_connections_open",
			Help: "Number of open database connections",
		},
	)
)

// Catalog metrics
var (
	CatalogFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_catalog_fetches_total",
			Help: "Total number of catalog page fetches",
		},
		[]string{"status"},
	)

	CatalogFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gallery_catalog_fetch_duration_seconds",
			Help:    "Catalog page fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Ingestion metrics
var (
	IngestTasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_ingest_tasks_total",
			Help: "Total number of image ingestion tasks by outcome",
		},
		[]string{"status"},
	)

	IngestPermitsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_ingest_permits_in_use",
			Help: "Number of download permits currently held",
		},
	)

	IngestBytesWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_ingest_bytes_written_total",
			Help: "Total bytes written to image files",
		},
	)

	IngestDownloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gallery_ingest_download_duration_seconds",
			Help:    "Time from download start to disk write completion",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	IngestDecodeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gallery_ingest_decode_duration_seconds",
			Help:    "Time spent decoding and hashing one image",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	IngestDecodeWorkersBusy = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_ingest_decode_workers_busy",
			Help: "Number of decode workers currently running a job",
		},
	)
)

// IngestTaskStatuses enumerates the outcome labels recorded for ingestion
// tasks. Shared with InitializeMetrics so every series exists from the
// first scrape.
var IngestTaskStatuses = []string{
	"success",
	"download_error",
	"write_error",
	"decode_error",
	"insert_error",
}
