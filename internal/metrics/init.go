package metrics

// InitializeMetrics pre-populates expected label combinations so that every
// metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, status := range IngestTaskStatuses {
		IngestTasksTotal.WithLabelValues(status)
	}

	for _, status := range []string{"success", "error"} {
		CatalogFetchesTotal.WithLabelValues(status)
	}

	for _, op := range []string{"initialize_schema", "insert_image", "list_images", "count_images"} {
		DBQueryTotal.WithLabelValues(op, "success")
		DBQueryTotal.WithLabelValues(op, "error")
		DBQueryDuration.WithLabelValues(op)
	}
}
