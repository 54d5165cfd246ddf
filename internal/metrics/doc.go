// Package metrics defines the Prometheus metrics exported by the gallery
// backend: HTTP traffic, database queries, catalog fetches, and the
// ingestion pipeline (permits, bytes written, decode timings).
package metrics
