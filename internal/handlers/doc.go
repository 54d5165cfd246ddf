// Package handlers provides HTTP request handlers for the gallery API.
//
// It includes handlers for:
//   - Listing persisted image records with offset/limit pagination
//   - Triggering ingestion of a catalog page
//   - Health checks
package handlers
