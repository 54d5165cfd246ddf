package handlers

import (
	"encoding/hex"
	"net/http"

	"gallery-backend/internal/database"
	"gallery-backend/internal/logging"
)

const (
	// listDefaultLimit and listMaxLimit bound the listing page size.
	listDefaultLimit = 10
	listMaxLimit     = 100

	// fetchDefaultLimit and fetchMaxLimit bound how many images one
	// ingestion trigger may pull from the catalog.
	fetchDefaultLimit = 10
	fetchMaxLimit     = 50
)

// ImageResponse is the wire shape for one persisted image record. The
// perceptual hash is hex-encoded at the boundary.
type ImageResponse struct {
	ID       int64  `json:"id"`
	Author   string `json:"author"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Hash     string `json:"hash"`
	Path     string `json:"path"`
	MimeType string `json:"mime_type"`
}

func toImageResponse(img *database.Image) ImageResponse {
	return ImageResponse{
		ID:       img.ID,
		Author:   img.Author,
		Width:    img.Width,
		Height:   img.Height,
		Hash:     hex.EncodeToString(img.Hash),
		Path:     img.Path,
		MimeType: img.MimeType,
	}
}

// ListImages returns persisted image records ordered by id, paginated by
// page/limit query parameters.
func (h *Handlers) ListImages(w http.ResponseWriter, r *http.Request) {
	page, limit := paginationParams(r.URL.Query(), listDefaultLimit, listMaxLimit)

	images, err := h.db.ListImages(r.Context(), page, limit)
	if err != nil {
		logging.Error("ListImages query failed: %v", err)
		writeJSONError(w, "failed to list images", http.StatusInternalServerError)
		return
	}

	response := make([]ImageResponse, 0, len(images))
	for i := range images {
		response = append(response, toImageResponse(&images[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, response)
}

// FetchImages pulls one page of descriptors from the external catalog,
// ingests them, and returns the records that were successfully persisted.
// Per-image failures are logged and skipped; only a catalog-level failure
// is fatal to the call.
func (h *Handlers) FetchImages(w http.ResponseWriter, r *http.Request) {
	page, limit := paginationParams(r.URL.Query(), fetchDefaultLimit, fetchMaxLimit)

	if !h.ingest.TryBegin() {
		writeJSONError(w, "ingestion already running", http.StatusConflict)
		return
	}
	defer h.ingest.End()

	descriptors, err := h.catalog.ListImages(r.Context(), page, limit)
	if err != nil {
		logging.Error("catalog fetch failed: %v", err)
		writeJSONError(w, "failed to fetch image catalog", http.StatusBadGateway)
		return
	}

	results := h.ingest.IngestBatch(r.Context(), descriptors)

	response := make([]ImageResponse, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		response = append(response, toImageResponse(res.Record))
	}

	logging.Info("ingestion batch done: %d of %d succeeded", len(response), len(results))

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, response)
}
