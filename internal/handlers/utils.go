package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"gallery-backend/internal/logging"
)

// writeJSON encodes v as JSON and writes it to the response writer.
// Any encoding or write errors are logged since we typically cannot
// recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, map[string]string{"error": message})
}

// paginationParams parses page and limit query parameters, applying the
// defaults and clamping limit to maxLimit. Negative or malformed values
// fall back to the defaults.
func paginationParams(query url.Values, defaultLimit, maxLimit int) (page, limit int) {
	page = 0
	if v, err := strconv.Atoi(query.Get("page")); err == nil && v > 0 {
		page = v
	}

	limit = defaultLimit
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
