package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gallery-backend/internal/logging"
	"gallery-backend/internal/metrics"
)

// ImageDescriptor is one entry from the remote image catalog. Only the
// download URL is consumed; everything else the catalog returns is ignored.
type ImageDescriptor struct {
	DownloadURL string `json:"download_url"`
}

// Client fetches pages of image descriptors from a Picsum-compatible
// catalog API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a catalog client. The HTTP client is injected so the
// process shares one connection pool across components.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// ListImages fetches one catalog page. A failure here is batch-fatal for
// the caller: without the descriptor list there is nothing to ingest.
func (c *Client) ListImages(ctx context.Context, page, limit int) ([]ImageDescriptor, error) {
	start := time.Now()

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	listURL := c.baseURL + "/v2/list?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		metrics.CatalogFetchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("building catalog request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.CatalogFetchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetching catalog page %d: %w", page, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn("failed to close catalog response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		metrics.CatalogFetchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("catalog returned status %d for page %d", resp.StatusCode, page)
	}

	var descriptors []ImageDescriptor
	if err := json.NewDecoder(resp.Body).Decode(&descriptors); err != nil {
		metrics.CatalogFetchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decoding catalog page %d: %w", page, err)
	}

	metrics.CatalogFetchesTotal.WithLabelValues("success").Inc()
	metrics.CatalogFetchDuration.Observe(time.Since(start).Seconds())
	logging.Debug("Catalog page %d returned %d descriptors", page, len(descriptors))

	return descriptors, nil
}
