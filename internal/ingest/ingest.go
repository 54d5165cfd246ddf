package ingest

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"gallery-backend/internal/catalog"
	"gallery-backend/internal/database"
	"gallery-backend/internal/logging"
	"gallery-backend/internal/metrics"
)

// Author is the attribution recorded for every ingested image.
const Author = "Picsum Photos"

// imagesSubdir is the directory under the data root where image files live.
// Record paths are relative to the data root.
const imagesSubdir = "images"

// Config holds the tunables for the ingestion service.
type Config struct {
	// DataDir is the managed storage root; image files go under its
	// images subdirectory.
	DataDir string
	// Concurrency is the permit pool size: the maximum number of images
	// downloaded at once.
	Concurrency int
	// DecodeWorkers is the size of the blocking decode pool.
	DecodeWorkers int
	// TaskTimeout bounds one image's download and decode; zero disables
	// the limit.
	TaskTimeout time.Duration
}

// Service ingests remote images: it downloads each descriptor's stream to
// disk while decoding it in parallel, then persists a record when both
// sides succeed.
type Service struct {
	db      *database.Database
	client  *http.Client
	dataDir string
	timeout time.Duration
	sem     *semaphore.Weighted
	pool    *decodePool
	running atomic.Bool
}

// Result is the outcome for one input descriptor. Exactly one of Record
// and Err is set.
type Result struct {
	Record *database.Image
	Err    error
}

// New creates an ingestion service. The HTTP client is injected so the
// process shares one connection pool across components.
func New(db *database.Database, client *http.Client, cfg Config) *Service {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.DecodeWorkers < 1 {
		cfg.DecodeWorkers = cfg.Concurrency
	}
	return &Service{
		db:      db,
		client:  client,
		dataDir: cfg.DataDir,
		timeout: cfg.TaskTimeout,
		sem:     semaphore.NewWeighted(int64(cfg.Concurrency)),
		pool:    newDecodePool(cfg.DecodeWorkers),
	}
}

// Close shuts down the decode pool, waiting for in-flight decodes.
func (s *Service) Close() {
	s.pool.Close()
}

// TryBegin attempts to claim the single-flight ingestion slot. It returns
// false if a batch is already running; callers that got true must call End.
func (s *Service) TryBegin() bool {
	return s.running.CompareAndSwap(false, true)
}

// End releases the single-flight ingestion slot.
func (s *Service) End() {
	s.running.Store(false)
}

// IngestBatch ingests every descriptor concurrently, gated by the permit
// pool. The returned slice has one entry per descriptor, in input order,
// regardless of completion order. Per-image failures are contained to
// their slot and logged; they never fail the batch.
func (s *Service) IngestBatch(ctx context.Context, descriptors []catalog.ImageDescriptor) []Result {
	results := make([]Result, len(descriptors))

	var wg sync.WaitGroup
	for i, desc := range descriptors {
		wg.Add(1)
		go func(slot int, desc catalog.ImageDescriptor) {
			defer wg.Done()
			record, err := s.ingestOne(ctx, desc)
			if err != nil {
				logging.Warn("ingestion failed for %s: %v", desc.DownloadURL, err)
				results[slot] = Result{Err: err}
				return
			}
			results[slot] = Result{Record: record}
		}(i, desc)
	}
	wg.Wait()

	return results
}

// ingestOne runs one full ingestion task: acquire a permit, download the
// stream to disk while feeding the decode bridge, join both completions,
// and insert the record. The permit is held for the task's entire lifetime
// and released on every exit path.
func (s *Service) ingestOne(ctx context.Context, desc catalog.ImageDescriptor) (*database.Image, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		metrics.IngestTasksTotal.WithLabelValues("download_error").Inc()
		return nil, fmt.Errorf("acquiring download permit: %w", err)
	}
	defer s.sem.Release(1)

	metrics.IngestPermitsInUse.Inc()
	defer metrics.IngestPermitsInUse.Dec()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// The filename is fixed before the download starts, so the path is
	// stable even if decoding later fails and leaves the file orphaned.
	filename, err := randomFilename()
	if err != nil {
		metrics.IngestTasksTotal.WithLabelValues("write_error").Inc()
		return nil, err
	}
	relPath := path.Join(imagesSubdir, filename)
	filePath := filepath.Join(s.dataDir, imagesSubdir, filename)

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, desc.DownloadURL, nil)
	if err != nil {
		metrics.IngestTasksTotal.WithLabelValues("download_error").Inc()
		return nil, fmt.Errorf("building download request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.IngestTasksTotal.WithLabelValues("download_error").Inc()
		return nil, fmt.Errorf("downloading %s: %w", desc.DownloadURL, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn("failed to close download body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		metrics.IngestTasksTotal.WithLabelValues("download_error").Inc()
		return nil, fmt.Errorf("downloading %s: unexpected status %d", desc.DownloadURL, resp.StatusCode)
	}

	// Hand the decode half of the stream to a pool worker. decodeDone
	// doubles as the splitter's signal that the decode side went away.
	decodeDone := make(chan struct{})
	outcome := make(chan decodeOutcome, 1)
	reader := newInspectReader(resp.Body, decodeDone)
	s.pool.submit(func() {
		defer close(decodeDone)
		meta, err := decodeStream(newStreamReader(reader.ch))
		outcome <- decodeOutcome{meta: meta, err: err}
	})

	written, writeErr := writeStream(filePath, reader)
	if writeErr != nil {
		// Closing without the sentinel tells the decoder the stream died.
		reader.abort()
	} else {
		reader.finish()
	}

	// Join both completions; the record is only durable once the flush
	// finished AND the metadata exists. Never race one against the other.
	decoded := <-outcome

	if writeErr != nil {
		metrics.IngestTasksTotal.WithLabelValues("write_error").Inc()
		return nil, fmt.Errorf("writing %s: %w", relPath, writeErr)
	}
	metrics.IngestBytesWritten.Add(float64(written))
	metrics.IngestDownloadDuration.Observe(time.Since(start).Seconds())

	if decoded.err != nil {
		// The fully written file stays on disk without a record; see the
		// orphan policy note in DESIGN.md.
		metrics.IngestTasksTotal.WithLabelValues("decode_error").Inc()
		return nil, fmt.Errorf("decoding %s: %w", relPath, decoded.err)
	}

	record := &database.Image{
		Author:   Author,
		Width:    decoded.meta.Width,
		Height:   decoded.meta.Height,
		Hash:     decoded.meta.Hash,
		Path:     relPath,
		MimeType: decoded.meta.MimeType,
	}
	id, err := s.db.InsertImage(ctx, record)
	if err != nil {
		metrics.IngestTasksTotal.WithLabelValues("insert_error").Inc()
		return nil, fmt.Errorf("inserting record for %s: %w", relPath, err)
	}
	record.ID = id

	metrics.IngestTasksTotal.WithLabelValues("success").Inc()
	logging.Debug("ingested %s as %s (%dx%d, %s, %d bytes)",
		desc.DownloadURL, relPath, record.Width, record.Height, record.MimeType, written)

	return record, nil
}

type decodeOutcome struct {
	meta *Metadata
	err  error
}

// writeStream copies the stream to a new file, flushing and closing before
// it returns so a nil error means the bytes are durable.
func writeStream(filePath string, r io.Reader) (int64, error) {
	f, err := os.Create(filePath)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(f, r)
	if err != nil {
		if closeErr := f.Close(); closeErr != nil {
			logging.Warn("failed to close %s after write error: %v", filePath, closeErr)
		}
		return n, err
	}

	return n, f.Close()
}

// randomFilename returns 16 random bytes hex-encoded.
func randomFilename() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generating filename: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}
