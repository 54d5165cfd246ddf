package ingest

import (
	"sync"

	"gallery-backend/internal/logging"
	"gallery-backend/internal/metrics"
)

// decodePool runs blocking decode jobs on a fixed set of worker goroutines,
// keeping CPU-bound image decoding off the goroutines that drive network
// copies. One worker is borrowed per ingestion task for the task's
// duration.
type decodePool struct {
	jobs chan func()
	wg   sync.WaitGroup
}

func newDecodePool(workers int) *decodePool {
	if workers < 1 {
		workers = 1
	}
	p := &decodePool{jobs: make(chan func())}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	return p
}

func (p *decodePool) worker(id int) {
	defer p.wg.Done()
	logging.Debug("decode worker %d started", id)
	for job := range p.jobs {
		metrics.IngestDecodeWorkersBusy.Inc()
		job()
		metrics.IngestDecodeWorkersBusy.Dec()
	}
	logging.Debug("decode worker %d stopped", id)
}

// submit blocks until a worker picks the job up.
func (p *decodePool) submit(job func()) {
	p.jobs <- job
}

// Close stops accepting jobs and waits for in-flight decodes to finish.
func (p *decodePool) Close() {
	close(p.jobs)
	p.wg.Wait()
}
