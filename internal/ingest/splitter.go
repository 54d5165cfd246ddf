package ingest

import (
	"io"

	"gallery-backend/internal/logging"
)

// chunkQueueDepth bounds how far the disk writer may run ahead of the
// decoder before chunk forwarding applies backpressure.
const chunkQueueDepth = 64

// inspectReader wraps the network stream and forwards a copy of every chunk
// read through it onto the decode queue. The disk-write loop is the sole
// driver of the underlying reader; the decode side only ever consumes the
// queue.
type inspectReader struct {
	src     io.Reader
	ch      chan []byte
	done    <-chan struct{}
	dropped bool
}

func newInspectReader(src io.Reader, done <-chan struct{}) *inspectReader {
	return &inspectReader{
		src:  src,
		ch:   make(chan []byte, chunkQueueDepth),
		done: done,
	}
}

func (ir *inspectReader) Read(p []byte) (int, error) {
	n, err := ir.src.Read(p)
	if n > 0 {
		chunk := make([]byte, n)
		copy(chunk, p[:n])
		ir.forward(chunk)
	}
	return n, err
}

// forward hands a chunk to the decode side. If the decoder has already
// finished (failed or aborted), the chunk is dropped: the disk write and
// the decode are independent failure domains and a dead decoder must not
// stall or abort the download.
func (ir *inspectReader) forward(chunk []byte) {
	if ir.dropped {
		return
	}
	select {
	case ir.ch <- chunk:
	case <-ir.done:
		ir.dropped = true
		logging.Debug("decode side finished early, dropping remaining stream chunks")
	}
}

// finish delivers the explicit end-of-stream sentinel (an empty chunk) and
// closes the queue. The sentinel must be sent exactly once: closing the
// queue alone reads as truncation on the decode side.
func (ir *inspectReader) finish() {
	ir.forward([]byte{})
	close(ir.ch)
}

// abort closes the queue without the sentinel, signalling to the decoder
// that the stream ended prematurely.
func (ir *inspectReader) abort() {
	close(ir.ch)
}
