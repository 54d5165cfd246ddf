package ingest

import (
	"errors"
	"fmt"
	"io"
)

// ErrTruncated is returned when the chunk queue is closed before the
// end-of-stream sentinel arrives, meaning the download died mid-stream.
var ErrTruncated = errors.New("stream truncated")

// streamReader adapts the chunk queue into a synchronous io.ReadSeeker for
// the blocking image decoder. Reads block until the splitter delivers a
// chunk. An empty chunk is the end-of-stream sentinel; a closed queue
// without the sentinel is a truncation.
//
// Consumed bytes are retained so the decoder can rewind to the start after
// format sniffing. Seeking is limited to start/current offsets; seeking
// from the end would require knowing the stream length up front.
type streamReader struct {
	ch  <-chan []byte
	buf []byte
	pos int
	eof bool
}

func newStreamReader(ch <-chan []byte) *streamReader {
	return &streamReader{ch: ch}
}

// fill blocks for the next chunk and appends it to the buffer.
func (r *streamReader) fill() error {
	if r.eof {
		return io.EOF
	}
	chunk, ok := <-r.ch
	if !ok {
		return ErrTruncated
	}
	if len(chunk) == 0 {
		r.eof = true
		return io.EOF
	}
	r.buf = append(r.buf, chunk...)
	return nil
}

func (r *streamReader) Read(p []byte) (int, error) {
	for r.pos >= len(r.buf) {
		if err := r.fill(); err != nil {
			return 0, err
		}
	}
	n := copy(p, r.buf[r.pos:])
	r.pos += n
	return n, nil
}

func (r *streamReader) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = int64(r.pos) + offset
	default:
		return 0, fmt.Errorf("seek from end is not supported")
	}

	if target < 0 {
		return 0, fmt.Errorf("invalid seek to negative offset %d", target)
	}

	// Forward seeks past the buffered region are satisfied lazily: the next
	// Read fills until the position is covered.
	r.pos = int(target)
	return target, nil
}
