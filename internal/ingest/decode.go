package ingest

import (
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"gallery-backend/internal/mediatypes"
	"gallery-backend/internal/metrics"

	// Image format decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/galdor/go-thumbhash"
	_ "golang.org/x/image/webp" // WebP format support
)

// thumbSize is the bounding box for the thumbnail the perceptual hash is
// computed from. Aspect ratio is preserved.
const thumbSize = 100

// sniffLen is how many leading bytes are inspected for format detection,
// matching http.DetectContentType's requirement.
const sniffLen = 512

// Decode error taxonomy. Each is a per-task failure; sibling tasks are
// never affected.
var (
	ErrFormatDetect = errors.New("format detection failed")
	ErrDecode       = errors.New("decode failed")
)

// Metadata is the result of decoding one image stream.
type Metadata struct {
	Width    int
	Height   int
	Hash     []byte
	MimeType string
}

// decodeStream runs the full blocking decode sequence against the
// synchronous stream reader: sniff the container format from the leading
// bytes, decode the raster image, and compute the perceptual hash from a
// downscaled thumbnail. It must only ever run on a decode pool worker.
func decodeStream(r *streamReader) (*Metadata, error) {
	start := time.Now()

	prefix := make([]byte, sniffLen)
	n, err := io.ReadFull(r, prefix)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: empty stream", ErrFormatDetect)
	}

	sniffed := http.DetectContentType(prefix[:n])
	if !mediatypes.IsImage(sniffed) {
		return nil, fmt.Errorf("%w: got %s", ErrFormatDetect, sniffed)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, ErrTruncated) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	thumb := imaging.Fit(img, thumbSize, thumbSize, imaging.Lanczos)
	hash := thumbhash.EncodeImage(thumb)

	metrics.IngestDecodeDuration.Observe(time.Since(start).Seconds())

	return &Metadata{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Hash:     hash,
		MimeType: mediatypes.MimeForFormat(format, sniffed),
	}, nil
}
