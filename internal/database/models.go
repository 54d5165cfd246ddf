package database

// Image is one persisted image record. Hash holds the raw perceptual hash
// bytes; the HTTP layer hex-encodes it at the boundary.
type Image struct {
	ID       int64
	Author   string
	Width    int
	Height   int
	Hash     []byte
	Path     string
	MimeType string
}
