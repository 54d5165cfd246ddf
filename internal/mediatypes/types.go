package mediatypes

import "strings"

// mimeByFormat maps the format names reported by image.Decode to canonical
// MIME types for the formats the decoder registers.
var mimeByFormat = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

// MimeForFormat returns the MIME type for a decoded image format name.
// The sniffed content type is used as a fallback for formats the table
// doesn't know about.
func MimeForFormat(format, sniffed string) string {
	if mime, ok := mimeByFormat[format]; ok {
		return mime
	}
	if IsImage(sniffed) {
		return sniffed
	}
	return "application/octet-stream"
}

// IsImage reports whether a sniffed content type describes an image.
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}
