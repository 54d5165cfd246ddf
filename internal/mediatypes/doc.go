// Package mediatypes maps decoded image formats to MIME types.
package mediatypes
