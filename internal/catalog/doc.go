// Package catalog lists remote image descriptors from the external
// Picsum-compatible catalog API.
package catalog
