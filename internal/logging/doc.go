// Package logging provides leveled logging for the gallery backend.
//
// The level is resolved once from the DEBUG and LOG_LEVEL environment
// variables; everything goes through the standard library logger so output
// stays on a single stream.
package logging
