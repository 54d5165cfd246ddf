// Package startup handles application initialization and configuration.
//
// It loads configuration from environment variables, prepares the data
// directory layout, and provides structured startup and shutdown logging.
package startup
