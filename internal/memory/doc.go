// Package memory configures the Go runtime's soft memory limit from
// container limits.
//
// Decoding full-size images allocates large transient buffers, so running
// without GOMEMLIMIT inside a memory-limited container risks OOM kills
// before the garbage collector reacts. ConfigureFromEnv derives GOMEMLIMIT
// from the container limit when the runtime was not already configured.
package memory
