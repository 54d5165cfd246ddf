// Package workers computes worker pool sizes from the available CPU count.
//
// The decode pool uses it to size the set of goroutines dedicated to
// blocking image decodes, keeping CPU work off the download goroutines.
package workers
