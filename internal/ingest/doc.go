// Package ingest downloads remote images and records their metadata.
//
// Each ingestion task is admitted by a counting permit pool and drives a
// single network stream through two consumers at once: a disk writer and a
// blocking image decoder. The disk-write loop paces the network read and
// forwards a copy of every chunk into a queue; a decode worker consumes the
// queue through a synchronous reader, so decoding can never throttle the
// download. Only when both the write and the decode succeed is a record
// inserted into the database.
package ingest
