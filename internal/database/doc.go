// Package database manages SQLite persistence for ingested image records.
//
// Records are append-only: the ingestion assembler inserts a row once both
// the disk write and the decode have succeeded, and the listing query reads
// rows back in id order with offset/limit pagination.
package database
