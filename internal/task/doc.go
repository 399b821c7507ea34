// Package task implements durable background task processing: an in-memory
// queue drained by a worker pool, with task state persisted so interrupted
// work is recovered on restart. Its one task type today is memory
// extraction.
package task
