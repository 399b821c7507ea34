// Package ingest turns uploaded document files (PDF, DOCX, plain text)
// into the raw text that extraction works on. Image uploads go through the
// vision transcriber instead and never reach this package.
package ingest
