// Package extraction defines the boundary to the external language-model
// extraction service and the normalizer that turns its raw output into
// valid, persistable gratitude entries.
//
// The normalizer is the safety net: extraction failures and malformed
// responses never propagate to callers. Instead a single fallback entry is
// built from keyword matching against the source text, so every processed
// memory yields at least one entry.
package extraction
