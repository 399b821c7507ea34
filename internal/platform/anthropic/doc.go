// Package anthropic implements the extraction.Extractor and
// extraction.Transcriber interfaces against the Claude Messages API.
package anthropic
