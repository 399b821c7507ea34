package ingest

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Extraction limits applied to every document type.
const (
	// MaxTextSize limits the extracted text size (1MB).
	MaxTextSize = 1024 * 1024
)

// Common ingest errors
var (
	// ErrUnsupportedFormat indicates the file type cannot be converted to text.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrEmptyDocument indicates the document contained no extractable text.
	ErrEmptyDocument = errors.New("document contains no text")
)

// ExtractText converts an uploaded document to plain text based on its MIME
// type. Returns ErrUnsupportedFormat for types no converter handles.
func ExtractText(data []byte, contentType string) (string, error) {
	switch normalizeContentType(contentType) {
	case "application/pdf":
		return ExtractPDFText(data)
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return ExtractDOCXText(data)
	case "text/plain", "text/markdown":
		return ExtractPlainText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, contentType)
	}
}

// ExtractPlainText validates and cleans a plain text upload.
func ExtractPlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: not valid UTF-8", ErrUnsupportedFormat)
	}

	text := cleanText(string(data))
	if text == "" {
		return "", ErrEmptyDocument
	}

	return truncate(text), nil
}

// normalizeContentType strips parameters like "; charset=utf-8".
func normalizeContentType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// cleanText removes null bytes and collapses runs of spaces while keeping
// line structure, which the extraction prompt relies on.
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")

	var result strings.Builder
	lastWasSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if r == '\n' {
				result.WriteRune('\n')
				lastWasSpace = false
			} else if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return strings.TrimSpace(result.String())
}

// truncate caps text at MaxTextSize.
func truncate(text string) string {
	if len(text) <= MaxTextSize {
		return text
	}
	return text[:MaxTextSize] + "\n... [Content truncated]"
}
