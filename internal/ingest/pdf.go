package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxPDFPages limits the number of pages to process.
const MaxPDFPages = 100

// ExtractPDFText extracts the text content of a PDF document. Pages that
// fail individual extraction are skipped rather than failing the whole
// document.
func ExtractPDFText(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to open PDF: %v", ErrUnsupportedFormat, err)
	}

	totalPages := pdfReader.NumPage()
	if totalPages == 0 {
		return "", ErrEmptyDocument
	}
	if totalPages > MaxPDFPages {
		return "", fmt.Errorf("PDF has too many pages (%d), max allowed is %d", totalPages, MaxPDFPages)
	}

	var textBuilder strings.Builder
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		cleaned := cleanText(text)
		if cleaned != "" {
			if textBuilder.Len() > 0 {
				textBuilder.WriteString("\n\n")
			}
			textBuilder.WriteString(cleaned)
		}

		if textBuilder.Len() > MaxTextSize {
			break
		}
	}

	extracted := textBuilder.String()
	if extracted == "" {
		return "", ErrEmptyDocument
	}

	return truncate(extracted), nil
}
