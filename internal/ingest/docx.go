package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// docxDocumentPath is the member of the DOCX archive holding the body text.
const docxDocumentPath = "word/document.xml"

// ExtractDOCXText extracts the text content of a DOCX document. A DOCX file
// is a zip archive; the body lives in word/document.xml as WordprocessingML,
// where <w:t> elements carry the text and <w:p> elements delimit paragraphs.
func ExtractDOCXText(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to open DOCX archive: %v", ErrUnsupportedFormat, err)
	}

	var document *zip.File
	for _, f := range reader.File {
		if f.Name == docxDocumentPath {
			document = f
			break
		}
	}
	if document == nil {
		return "", fmt.Errorf("%w: DOCX archive has no %s", ErrUnsupportedFormat, docxDocumentPath)
	}

	rc, err := document.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX document part: %w", err)
	}
	defer func() { _ = rc.Close() }()

	text, err := wordprocessingText(rc)
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse DOCX document: %v", ErrUnsupportedFormat, err)
	}

	cleaned := cleanText(text)
	if cleaned == "" {
		return "", ErrEmptyDocument
	}

	return truncate(cleaned), nil
}

// wordprocessingText streams through WordprocessingML, collecting character
// data inside w:t elements and emitting newlines at paragraph ends and
// explicit breaks.
func wordprocessingText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var b strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "br", "cr":
				b.WriteByte('\n')
			case "tab":
				b.WriteByte(' ')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return b.String(), nil
}
