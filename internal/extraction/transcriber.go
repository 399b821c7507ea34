package extraction

import "context"

// Transcriber is the boundary to the vision-capable model used to read the
// text off an uploaded scan before extraction runs.
type Transcriber interface {
	// TranscribeImage returns the text content of a scanned image. The
	// image data is raw bytes; mediaType is its MIME type (image/jpeg,
	// image/png, image/gif or image/webp).
	TranscribeImage(ctx context.Context, imageData []byte, mediaType string) (string, error)
}
