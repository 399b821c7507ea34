package extraction

import "errors"

// Common errors returned by Extractor implementations
var (
	// ErrExtractionFailed is returned when extraction fails for any general
	// reason (network failure, vendor outage).
	ErrExtractionFailed = errors.New("failed to extract gratitude entries from text")

	// ErrInvalidResponse is returned when the language model response cannot
	// be parsed or is malformed.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the language model refuses the
	// content due to safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the extractor configuration is invalid.
	ErrInvalidConfig = errors.New("invalid extractor configuration")
)
