package extraction

import "context"

// Metadata carries the optional upload context forwarded to the extraction
// service to improve its output.
type Metadata struct {
	SenderName   string
	Occasion     string
	DateReceived string
}

// RawEntry is one candidate gratitude entry as returned by the extraction
// service, before validation and enrichment.
type RawEntry struct {
	EntryID          string   `json:"entry_id"`
	CoreTheme        string   `json:"core_theme"`
	SummaryStory     string   `json:"summary_story"`
	SpecificDetails  []string `json:"specific_details,omitempty"`
	ReflectionPrompt string   `json:"reflection_prompt"`
	Tags             []string `json:"tags"`
}

// Extractor is the boundary between the application core and the external
// language-model service that derives gratitude entries from memory text.
type Extractor interface {
	// ExtractEntries analyzes the given source text and returns candidate
	// gratitude entries. Implementations return errors from this package
	// (ErrExtractionFailed, ErrInvalidResponse, ...) on failure; callers
	// recover through the Normalizer's fallback path rather than surfacing
	// a hard failure.
	ExtractEntries(ctx context.Context, text string, meta Metadata) ([]RawEntry, error)
}
