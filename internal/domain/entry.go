package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Season is the seasonal association of a gratitude entry. Entries tagged
// "any" are considered weakly relevant year round.
type Season string

// Recognized season values
const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
	SeasonAny    Season = "any"
)

// Common validation errors for GratitudeEntry
var (
	ErrEmptyEntryID        = errors.New("entry ID cannot be empty")
	ErrEmptyEntryUserID    = errors.New("entry user ID cannot be empty")
	ErrEmptyEntryMemoryID  = errors.New("entry memory ID cannot be empty")
	ErrEmptyEntryCode      = errors.New("entry code cannot be empty")
	ErrEmptyEntryTheme     = errors.New("entry core theme cannot be empty")
	ErrEmptyEntryStory     = errors.New("entry summary story cannot be empty")
	ErrEmptyEntryPrompt    = errors.New("entry reflection prompt cannot be empty")
	ErrEmptyEntryTags      = errors.New("entry must have at least one tag")
	ErrTooManyEntryDetails = errors.New("entry may have at most three specific details")
	ErrInvalidEntrySeason  = errors.New("entry season must be spring, summer, fall, winter or any")
)

// GratitudeEntry is one structured unit derived from a Memory by
// extraction: a theme, a short anonymized story, a reflection prompt and
// categorical tags, plus the seasonal and holiday associations inferred
// once at creation. Entries are immutable after creation.
type GratitudeEntry struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	MemoryID         uuid.UUID `json:"memory_id"`
	EntryCode        string    `json:"entry_code"`
	CoreTheme        string    `json:"core_theme"`
	SummaryStory     string    `json:"summary_story"`
	SpecificDetails  []string  `json:"specific_details,omitempty"`
	ReflectionPrompt string    `json:"reflection_prompt"`
	Tags             []string  `json:"tags"`
	Season           Season    `json:"season"`
	Holidays         []string  `json:"holidays,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewGratitudeEntry creates a new GratitudeEntry owned by the given user
// and derived from the given memory. It generates a new UUID and sets the
// creation timestamp. Returns an error if validation fails.
func NewGratitudeEntry(
	userID, memoryID uuid.UUID,
	entryCode, coreTheme, summaryStory, reflectionPrompt string,
	details, tags []string,
	season Season,
	holidays []string,
) (*GratitudeEntry, error) {
	entry := &GratitudeEntry{
		ID:               uuid.New(),
		UserID:           userID,
		MemoryID:         memoryID,
		EntryCode:        entryCode,
		CoreTheme:        coreTheme,
		SummaryStory:     summaryStory,
		SpecificDetails:  details,
		ReflectionPrompt: reflectionPrompt,
		Tags:             tags,
		Season:           season,
		Holidays:         holidays,
		CreatedAt:        time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the GratitudeEntry has valid data.
func (e *GratitudeEntry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyEntryID
	}

	if e.UserID == uuid.Nil {
		return ErrEmptyEntryUserID
	}

	if e.MemoryID == uuid.Nil {
		return ErrEmptyEntryMemoryID
	}

	if e.EntryCode == "" {
		return ErrEmptyEntryCode
	}

	if e.CoreTheme == "" {
		return ErrEmptyEntryTheme
	}

	if e.SummaryStory == "" {
		return ErrEmptyEntryStory
	}

	if e.ReflectionPrompt == "" {
		return ErrEmptyEntryPrompt
	}

	if len(e.Tags) == 0 {
		return ErrEmptyEntryTags
	}

	if len(e.SpecificDetails) > 3 {
		return ErrTooManyEntryDetails
	}

	if !IsValidSeason(e.Season) {
		return ErrInvalidEntrySeason
	}

	return nil
}

// IsValidSeason checks if the given season is a recognized value.
func IsValidSeason(s Season) bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter, SeasonAny:
		return true
	default:
		return false
	}
}
