package extraction

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/seedling-labs/gratitude-api/internal/domain"
)

// maxSpecificDetails caps how many anchoring details an entry keeps.
const maxSpecificDetails = 3

// themeRule maps source-text keywords to a fallback theme and tag.
// Rules are applied in order and later matches override the theme, matching
// the original keyword heuristic.
type themeRule struct {
	keywords []string
	theme    string
	tag      string
}

var fallbackThemeRules = []themeRule{
	{keywords: []string{"thank", "grateful"}, theme: "Gratitude", tag: "Thankfulness"},
	{keywords: []string{"love", "dear"}, theme: "Love & Connection", tag: "Relationships"},
	{keywords: []string{"birthday", "congratulations"}, theme: "Celebration", tag: "Milestones"},
	{keywords: []string{"help", "support"}, theme: "Support & Kindness", tag: "People"},
	{keywords: []string{"family", "mom", "dad"}, theme: "Family Support", tag: "Family"},
}

// associationRule maps keywords in an entry's own text to a season and,
// optionally, a holiday association.
type associationRule struct {
	keywords []string
	season   domain.Season
	holiday  string
}

var associationRules = []associationRule{
	{keywords: []string{"christmas"}, season: domain.SeasonWinter, holiday: "Christmas"},
	{keywords: []string{"thanksgiving"}, season: domain.SeasonFall, holiday: "Thanksgiving"},
	{keywords: []string{"valentine"}, season: domain.SeasonWinter, holiday: "Valentine's Day"},
	{keywords: []string{"easter"}, season: domain.SeasonSpring, holiday: "Easter"},
	{keywords: []string{"halloween"}, season: domain.SeasonFall, holiday: "Halloween"},
	{keywords: []string{"new year"}, season: domain.SeasonWinter, holiday: "New Year"},
	{keywords: []string{"mother's day", "mothers day"}, season: domain.SeasonSpring, holiday: "Mother's Day"},
	{keywords: []string{"father's day", "fathers day"}, season: domain.SeasonSummer, holiday: "Father's Day"},
	{keywords: []string{"independence day", "fourth of july", "4th of july"}, season: domain.SeasonSummer, holiday: "Independence Day"},
	{keywords: []string{"spring", "bloom"}, season: domain.SeasonSpring},
	{keywords: []string{"summer", "beach", "vacation"}, season: domain.SeasonSummer},
	{keywords: []string{"fall", "autumn", "harvest"}, season: domain.SeasonFall},
	{keywords: []string{"winter", "snow"}, season: domain.SeasonWinter},
}

// Normalize validates and repairs the raw extraction output for one memory,
// returning entries ready for persistence. Malformed items are dropped; if
// nothing valid remains (including the empty result of a failed extraction),
// exactly one fallback entry is built from keyword matching against the
// source text. Season and holiday associations are computed here, once, from
// each entry's own theme, story and tags.
func Normalize(
	raw []RawEntry,
	sourceText string,
	meta Metadata,
	userID, memoryID uuid.UUID,
	now time.Time,
) ([]*domain.GratitudeEntry, error) {
	valid := make([]RawEntry, 0, len(raw))
	for _, r := range raw {
		if isComplete(r) {
			valid = append(valid, r)
		}
	}

	if len(valid) == 0 {
		valid = []RawEntry{fallbackEntry(sourceText, meta, now)}
	}

	entries := make([]*domain.GratitudeEntry, 0, len(valid))
	for i, r := range valid {
		season, holidays := inferAssociations(r)

		details := r.SpecificDetails
		if len(details) > maxSpecificDetails {
			details = details[:maxSpecificDetails]
		}

		entry, err := domain.NewGratitudeEntry(
			userID, memoryID,
			entryCode(r.EntryID, now, i),
			strings.TrimSpace(r.CoreTheme),
			strings.TrimSpace(r.SummaryStory),
			strings.TrimSpace(r.ReflectionPrompt),
			details, r.Tags,
			season, holidays,
		)
		if err != nil {
			return nil, fmt.Errorf("normalized entry %d is invalid: %w", i, err)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// isComplete reports whether a raw entry carries every required field.
func isComplete(r RawEntry) bool {
	return strings.TrimSpace(r.CoreTheme) != "" &&
		strings.TrimSpace(r.SummaryStory) != "" &&
		strings.TrimSpace(r.ReflectionPrompt) != "" &&
		len(r.Tags) > 0
}

// entryCode returns the stable code for an entry: the id the extraction
// service provided, or a synthesized MEM-<timestamp>-<index> code.
func entryCode(provided string, now time.Time, index int) string {
	if code := strings.TrimSpace(provided); code != "" {
		return code
	}
	return fmt.Sprintf("MEM-%d-%d", now.Unix(), index)
}

// fallbackEntry builds the single keyword-derived entry used when extraction
// failed or returned nothing usable.
func fallbackEntry(sourceText string, meta Metadata, now time.Time) RawEntry {
	text := strings.ToLower(sourceText)

	theme := "Appreciation"
	tags := []string{"Personal"}

	for _, rule := range fallbackThemeRules {
		if containsAny(text, rule.keywords) {
			theme = rule.theme
			tags = append(tags, rule.tag)
		}
	}

	from := "A personal letter"
	if meta.SenderName != "" {
		from = "From " + meta.SenderName
	}
	occasion := meta.Occasion
	if occasion == "" {
		occasion = "A moment of connection"
	}

	return RawEntry{
		EntryID:   fmt.Sprintf("MEM-%d-0", now.Unix()),
		CoreTheme: theme,
		SummaryStory: "A heartfelt message arrived, carrying warmth and appreciation. " +
			"The words spoke of connection and the simple yet profound impact of " +
			"being remembered and valued by someone special.",
		SpecificDetails: []string{from, occasion, "Handwritten with care"},
		ReflectionPrompt: "Think about someone who has shown you kindness recently. " +
			"How might you express your appreciation to them today?",
		Tags: tags,
	}
}

// inferAssociations scans an entry's own theme, story and tags for seasonal
// and holiday vocabulary. The first matching rule decides the season;
// all matching holidays are collected. Entries with no seasonal signal are
// tagged "any".
func inferAssociations(r RawEntry) (domain.Season, []string) {
	text := strings.ToLower(r.CoreTheme + " " + r.SummaryStory + " " + strings.Join(r.Tags, " "))

	season := domain.SeasonAny
	var holidays []string

	for _, rule := range associationRules {
		if !containsAny(text, rule.keywords) {
			continue
		}
		if season == domain.SeasonAny {
			season = rule.season
		}
		if rule.holiday != "" {
			holidays = append(holidays, rule.holiday)
		}
	}

	return season, holidays
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
