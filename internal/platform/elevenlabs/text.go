package elevenlabs

import (
	"regexp"
	"strings"
)

var (
	multiNewline = regexp.MustCompile(`\n\n+`)
	whitespace   = regexp.MustCompile(`\s+`)
	endsSentence = regexp.MustCompile(`[.!?]$`)
	curlyQuotes  = strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
	)
)

// PrepareTextForSpeech rewrites written text for natural narration:
// paragraph breaks become sentence pauses, line breaks become brief pauses,
// curly quotes are normalized, and the result always ends in punctuation.
func PrepareTextForSpeech(text string) string {
	if text == "" {
		return ""
	}

	prepared := multiNewline.ReplaceAllString(text, ". ")
	prepared = strings.ReplaceAll(prepared, "\n", ", ")
	prepared = curlyQuotes.Replace(prepared)
	prepared = whitespace.ReplaceAllString(prepared, " ")
	prepared = strings.TrimSpace(prepared)

	if prepared != "" && !endsSentence.MatchString(prepared) {
		prepared += "."
	}

	return prepared
}
