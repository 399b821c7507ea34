package anthropic

import (
	"fmt"
	"strings"

	"github.com/seedling-labs/gratitude-api/internal/extraction"
)

// systemPrompt frames the model as a gratitude content analyst. The output
// contract (JSON array, anonymized stories) lives here rather than in the
// per-request prompt so it applies to every extraction uniformly.
const systemPrompt = `You are a specialized Gratitude Content Analyst. Your task is to process user-provided personal texts (e.g., letters, stories, journal entries) and extract core gratitude elements while strictly maintaining privacy and focusing only on the *structure* of the positive experience.

Your analysis must convert emotional, narrative content into structured data (JSON) that follows a defined schema:

1. **Identify the Core Theme:** What is the overarching positive emotion or focus (e.g., support, achievement, unexpected kindness, mentorship)?
2. **Extract Sensory/Specific Details:** Note 1-3 concrete details (sights, sounds, specific quotes, locations) that ground the memory.
3. **Formulate an Actionable Prompt:** Create a reflection question based on the content that encourages the user to apply that feeling or experience to their present life.
4. **Create a Short Reflection Story:** Summarize the emotional essence of the original text into a short, inspirational, and *anonymized* story (under 100 words) suitable for being a "gratitude seed" in the app.

Always output valid JSON matching the required schema.`

// extractionSchema is the JSON schema embedded in the extraction prompt so
// the model returns entries the normalizer can decode directly.
const extractionSchema = `{
  "type": "array",
  "description": "An array of structured gratitude entries extracted from the source content.",
  "items": {
    "type": "object",
    "properties": {
      "entry_id": {
        "type": "string",
        "description": "A unique identifier for the entry (e.g., 'KIN-001')."
      },
      "core_theme": {
        "type": "string",
        "description": "The central theme of gratitude (e.g., 'Unexpected Kindness', 'Family Support', 'Professional Achievement')."
      },
      "summary_story": {
        "type": "string",
        "description": "A brief, anonymized, inspirational narrative (max 100 words) capturing the emotional core."
      },
      "specific_details": {
        "type": "array",
        "description": "1-3 concrete, specific details that anchor the memory.",
        "items": { "type": "string" }
      },
      "reflection_prompt": {
        "type": "string",
        "description": "An actionable question to encourage current-day reflection."
      },
      "tags": {
        "type": "array",
        "description": "Categorical tags for filtering (e.g., 'People', 'Career', 'Nature', 'Small Wins').",
        "items": { "type": "string" }
      }
    },
    "required": ["entry_id", "core_theme", "summary_story", "reflection_prompt", "tags"]
  }
}`

// transcriptionPrompt asks the vision model for a faithful transcription of
// a scanned document, nothing else.
const transcriptionPrompt = `Please extract all the text from this image. This is a scanned card, letter, or note. Transcribe exactly what you see, preserving the original formatting and line breaks as much as possible. Only output the text content, nothing else.`

// buildExtractionPrompt assembles the per-request prompt: the schema, the
// optional upload metadata, and the document text.
func buildExtractionPrompt(text string, meta extraction.Metadata) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Analyze the following personal document content. Based on this text, generate a set of 3-5 distinct Gratitude Entries that conform precisely to this JSON schema:

%s

`, extractionSchema)

	if meta.SenderName != "" {
		fmt.Fprintf(&b, "This was sent by: %s\n", meta.SenderName)
	}
	if meta.Occasion != "" {
		fmt.Fprintf(&b, "Occasion: %s\n", meta.Occasion)
	}
	if meta.DateReceived != "" {
		fmt.Fprintf(&b, "Date received: %s\n", meta.DateReceived)
	}

	fmt.Fprintf(&b, `
Document content:
---
%s
---

Generate the gratitude entries as a valid JSON array. Focus on extracting themes of appreciation, connection, and positive life events. Anonymize any names in the summary_story field.`, text)

	return b.String()
}
