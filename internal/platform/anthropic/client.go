package anthropic

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/seedling-labs/gratitude-api/internal/config"
	"github.com/seedling-labs/gratitude-api/internal/extraction"
	"github.com/seedling-labs/gratitude-api/internal/platform/logger"
)

// Token budgets per request type.
const (
	extractionMaxTokens    = 2000
	transcriptionMaxTokens = 2000
)

// Client talks to the Claude Messages API. It implements both
// extraction.Extractor (deriving gratitude entries from text) and
// extraction.Transcriber (reading text off scanned images).
type Client struct {
	api    sdk.Client
	model  sdk.Model
	logger *slog.Logger
}

// Ensure Client satisfies the extraction boundaries.
var (
	_ extraction.Extractor   = (*Client)(nil)
	_ extraction.Transcriber = (*Client)(nil)
)

// NewClient creates a Client from the LLM configuration.
// Returns extraction.ErrInvalidConfig if the API key is missing.
func NewClient(cfg config.LLMConfig, log *slog.Logger) (*Client, error) {
	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("%w: anthropic API key is required", extraction.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name is required", extraction.ErrInvalidConfig)
	}
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		api:    sdk.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey)),
		model:  sdk.Model(cfg.ModelName),
		logger: log.With(slog.String("component", "anthropic_client")),
	}, nil
}

// ExtractEntries implements extraction.Extractor. It sends the memory text
// with the extraction prompt and decodes the JSON array from the response.
func (c *Client) ExtractEntries(
	ctx context.Context,
	text string,
	meta extraction.Metadata,
) ([]extraction.RawEntry, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	prompt := buildExtractionPrompt(text, meta)

	msg, err := c.api.Messages.New(ctx, sdk.MessageNewParams{
		Model:     c.model,
		MaxTokens: extractionMaxTokens,
		System: []sdk.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		log.Error("extraction request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", extraction.ErrExtractionFailed, err)
	}

	responseText, err := firstText(msg)
	if err != nil {
		return nil, err
	}

	entries, err := ParseEntries(responseText)
	if err != nil {
		log.Warn("could not parse extraction response",
			"error", err,
			"response_length", len(responseText))
		return nil, err
	}

	log.Debug("extraction completed", "entry_count", len(entries))
	return entries, nil
}

// TranscribeImage implements extraction.Transcriber. The image is sent
// base64-encoded alongside a transcription instruction.
func (c *Client) TranscribeImage(
	ctx context.Context,
	imageData []byte,
	mediaType string,
) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if len(imageData) == 0 {
		return "", fmt.Errorf("%w: empty image data", extraction.ErrExtractionFailed)
	}

	encoded := base64.StdEncoding.EncodeToString(imageData)

	msg, err := c.api.Messages.New(ctx, sdk.MessageNewParams{
		Model:     c.model,
		MaxTokens: transcriptionMaxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(
				sdk.NewImageBlockBase64(mediaType, encoded),
				sdk.NewTextBlock(transcriptionPrompt),
			),
		},
	})
	if err != nil {
		log.Error("transcription request failed", "error", err)
		return "", fmt.Errorf("%w: %v", extraction.ErrExtractionFailed, err)
	}

	text, err := firstText(msg)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

// firstText pulls the first text block out of a response, mapping refusals
// to ErrContentBlocked.
func firstText(msg *sdk.Message) (string, error) {
	if msg.StopReason == "refusal" {
		return "", extraction.ErrContentBlocked
	}

	for _, block := range msg.Content {
		if block.Text != "" {
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("%w: response contains no text content", extraction.ErrInvalidResponse)
}

// ParseEntries decodes the JSON array of entries from a model response.
// The model is prompted to emit bare JSON, but chatter around the array is
// tolerated: everything between the first '[' and the last ']' is decoded.
func ParseEntries(responseText string) ([]extraction.RawEntry, error) {
	start := strings.Index(responseText, "[")
	end := strings.LastIndex(responseText, "]")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("%w: no JSON array found in response", extraction.ErrInvalidResponse)
	}

	var entries []extraction.RawEntry
	if err := json.Unmarshal([]byte(responseText[start:end+1]), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", extraction.ErrInvalidResponse, err)
	}

	return entries, nil
}
