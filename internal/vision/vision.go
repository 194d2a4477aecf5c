// Package vision detects descriptive labels in uploaded images.
package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultModel     = "claude-3-5-haiku-latest"
	defaultMaxTokens = 256
)

const labelPrompt = `List between 5 and 10 short lowercase labels naming the main objects,
beings, and actions visible in this image. Prefer single words; use a short phrase only
when a single word would be wrong (e.g. "polar bear"). For actions use the -ing form
(e.g. "running"). Respond with only the labels, comma-separated, no other text.`

// Detector produces descriptive labels for an image. An empty label
// list is a valid result for an uninteresting image.
type Detector interface {
	DetectLabels(ctx context.Context, image []byte, mimeType string) ([]string, error)
}

// ClaudeDetector implements Detector using Claude vision.
type ClaudeDetector struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// ClaudeConfig holds configuration for the Claude detector.
type ClaudeConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// NewClaudeDetector creates a label detector backed by Claude vision.
func NewClaudeDetector(cfg ClaudeConfig) *ClaudeDetector {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &ClaudeDetector{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     model,
		maxTokens: int64(maxTokens),
	}
}

// DetectLabels returns labels for the given image bytes.
func (d *ClaudeDetector) DetectLabels(ctx context.Context, image []byte, mimeType string) ([]string, error) {
	if len(image) == 0 {
		return nil, errors.New("image data is empty")
	}
	if !isImageMimeType(mimeType) {
		return nil, fmt.Errorf("invalid MIME type for image: %s", mimeType)
	}

	base64Image := base64.StdEncoding.EncodeToString(image)

	message, err := d.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(d.model),
		MaxTokens: d.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(mimeType, base64Image),
				anthropic.NewTextBlock(labelPrompt),
			),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("detect labels: %w", err)
	}

	if len(message.Content) == 0 {
		return nil, errors.New("no content in response")
	}
	if message.Content[0].Type != "text" {
		return nil, fmt.Errorf("unexpected response type: %s", message.Content[0].Type)
	}

	return parseLabels(message.Content[0].Text), nil
}

// parseLabels splits a comma-separated label line into trimmed,
// non-empty labels.
func parseLabels(text string) []string {
	var labels []string
	for _, part := range strings.Split(text, ",") {
		label := strings.ToLower(strings.TrimSpace(part))
		if label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

func isImageMimeType(mimeType string) bool {
	switch mimeType {
	case "image/png", "image/jpeg", "image/gif", "image/webp":
		return true
	}
	return false
}
