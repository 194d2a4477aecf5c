// Package story generates backstory text from a prompt and shapes it
// into a deliberately ended piece.
package story

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// MinLength and MaxLength bound the requested story length in characters.
	MinLength = 100
	MaxLength = 1000

	// maxAttempts is the generation attempt budget; each failed attempt
	// moves to the next endpoint in the pool.
	maxAttempts = 3

	// truncateToken tells the generation service where to cut its output.
	truncateToken = "<|endoftext|>"
)

// ErrExhaustedRetries indicates every generation attempt failed.
var ErrExhaustedRetries = errors.New("story generation failed after all attempts")

// Generator requests text generation from a pool of interchangeable
// service endpoints, retrying across the pool on failure.
type Generator struct {
	rotation   *Rotation
	httpClient *http.Client
}

// GeneratorConfig holds configuration for the generator.
type GeneratorConfig struct {
	Rotation   *Rotation
	HTTPClient *http.Client
}

// NewGenerator creates a story generator.
func NewGenerator(cfg GeneratorConfig) *Generator {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	return &Generator{rotation: cfg.Rotation, httpClient: httpClient}
}

type generateRequest struct {
	Prefix      string  `json:"prefix"`
	Length      int     `json:"length"`
	Temperature float64 `json:"temperature"`
	Truncate    string  `json:"truncate"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// GenerateText returns generated text for the prompt, or
// ErrExhaustedRetries once the attempt budget is spent.
func (g *Generator) GenerateText(ctx context.Context, prompt string, maxLength int, temperature float64) (string, error) {
	if maxLength < MinLength || maxLength > MaxLength {
		return "", fmt.Errorf("maximum length must be between %d and %d", MinLength, MaxLength)
	}
	if temperature < 0 || temperature > 1 {
		return "", errors.New("temperature must be between 0 and 1")
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		endpoint := g.rotation.Current()

		text, err := g.request(ctx, endpoint, prompt, maxLength, temperature)
		if err == nil {
			return text, nil
		}
		lastErr = err

		slog.Warn("story generation attempt failed",
			"endpoint", endpoint,
			"attempt", attempt,
			"error", err,
		)
		g.rotation.Advance()
	}

	return "", fmt.Errorf("%w: %v", ErrExhaustedRetries, lastErr)
}

func (g *Generator) request(ctx context.Context, endpoint, prompt string, maxLength int, temperature float64) (string, error) {
	body, err := json.Marshal(generateRequest{
		Prefix:      prompt,
		Length:      maxLength,
		Temperature: temperature,
		Truncate:    truncateToken,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation service error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var generated generateResponse
	if err := json.Unmarshal(respBody, &generated); err != nil {
		return "", fmt.Errorf("decode generation response: %w", err)
	}

	return generated.Text, nil
}
