// Package perspective scores text with the Perspective API and decides
// whether it is appropriate to publish.
package perspective

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://commentanalyzer.googleapis.com/v1alpha1"

// Attribute is a Perspective API analysis attribute.
type Attribute string

const (
	Toxicity         Attribute = "TOXICITY"
	SexuallyExplicit Attribute = "SEXUALLY_EXPLICIT"
	Profanity        Attribute = "PROFANITY"
	IdentityAttack   Attribute = "IDENTITY_ATTACK"
	Obscene          Attribute = "OBSCENE"
)

// RequestedAttributes are the attributes the content gate decides on.
var RequestedAttributes = []Attribute{
	Toxicity, SexuallyExplicit, Profanity, IdentityAttack, Obscene,
}

// Client calls the Perspective API's comment analysis endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// ClientConfig holds configuration for the Perspective client.
type ClientConfig struct {
	APIKey     string
	BaseURL    string // defaults to the public Perspective endpoint
	HTTPClient *http.Client
}

// NewClient creates a Perspective API client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{apiKey: cfg.APIKey, baseURL: baseURL, httpClient: httpClient}
}

type analyzeRequest struct {
	Comment             struct {
		Text string `json:"text"`
	} `json:"comment"`
	RequestedAttributes map[Attribute]struct{} `json:"requestedAttributes"`
	Languages           []string               `json:"languages"`
	DoNotStore          bool                   `json:"doNotStore"`
}

type analyzeResponse struct {
	AttributeScores map[Attribute]struct {
		SummaryScore struct {
			Value float64 `json:"value"`
		} `json:"summaryScore"`
	} `json:"attributeScores"`
}

// AnalyzeText returns the summary score for each requested attribute.
func (c *Client) AnalyzeText(ctx context.Context, text string, attributes []Attribute) (map[Attribute]float64, error) {
	if text == "" {
		return nil, errors.New("text cannot be empty")
	}
	if len(attributes) == 0 {
		return nil, errors.New("at least one attribute is required")
	}

	reqBody := analyzeRequest{
		RequestedAttributes: make(map[Attribute]struct{}, len(attributes)),
		Languages:           []string{"en"},
		DoNotStore:          true,
	}
	reqBody.Comment.Text = text
	for _, attr := range attributes {
		reqBody.RequestedAttributes[attr] = struct{}{}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/comments:analyze?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("perspective API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var analyzed analyzeResponse
	if err := json.Unmarshal(respBody, &analyzed); err != nil {
		return nil, fmt.Errorf("decode perspective response: %w", err)
	}

	scores := make(map[Attribute]float64, len(analyzed.AttributeScores))
	for attr, score := range analyzed.AttributeScores {
		scores[attr] = score.SummaryScore.Value
	}
	return scores, nil
}
