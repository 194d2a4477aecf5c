package words

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultDatamuseURL = "https://api.datamuse.com/words"

// Relation is the kind of related word to fetch for a noun.
type Relation string

const (
	RelatedAdjective Relation = "adjective"
	RelatedGerund    Relation = "gerund"
)

var (
	// ErrUnavailable indicates the word service could not be reached.
	ErrUnavailable = errors.New("word service unavailable")
	// ErrMalformedResponse indicates the word service answered with a
	// payload that could not be parsed.
	ErrMalformedResponse = errors.New("malformed word service response")
)

// storytellingTopics bias related-word results towards narrative vocabulary.
var storytellingTopics = []string{
	"story", "fairytale", "narrative", "anecdote",
	"drama", "fantasy", "adventure", "poem", "grand",
}

// RandomTopic returns a randomly chosen storytelling topic.
func RandomTopic() string {
	return storytellingTopics[rand.Intn(len(storytellingTopics))]
}

// Fetcher retrieves related words from the Datamuse API.
type Fetcher struct {
	baseURL    string
	httpClient *http.Client
}

// FetcherConfig holds configuration for the fetcher.
type FetcherConfig struct {
	BaseURL    string // defaults to the public Datamuse endpoint
	HTTPClient *http.Client
}

// NewFetcher creates a related-word fetcher.
func NewFetcher(cfg FetcherConfig) *Fetcher {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultDatamuseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Fetcher{baseURL: baseURL, httpClient: httpClient}
}

// FetchRelatedWords returns up to limit words related to the given noun,
// ordered by relatedness then relevance to the topic. The noun must be
// a single word.
func (f *Fetcher) FetchRelatedWords(ctx context.Context, noun string, relation Relation, limit int, topic string) ([]string, error) {
	if noun == "" {
		return nil, errors.New("noun cannot be empty")
	}
	if containsWhitespace(noun) {
		return nil, fmt.Errorf("noun %q cannot contain whitespace (must be one word)", noun)
	}
	if limit <= 0 {
		return nil, errors.New("limit must be greater than 0")
	}

	params := url.Values{}
	switch relation {
	case RelatedAdjective:
		// Adjectives commonly used to modify the noun.
		params.Set("rel_jjb", noun)
	case RelatedGerund:
		// Nouns modified by the adjective sense of the word, restricted
		// to -ing forms.
		params.Set("rel_jja", noun)
		params.Set("sp", "*ing")
	default:
		return nil, fmt.Errorf("unsupported relation %q", relation)
	}
	params.Set("max", strconv.Itoa(limit))
	params.Set("topics", topic)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var entries []struct {
		Word string `json:"word"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	results := make([]string, 0, len(entries))
	for _, entry := range entries {
		results = append(results, entry.Word)
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// FetchRelatedAdjectives returns up to count adjectives related to the
// noun, biased towards a random storytelling topic. When shuffle is set
// the result order is randomized instead of most-related-first.
func (f *Fetcher) FetchRelatedAdjectives(ctx context.Context, noun string, count int, shuffle bool) ([]string, error) {
	adjectives, err := f.FetchRelatedWords(ctx, noun, RelatedAdjective, count, RandomTopic())
	if err != nil {
		return nil, err
	}
	if shuffle {
		rand.Shuffle(len(adjectives), func(i, j int) {
			adjectives[i], adjectives[j] = adjectives[j], adjectives[i]
		})
	}
	return adjectives, nil
}
