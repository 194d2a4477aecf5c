// Package prompt turns image labels into a natural-language
// storytelling prompt.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/googleinterns/backstory/internal/words"
)

// minimumNouns is how many usable nouns the descriptive method needs.
const minimumNouns = 3

// Classifier groups keywords into word-type buckets.
type Classifier interface {
	Classify(ctx context.Context, keywords []string) (words.Buckets, error)
}

// AdjectiveFetcher returns adjectives related to a single-word noun.
type AdjectiveFetcher interface {
	FetchRelatedAdjectives(ctx context.Context, noun string, count int, shuffle bool) ([]string, error)
}

// BodyGenerator builds the body of a prompt from keywords. When enough
// nouns are available it fills a descriptive sentence template,
// enriching each noun with fetched adjectives; otherwise, or when any
// external call fails, it falls back to a plain listing sentence. It
// never fails: some body is always produced.
type BodyGenerator struct {
	classifier     Classifier
	fetcher        AdjectiveFetcher
	chooseRandomly bool
	rng            *rand.Rand
}

// BodyGeneratorConfig holds configuration for a BodyGenerator.
type BodyGeneratorConfig struct {
	Classifier Classifier
	Fetcher    AdjectiveFetcher
	// ChooseRandomly selects templates uniformly at random instead of
	// always taking the first of each family.
	ChooseRandomly bool
}

// NewBodyGenerator creates a body generator.
func NewBodyGenerator(cfg BodyGeneratorConfig) *BodyGenerator {
	return &BodyGenerator{
		classifier:     cfg.Classifier,
		fetcher:        cfg.Fetcher,
		chooseRandomly: cfg.ChooseRandomly,
		rng:            rand.New(rand.NewSource(rand.Int63())),
	}
}

// GenerateBody produces the prompt body for the given keywords.
func (g *BodyGenerator) GenerateBody(ctx context.Context, keywords []string) string {
	buckets, err := g.classifier.Classify(ctx, keywords)
	if err != nil {
		slog.Debug("keyword classification failed, using list method", "error", err)
		return g.listBody(keywords)
	}

	// Multiword nouns are usable nouns as far as templates are concerned.
	nouns := append([]string(nil), buckets[words.Noun]...)
	nouns = append(nouns, buckets[words.MultiwordNoun]...)
	gerunds := buckets[words.Gerund]

	if len(nouns) < minimumNouns {
		return g.listBody(keywords)
	}

	body, err := g.descriptiveBody(ctx, nouns, gerunds)
	if err != nil {
		slog.Debug("descriptive method failed, using list method", "error", err)
		return g.listBody(keywords)
	}
	return body
}

// descriptiveBody fills a two-sentence template by consuming nouns and
// gerunds from the front of their buckets. Nouns are consumed via a
// cursor so the caller's slices are never mutated; on any failure the
// caller falls back to the untouched original keywords.
func (g *BodyGenerator) descriptiveBody(ctx context.Context, nouns, gerunds []string) (string, error) {
	var body string
	if len(gerunds) == 0 {
		body = g.pick(introTemplates)
	} else {
		body = g.pick(introTemplatesWithGerunds)
	}
	body += " " + g.pick(secondTemplates)

	var nextNoun, nextGerund int
	popNoun := func() (string, error) {
		if nextNoun >= len(nouns) {
			return "", errors.New("ran out of nouns")
		}
		noun := nouns[nextNoun]
		nextNoun++
		return noun, nil
	}

	for {
		switch {
		case strings.Contains(body, placeholderGerund):
			if nextGerund >= len(gerunds) {
				return "", errors.New("ran out of gerunds")
			}
			body = strings.Replace(body, placeholderGerund, gerunds[nextGerund], 1)
			nextGerund++

		case strings.Contains(body, placeholderDoubleAdjNoun):
			noun, err := popNoun()
			if err != nil {
				return "", err
			}
			adjectives, err := g.fetchAdjectives(ctx, noun, 2)
			if err != nil {
				return "", err
			}
			filled := adjectives[0] + " " + adjectives[1] + " " + noun
			body = strings.Replace(body, placeholderDoubleAdjNoun, filled, 1)

		case strings.Contains(body, placeholderAdjNoun):
			noun, err := popNoun()
			if err != nil {
				return "", err
			}
			adjectives, err := g.fetchAdjectives(ctx, noun, 1)
			if err != nil {
				return "", err
			}
			body = strings.Replace(body, placeholderAdjNoun, adjectives[0]+" "+noun, 1)

		default:
			return body, nil
		}
	}
}

func (g *BodyGenerator) fetchAdjectives(ctx context.Context, noun string, count int) ([]string, error) {
	adjectives, err := g.fetcher.FetchRelatedAdjectives(ctx, noun, count, g.chooseRandomly)
	if err != nil {
		return nil, err
	}
	if len(adjectives) < count {
		return nil, fmt.Errorf("only %d related adjectives for %q, need %d", len(adjectives), noun, count)
	}
	return adjectives, nil
}

// listBody enumerates the keywords in a fixed sentence shape. It
// performs no external calls and cannot fail.
func (g *BodyGenerator) listBody(keywords []string) string {
	switch len(keywords) {
	case 0:
		return emptyScene
	case 1:
		return "a " + keywords[0] + " was present."
	case 2:
		return "a " + keywords[0] + " as well as a " + keywords[1] + " " + g.pick(simpleEndings)
	default:
		var b strings.Builder
		for _, kw := range keywords[:len(keywords)-1] {
			b.WriteString(kw)
			b.WriteString(", ")
		}
		b.WriteString("as well as a ")
		b.WriteString(keywords[len(keywords)-1])
		b.WriteString(" ")
		b.WriteString(g.pick(simpleEndings))
		return b.String()
	}
}

// pick returns the first template, or a random one when randomness is enabled.
func (g *BodyGenerator) pick(templates []string) string {
	if g.chooseRandomly {
		return templates[g.rng.Intn(len(templates))]
	}
	return templates[0]
}
