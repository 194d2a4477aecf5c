package words

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	language "cloud.google.com/go/language/apiv1"
	"cloud.google.com/go/language/apiv1/languagepb"
)

const gerundSuffix = "ing"

// SyntaxAnalyzer is the slice of the Cloud Natural Language API the
// classifier needs. Narrowed to an interface so tests can substitute
// canned responses.
type SyntaxAnalyzer interface {
	AnalyzeSyntax(ctx context.Context, text string) (*languagepb.AnalyzeSyntaxResponse, error)
}

// Classifier sorts keywords into word-type buckets. Multi-word and
// whitespace-mangled keywords are bucketed locally; single words are
// sent to the syntax analyzer.
type Classifier struct {
	analyzer SyntaxAnalyzer
}

// NewClassifier creates a classifier backed by the Cloud Natural Language API.
func NewClassifier(ctx context.Context) (*Classifier, error) {
	client, err := language.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create language client: %w", err)
	}
	return &Classifier{analyzer: nlAnalyzer{client: client}}, nil
}

// NewClassifierWithAnalyzer creates a classifier with a custom analyzer.
func NewClassifierWithAnalyzer(analyzer SyntaxAnalyzer) *Classifier {
	return &Classifier{analyzer: analyzer}
}

// Classify groups keywords by word type. Keywords containing a plain
// space become multiword nouns and keywords containing any other
// whitespace become unusable, both without an API call. The rest are
// classified by part of speech.
func (c *Classifier) Classify(ctx context.Context, keywords []string) (Buckets, error) {
	buckets := make(Buckets)

	var single []string
	for _, kw := range keywords {
		switch {
		case !containsWhitespace(kw):
			single = append(single, kw)
		case strings.Contains(kw, " "):
			buckets.Add(MultiwordNoun, kw)
		default:
			buckets.Add(Unusable, kw)
		}
	}

	for _, word := range single {
		wordType, err := c.classifyWord(ctx, word)
		if err != nil {
			return nil, fmt.Errorf("classify %q: %w", word, err)
		}
		buckets.Add(wordType, word)
	}

	return buckets, nil
}

func (c *Classifier) classifyWord(ctx context.Context, word string) (WordType, error) {
	resp, err := c.analyzer.AnalyzeSyntax(ctx, word)
	if err != nil {
		return Unusable, err
	}
	if len(resp.GetTokens()) == 0 {
		return Unusable, fmt.Errorf("no tokens returned for %q", word)
	}

	partOfSpeech := resp.GetTokens()[0].GetPartOfSpeech()

	switch partOfSpeech.GetTag() {
	case languagepb.PartOfSpeech_VERB:
		gerund, err := c.isGerund(ctx, word)
		if err != nil {
			return Unusable, err
		}
		if gerund {
			return Gerund, nil
		}
		return Unusable, nil

	case languagepb.PartOfSpeech_NOUN:
		gerund, err := c.isGerund(ctx, word)
		if err != nil {
			return Unusable, err
		}
		if gerund {
			return Gerund, nil
		}
		if partOfSpeech.GetProper() == languagepb.PartOfSpeech_PROPER {
			return ProperNoun, nil
		}
		return Noun, nil

	case languagepb.PartOfSpeech_ADJ:
		return Adjective, nil
	}

	return Unusable, nil
}

// isGerund reports whether a word is a gerund: it must be a single
// word ending in "ing" that the analyzer tags as a verb when paired
// with "is". Multi-word phrases are never gerunds.
func (c *Classifier) isGerund(ctx context.Context, word string) (bool, error) {
	if containsWhitespace(word) {
		return false, nil
	}
	if !strings.HasSuffix(word, gerundSuffix) {
		return false, nil
	}

	resp, err := c.analyzer.AnalyzeSyntax(ctx, "is "+word)
	if err != nil {
		return false, err
	}
	if len(resp.GetTokens()) < 2 {
		return false, fmt.Errorf("expected two tokens for %q", "is "+word)
	}

	return resp.GetTokens()[1].GetPartOfSpeech().GetTag() == languagepb.PartOfSpeech_VERB, nil
}

func containsWhitespace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

// nlAnalyzer adapts the Cloud Natural Language client to SyntaxAnalyzer.
type nlAnalyzer struct {
	client *language.Client
}

func (a nlAnalyzer) AnalyzeSyntax(ctx context.Context, text string) (*languagepb.AnalyzeSyntaxResponse, error) {
	return a.client.AnalyzeSyntax(ctx, &languagepb.AnalyzeSyntaxRequest{
		Document: &languagepb.Document{
			Source: &languagepb.Document_Content{Content: text},
			Type:   languagepb.Document_PLAIN_TEXT,
		},
	})
}
