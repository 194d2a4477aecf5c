package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/googleinterns/backstory/internal/config"
	"github.com/googleinterns/backstory/internal/db"
	"github.com/googleinterns/backstory/internal/perspective"
	"github.com/googleinterns/backstory/internal/story"
)

type fakeDetector struct {
	labels []string
	err    error
}

func (f *fakeDetector) DetectLabels(ctx context.Context, image []byte, mimeType string) ([]string, error) {
	return f.labels, f.err
}

type fakePrompter struct {
	prompt string
	err    error
}

func (f *fakePrompter) GeneratePrompt(ctx context.Context, keywords []string) (string, error) {
	return f.prompt, f.err
}

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string, maxLength int, temperature float64) (string, error) {
	return f.text, f.err
}

type fakeAnalyzer struct {
	scores map[perspective.Attribute]float64
	err    error
}

func (f *fakeAnalyzer) AnalyzeText(ctx context.Context, text string, attributes []perspective.Attribute) (map[perspective.Attribute]float64, error) {
	return f.scores, f.err
}

type fakeStore struct {
	saved   []*db.Backstory
	recent  []db.Backstory
	saveErr error
}

func (f *fakeStore) SaveBackstory(ctx context.Context, b *db.Backstory) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	b.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, b)
	return nil
}

func (f *fakeStore) RecentBackstories(ctx context.Context, limit int) ([]db.Backstory, error) {
	return f.recent, nil
}

func cleanScores() map[perspective.Attribute]float64 {
	scores := make(map[perspective.Attribute]float64)
	for _, attr := range perspective.RequestedAttributes {
		scores[attr] = 0.1
	}
	return scores
}

func newTestApp(detector *fakeDetector, prompter *fakePrompter, generator *fakeGenerator, analyzer *fakeAnalyzer, store *fakeStore) *App {
	return &App{
		Config: &config.Config{
			StoryMaxLength:   200,
			StoryTemperature: 0.7,
		},
		Detector:  detector,
		Prompter:  prompter,
		Generator: generator,
		Analyzer:  analyzer,
		store:     store,
	}
}

func TestApp_CreateBackstory(t *testing.T) {
	image := []byte("fake image bytes")
	raw := "Once upon a time, a dog barked. The cat was startled. Then it ra"

	store := &fakeStore{}
	a := newTestApp(
		&fakeDetector{labels: []string{"dog", "cat"}},
		&fakePrompter{prompt: "Once upon a time, a dog as well as a cat were together."},
		&fakeGenerator{text: raw},
		&fakeAnalyzer{scores: cleanScores()},
		store,
	)

	got, err := a.CreateBackstory(context.Background(), image, "image/png")
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	assert.Equal(t, store.saved[0], got)
	assert.Equal(t, []string{"dog", "cat"}, got.Labels)
	assert.NotZero(t, got.ID)

	// The image is identified by its content hash.
	wantHash := sha256.Sum256(image)
	assert.Equal(t, hex.EncodeToString(wantHash[:]), got.ImageSHA256)

	// The stored story has the trailing fragment removed and an ending
	// line appended.
	assert.True(t, strings.HasPrefix(got.Story, "Once upon a time, a dog barked. The cat was startled. "), got.Story)
	assert.NotContains(t, got.Story, "it ra")
}

func TestApp_CreateBackstory_Inappropriate(t *testing.T) {
	scores := cleanScores()
	scores[perspective.Toxicity] = 0.95

	store := &fakeStore{}
	a := newTestApp(
		&fakeDetector{labels: []string{"dog"}},
		&fakePrompter{prompt: "Once upon a time, a dog was present."},
		&fakeGenerator{text: "Something unpleasant."},
		&fakeAnalyzer{scores: scores},
		store,
	)

	_, err := a.CreateBackstory(context.Background(), []byte("img"), "image/png")
	assert.ErrorIs(t, err, perspective.ErrInappropriate)
	assert.Empty(t, store.saved)
}

func TestApp_CreateBackstory_Failures(t *testing.T) {
	working := func() (store *fakeStore, detector *fakeDetector, prompter *fakePrompter, generator *fakeGenerator, analyzer *fakeAnalyzer) {
		return &fakeStore{},
			&fakeDetector{labels: []string{"dog"}},
			&fakePrompter{prompt: "Once upon a time, a dog was present."},
			&fakeGenerator{text: "A short story."},
			&fakeAnalyzer{scores: cleanScores()}
	}

	t.Run("detection failure", func(t *testing.T) {
		store, _, prompter, generator, analyzer := working()
		a := newTestApp(&fakeDetector{err: errors.New("vision down")}, prompter, generator, analyzer, store)

		_, err := a.CreateBackstory(context.Background(), []byte("img"), "image/png")
		assert.Error(t, err)
		assert.Empty(t, store.saved)
	})

	t.Run("generation exhausted surfaces its sentinel", func(t *testing.T) {
		store, detector, prompter, _, analyzer := working()
		generator := &fakeGenerator{err: story.ErrExhaustedRetries}
		a := newTestApp(detector, prompter, generator, analyzer, store)

		_, err := a.CreateBackstory(context.Background(), []byte("img"), "image/png")
		assert.ErrorIs(t, err, story.ErrExhaustedRetries)
		assert.Empty(t, store.saved)
	})

	t.Run("analysis failure", func(t *testing.T) {
		store, detector, prompter, generator, _ := working()
		a := newTestApp(detector, prompter, generator, &fakeAnalyzer{err: errors.New("quota")}, store)

		_, err := a.CreateBackstory(context.Background(), []byte("img"), "image/png")
		assert.Error(t, err)
		assert.Empty(t, store.saved)
	})

	t.Run("save failure", func(t *testing.T) {
		_, detector, prompter, generator, analyzer := working()
		store := &fakeStore{saveErr: errors.New("disk full")}
		a := newTestApp(detector, prompter, generator, analyzer, store)

		_, err := a.CreateBackstory(context.Background(), []byte("img"), "image/png")
		assert.Error(t, err)
	})
}

func TestApp_RecentBackstories(t *testing.T) {
	store := &fakeStore{recent: []db.Backstory{{ID: 2}, {ID: 1}}}
	a := &App{store: store}

	got, err := a.RecentBackstories(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
}
