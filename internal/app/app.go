// Package app wires the backstory pipeline together.
package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/googleinterns/backstory/internal/config"
	"github.com/googleinterns/backstory/internal/db"
	"github.com/googleinterns/backstory/internal/perspective"
	"github.com/googleinterns/backstory/internal/prompt"
	"github.com/googleinterns/backstory/internal/story"
	"github.com/googleinterns/backstory/internal/vision"
	"github.com/googleinterns/backstory/internal/words"
)

// PromptGenerator builds a generation prompt from image labels.
type PromptGenerator interface {
	GeneratePrompt(ctx context.Context, keywords []string) (string, error)
}

// TextGenerator produces story text from a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, maxLength int, temperature float64) (string, error)
}

// TextAnalyzer scores text for content attributes.
type TextAnalyzer interface {
	AnalyzeText(ctx context.Context, text string, attributes []perspective.Attribute) (map[perspective.Attribute]float64, error)
}

// BackstoryStore persists and retrieves backstories.
type BackstoryStore interface {
	SaveBackstory(ctx context.Context, b *db.Backstory) error
	RecentBackstories(ctx context.Context, limit int) ([]db.Backstory, error)
}

// App is the main application container holding all dependencies.
type App struct {
	Config    *config.Config
	Store     *db.Store
	Detector  vision.Detector
	Prompter  PromptGenerator
	Generator TextGenerator
	Analyzer  TextAnalyzer

	store BackstoryStore
}

// New creates a new application instance with all dependencies wired up.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Create database connection
	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}

	// Create label detector
	detector := vision.NewClaudeDetector(vision.ClaudeConfig{
		APIKey: cfg.AnthropicAPIKey,
		Model:  cfg.AnthropicModel,
	})

	// Create word classifier and related-word fetcher
	classifier, err := words.NewClassifier(ctx)
	if err != nil {
		store.Close()
		return nil, err
	}
	fetcher := words.NewFetcher(words.FetcherConfig{
		BaseURL: cfg.DatamuseURL,
	})

	// Create prompt manager
	prompter := prompt.NewManager(prompt.NewBodyGenerator(prompt.BodyGeneratorConfig{
		Classifier:     classifier,
		Fetcher:        fetcher,
		ChooseRandomly: cfg.ChooseRandomTemplates,
	}))

	// Create story generator over the endpoint pool
	rotation, err := story.NewRotation(cfg.StoryEndpoints)
	if err != nil {
		store.Close()
		return nil, err
	}
	generator := story.NewGenerator(story.GeneratorConfig{
		Rotation: rotation,
	})

	// Create content analyzer
	analyzer := perspective.NewClient(perspective.ClientConfig{
		APIKey: cfg.PerspectiveAPIKey,
	})

	return &App{
		Config:    cfg,
		Store:     store,
		Detector:  detector,
		Prompter:  prompter,
		Generator: generator,
		Analyzer:  analyzer,
		store:     store,
	}, nil
}

// CreateBackstory runs the full pipeline for one uploaded image: label
// detection, prompt synthesis, story generation, content filtering,
// ending normalization, and persistence. A story that fails the
// content gate is never persisted.
func (a *App) CreateBackstory(ctx context.Context, image []byte, mimeType string) (*db.Backstory, error) {
	labels, err := a.Detector.DetectLabels(ctx, image, mimeType)
	if err != nil {
		return nil, fmt.Errorf("detect labels: %w", err)
	}
	slog.Debug("labels detected", "labels", labels)

	generationPrompt, err := a.Prompter.GeneratePrompt(ctx, labels)
	if err != nil {
		return nil, fmt.Errorf("generate prompt: %w", err)
	}
	slog.Debug("prompt generated", "prompt", generationPrompt)

	raw, err := a.Generator.GenerateText(ctx, generationPrompt, a.Config.StoryMaxLength, a.Config.StoryTemperature)
	if err != nil {
		return nil, fmt.Errorf("generate story: %w", err)
	}

	scores, err := a.Analyzer.AnalyzeText(ctx, raw, perspective.RequestedAttributes)
	if err != nil {
		return nil, fmt.Errorf("analyze story: %w", err)
	}

	appropriate, err := perspective.IsAppropriate(scores)
	if err != nil {
		return nil, fmt.Errorf("decide on story: %w", err)
	}
	if !appropriate {
		return nil, perspective.ErrInappropriate
	}

	imageHash := sha256.Sum256(image)
	backstory := &db.Backstory{
		ImageSHA256: hex.EncodeToString(imageHash[:]),
		Labels:      labels,
		Prompt:      generationPrompt,
		Story:       story.EndStory(raw),
	}
	if err := a.store.SaveBackstory(ctx, backstory); err != nil {
		return nil, fmt.Errorf("save backstory: %w", err)
	}

	slog.Info("backstory created", "id", backstory.ID, "labels", len(labels))
	return backstory, nil
}

// RecentBackstories returns the most recently created backstories.
func (a *App) RecentBackstories(ctx context.Context, limit int) ([]db.Backstory, error) {
	return a.store.RecentBackstories(ctx, limit)
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
