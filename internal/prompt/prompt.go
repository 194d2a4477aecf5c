package prompt

import (
	"context"
	"errors"
)

// opener prefixes every generated prompt.
const opener = "Once upon a time, "

// bodyGenerator produces the keyword-derived part of a prompt.
type bodyGenerator interface {
	GenerateBody(ctx context.Context, keywords []string) string
}

// Manager composes the final prompt text from keywords.
type Manager struct {
	generator bodyGenerator
}

// NewManager creates a prompt manager around a body generator.
func NewManager(generator bodyGenerator) *Manager {
	return &Manager{generator: generator}
}

// GeneratePrompt returns the full prompt for the given keywords. A nil
// keyword list is a caller bug; an empty one produces the empty-scene
// prompt.
func (m *Manager) GeneratePrompt(ctx context.Context, keywords []string) (string, error) {
	if keywords == nil {
		return "", errors.New("keywords cannot be nil")
	}
	return opener + m.generator.GenerateBody(ctx, keywords), nil
}
