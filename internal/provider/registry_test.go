package provider

import (
	"context"
	"testing"

	"github.com/promptforge/promptforge/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubAdapter is a minimal Adapter for registry tests.
type stubAdapter struct {
	id string
}

func (s *stubAdapter) ID() string                { return s.id }
func (s *stubAdapter) DisplayName() string       { return s.id }
func (s *stubAdapter) SupportedModels() []string { return []string{s.id + "-model"} }
func (s *stubAdapter) DefaultModel() string      { return s.id + "-model" }

func (s *stubAdapter) ValidateAPIKey(context.Context, string) bool { return true }

func (s *stubAdapter) GenerateQuestions(context.Context, string, GenerateOptions) ([]entity.Question, error) {
	return nil, nil
}

func (s *stubAdapter) RefinePrompt(context.Context, string, []entity.Question, []entity.Answer, RefineOptions) (string, error) {
	return "", nil
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry("openai", zap.NewNop(), &stubAdapter{id: "openai"}, &stubAdapter{id: "groq"})

	a, ok := r.Get("groq")
	require.True(t, ok)
	assert.Equal(t, "groq", a.ID())

	_, ok = r.Get("nonexistent")
	assert.False(t, ok)
}

func TestRegistryDefaultPrefersConfigured(t *testing.T) {
	r := NewRegistry("groq", zap.NewNop(), &stubAdapter{id: "openai"}, &stubAdapter{id: "groq"})

	a, ok := r.Default()
	require.True(t, ok)
	assert.Equal(t, "groq", a.ID())
}

func TestRegistryDefaultFallsBackToAnyRegistered(t *testing.T) {
	r := NewRegistry("anthropic", zap.NewNop(), &stubAdapter{id: "openai"})

	a, ok := r.Default()
	require.True(t, ok)
	assert.Equal(t, "openai", a.ID())
}

func TestRegistryDefaultEmpty(t *testing.T) {
	r := NewRegistry("openai", zap.NewNop())

	_, ok := r.Default()
	assert.False(t, ok)
}

func TestRegistryAvailable(t *testing.T) {
	r := NewRegistry("openai", zap.NewNop(), &stubAdapter{id: "openai"}, &stubAdapter{id: "anthropic"})

	descriptors := r.Available()
	require.Len(t, descriptors, 2)
	assert.Equal(t, "openai", descriptors[0].ID)
	assert.Equal(t, "anthropic", descriptors[1].ID)

	for _, d := range descriptors {
		assert.True(t, d.IsAvailable)
		assert.NotEmpty(t, d.SupportedModels)
		assert.NotEmpty(t, d.DefaultModel)
	}
}
