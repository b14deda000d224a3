package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/promptforge/promptforge/internal/config"
	"github.com/promptforge/promptforge/internal/entity"
	pkgretry "github.com/promptforge/promptforge/internal/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testOptions(baseURL string) Options {
	return Options{
		APIKey:  "test-key",
		BaseURL: baseURL,
		HTTP:    config.HTTPClientConfig{RequestTimeout: 5 * time.Second},
		Retry:   &pkgretry.RetryConfig{Attempts: 1, Delay: time.Millisecond, MaxDelay: time.Millisecond},
		Logger:  zap.NewNop(),
	}
}

func chatCompletionBody(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	require.NoError(t, err)
	return body
}

func TestOpenAIGenerateQuestions(t *testing.T) {
	var gotReq chatCompletionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.Write(chatCompletionBody(t, wellFormedPayload))
	}))
	defer srv.Close()

	adapter := NewOpenAI(testOptions(srv.URL))

	questions, err := adapter.GenerateQuestions(context.Background(), "Write a blog post about AI", GenerateOptions{MaxQuestions: 7})
	require.NoError(t, err)
	assert.Len(t, questions, 2)

	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[0].Content, `"questions"`)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Equal(t, "Write a blog post about AI", gotReq.Messages[1].Content)
	assert.Equal(t, "gpt-4o", gotReq.Model)
	assert.InDelta(t, DefaultGenerateTemperature, gotReq.Temperature, 0.001)
}

func TestOpenAIGenerateQuestionsUnparseable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(chatCompletionBody(t, "I'm sorry, I can't produce structured output right now."))
	}))
	defer srv.Close()

	adapter := NewOpenAI(testOptions(srv.URL))

	_, err := adapter.GenerateQuestions(context.Background(), "Write a blog post about AI", GenerateOptions{})

	var parseErr *entity.GenerationParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "openai", parseErr.Provider)
}

func TestOpenAIRefinePrompt(t *testing.T) {
	var gotReq chatCompletionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write(chatCompletionBody(t, "  Write a 1200-word blog post about AI safety for a general audience.  "))
	}))
	defer srv.Close()

	adapter := NewOpenAI(testOptions(srv.URL))

	questions := transcriptQuestions()
	answers := []entity.Answer{
		{ID: "a1", QuestionID: "q1", Response: entity.StringAnswer("General audience")},
	}

	refined, err := adapter.RefinePrompt(context.Background(), "Write a blog post about AI", questions, answers, RefineOptions{Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.Equal(t, "Write a 1200-word blog post about AI safety for a general audience.", refined)

	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.InDelta(t, DefaultRefineTemperature, gotReq.Temperature, 0.001)
	assert.Contains(t, gotReq.Messages[1].Content, "Not answered")
	assert.Contains(t, gotReq.Messages[1].Content, "General audience")
}

func TestOpenAIRefinePromptVendorFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	adapter := NewOpenAI(testOptions(srv.URL))

	_, err := adapter.RefinePrompt(context.Background(), "Write a blog post about AI", nil, nil, RefineOptions{})

	var refineErr *entity.RefinementError
	require.ErrorAs(t, err, &refineErr)
	assert.Equal(t, "openai", refineErr.Provider)
}

func TestOpenAIValidateAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)

		// The probe key must win over the configured adapter key.
		if r.Header.Get("Authorization") == "Bearer probe-key" {
			w.Write([]byte(`{"data":[]}`))
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	adapter := NewOpenAI(testOptions(srv.URL))

	assert.True(t, adapter.ValidateAPIKey(context.Background(), "probe-key"))
	assert.False(t, adapter.ValidateAPIKey(context.Background(), "wrong-key"))
	assert.False(t, adapter.ValidateAPIKey(context.Background(), ""))
}

func TestGroqUsesStrictInstruction(t *testing.T) {
	var gotReq chatCompletionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write(chatCompletionBody(t, wellFormedPayload))
	}))
	defer srv.Close()

	adapter := NewGroq(testOptions(srv.URL))

	_, err := adapter.GenerateQuestions(context.Background(), "Write a blog post about AI", GenerateOptions{})
	require.NoError(t, err)

	assert.Equal(t, "groq", adapter.ID())
	assert.Equal(t, "llama-3.3-70b-versatile", gotReq.Model)
	assert.Contains(t, gotReq.Messages[0].Content, "Do not wrap the JSON in markdown code fences")
}
