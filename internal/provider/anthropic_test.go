package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/promptforge/promptforge/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anthropicBody(t *testing.T, text string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
	})
	require.NoError(t, err)
	return body
}

func TestAnthropicGenerateQuestions(t *testing.T) {
	var gotReq anthropicMessageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.Write(anthropicBody(t, wellFormedPayload))
	}))
	defer srv.Close()

	adapter := NewAnthropic(testOptions(srv.URL))

	questions, err := adapter.GenerateQuestions(context.Background(), "Write a blog post about AI", GenerateOptions{})
	require.NoError(t, err)
	assert.Len(t, questions, 2)

	assert.Equal(t, "claude-3-5-sonnet-latest", gotReq.Model)
	assert.Contains(t, gotReq.System, `"questions"`)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "Write a blog post about AI", gotReq.Messages[0].Content)
}

func TestAnthropicJoinsTextBlocks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := json.Marshal(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": "Refined "},
				{"type": "tool_use", "text": "ignored"},
				{"type": "text", "text": "prompt text."},
			},
		})
		require.NoError(t, err)
		w.Write(body)
	}))
	defer srv.Close()

	adapter := NewAnthropic(testOptions(srv.URL))

	refined, err := adapter.RefinePrompt(context.Background(), "Write a blog post about AI", nil, nil, RefineOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Refined prompt text.", refined)
}

func TestAnthropicRefineFailureTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	adapter := NewAnthropic(testOptions(srv.URL))

	_, err := adapter.RefinePrompt(context.Background(), "Write a blog post about AI", nil, nil, RefineOptions{})

	var refineErr *entity.RefinementError
	require.ErrorAs(t, err, &refineErr)
	assert.Equal(t, "anthropic", refineErr.Provider)
	assert.Equal(t, "claude-3-5-sonnet-latest", refineErr.Model)
}

func TestAnthropicValidateAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req anthropicMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 1, req.MaxTokens)

		if r.Header.Get("x-api-key") == "probe-key" {
			w.Write(anthropicBody(t, "pong"))
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	adapter := NewAnthropic(testOptions(srv.URL))

	assert.True(t, adapter.ValidateAPIKey(context.Background(), "probe-key"))
	assert.False(t, adapter.ValidateAPIKey(context.Background(), "wrong-key"))
}
