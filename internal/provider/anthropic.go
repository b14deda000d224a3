package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/promptforge/promptforge/internal/entity"
	pkghttp "github.com/promptforge/promptforge/pkg/http"
	"go.uber.org/zap"
)

const (
	anthropicID          = "anthropic"
	anthropicDisplayName = "Anthropic"
	anthropicBaseURL     = "https://api.anthropic.com/v1"
	anthropicVersion     = "2023-06-01"
)

var anthropicModels = []string{
	"claude-3-5-sonnet-latest",
	"claude-3-5-haiku-latest",
	"claude-3-opus-latest",
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicMessageRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Temperature float64            `json:"temperature,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Anthropic is the adapter for the Anthropic messages API: x-api-key auth,
// a pinned version header, system prompt as a top-level field and content
// blocks in the response.
type Anthropic struct {
	models       []string
	defaultModel string
	connector    *pkghttp.Connector
	retryOpts    []retry.Option
	logger       *zap.Logger
}

func NewAnthropic(opts Options) *Anthropic {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}

	return &Anthropic{
		models:       anthropicModels,
		defaultModel: anthropicModels[0],
		connector: newVendorConnector(baseURL, opts.HTTP, opts.Logger,
			pkghttp.WithAuthHeader("x-api-key", opts.APIKey),
			pkghttp.WithAuthHeader("anthropic-version", anthropicVersion)),
		retryOpts: opts.retryOptions(),
		logger:    opts.Logger,
	}
}

func (a *Anthropic) ID() string                { return anthropicID }
func (a *Anthropic) DisplayName() string       { return anthropicDisplayName }
func (a *Anthropic) SupportedModels() []string { return a.models }
func (a *Anthropic) DefaultModel() string      { return a.defaultModel }

// ValidateAPIKey sends a minimal one-token message with the supplied key.
// Any failure reads as false.
func (a *Anthropic) ValidateAPIKey(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}

	reqBody := anthropicMessageRequest{
		Model:     a.defaultModel,
		MaxTokens: 1,
		Messages:  []anthropicMessage{{Role: "user", Content: "ping"}},
	}

	err := a.connector.DoRequest(ctx, http.MethodPost, "/messages", reqBody, nil,
		pkghttp.WithHeader("x-api-key", key))
	if err != nil {
		ctxzap.Debug(ctx, "api key validation failed",
			zap.String("provider", anthropicID),
			zap.Error(err),
		)
		return false
	}

	return true
}

func (a *Anthropic) GenerateQuestions(ctx context.Context, prompt string, opts GenerateOptions) ([]entity.Question, error) {
	model := a.resolveModel(opts.Model)
	maxQuestions := opts.MaxQuestions
	if maxQuestions <= 0 {
		maxQuestions = DefaultMaxQuestions
	}

	ctxzap.Info(ctx, "generating questions",
		zap.String("provider", anthropicID),
		zap.String("model", model),
		zap.Int("max_questions", maxQuestions),
	)

	raw, err := a.complete(ctx, model,
		resolveTemperature(opts.Temperature, DefaultGenerateTemperature),
		questionsInstruction(maxQuestions, false), prompt)
	if err != nil {
		return nil, fmt.Errorf("%s (model %s): generate questions: %w", anthropicID, model, err)
	}

	questions, err := ParseQuestions(raw, anthropicID, model, maxQuestions)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "questions generated",
		zap.String("provider", anthropicID),
		zap.Int("count", len(questions)),
	)

	return questions, nil
}

func (a *Anthropic) RefinePrompt(ctx context.Context, originalPrompt string, questions []entity.Question, answers []entity.Answer, opts RefineOptions) (string, error) {
	model := a.resolveModel(opts.Model)

	ctxzap.Info(ctx, "refining prompt",
		zap.String("provider", anthropicID),
		zap.String("model", model),
		zap.Int("questions", len(questions)),
		zap.Int("answers", len(answers)),
	)

	transcript := RenderTranscript(originalPrompt, questions, answers)

	refined, err := a.complete(ctx, model,
		resolveTemperature(opts.Temperature, DefaultRefineTemperature),
		refineInstruction, transcript)
	if err != nil {
		return "", &entity.RefinementError{Provider: anthropicID, Model: model, Err: err}
	}
	if refined == "" {
		return "", &entity.RefinementError{Provider: anthropicID, Model: model, Err: errors.New("empty refinement response")}
	}

	return refined, nil
}

func (a *Anthropic) complete(ctx context.Context, model string, temperature float64, system, user string) (string, error) {
	reqBody := anthropicMessageRequest{
		Model:       model,
		MaxTokens:   completionMaxTokens,
		System:      system,
		Temperature: temperature,
		Messages:    []anthropicMessage{{Role: "user", Content: user}},
	}

	var resp anthropicMessageResponse
	err := retry.Do(func() error {
		resp = anthropicMessageResponse{}
		return a.connector.DoRequest(ctx, http.MethodPost, "/messages", reqBody, &resp)
	}, append(a.retryOpts, retry.Context(ctx), retry.RetryIf(isRetryable))...)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", errors.New("message response has no text content")
	}

	return text, nil
}

func (a *Anthropic) resolveModel(requested string) string {
	if requested == "" {
		return a.defaultModel
	}
	return requested
}
