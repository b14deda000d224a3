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
	openAIID          = "openai"
	openAIDisplayName = "OpenAI"
	openAIBaseURL     = "https://api.openai.com/v1"

	completionMaxTokens = 2048
)

var openAIModels = []string{
	"gpt-4o",
	"gpt-4o-mini",
	"gpt-4-turbo",
	"gpt-3.5-turbo",
}

// Chat completions wire format shared by every OpenAI-compatible vendor.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// OpenAICompatible is the adapter for vendors speaking the OpenAI chat
// completions wire format. OpenAI itself and Groq are both instances of it,
// differing in endpoint, model list and instruction strictness.
type OpenAICompatible struct {
	id           string
	displayName  string
	models       []string
	defaultModel string
	strictJSON   bool
	connector    *pkghttp.Connector
	retryOpts    []retry.Option
	logger       *zap.Logger
}

func NewOpenAI(opts Options) *OpenAICompatible {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = openAIBaseURL
	}

	return &OpenAICompatible{
		id:           openAIID,
		displayName:  openAIDisplayName,
		models:       openAIModels,
		defaultModel: openAIModels[0],
		strictJSON:   false,
		connector: newVendorConnector(baseURL, opts.HTTP, opts.Logger,
			pkghttp.WithAuthToken(opts.APIKey)),
		retryOpts: opts.retryOptions(),
		logger:    opts.Logger,
	}
}

func (a *OpenAICompatible) ID() string                { return a.id }
func (a *OpenAICompatible) DisplayName() string       { return a.displayName }
func (a *OpenAICompatible) SupportedModels() []string { return a.models }
func (a *OpenAICompatible) DefaultModel() string      { return a.defaultModel }

// ValidateAPIKey probes the vendor's model listing with the supplied key.
// Any failure reads as false.
func (a *OpenAICompatible) ValidateAPIKey(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}

	err := a.connector.DoRequest(ctx, http.MethodGet, "/models", nil, nil,
		pkghttp.WithHeader("Authorization", "Bearer "+key))
	if err != nil {
		ctxzap.Debug(ctx, "api key validation failed",
			zap.String("provider", a.id),
			zap.Error(err),
		)
		return false
	}

	return true
}

func (a *OpenAICompatible) GenerateQuestions(ctx context.Context, prompt string, opts GenerateOptions) ([]entity.Question, error) {
	model := a.resolveModel(opts.Model)
	maxQuestions := opts.MaxQuestions
	if maxQuestions <= 0 {
		maxQuestions = DefaultMaxQuestions
	}

	ctxzap.Info(ctx, "generating questions",
		zap.String("provider", a.id),
		zap.String("model", model),
		zap.Int("max_questions", maxQuestions),
	)

	raw, err := a.complete(ctx, model,
		resolveTemperature(opts.Temperature, DefaultGenerateTemperature),
		questionsInstruction(maxQuestions, a.strictJSON), prompt)
	if err != nil {
		return nil, fmt.Errorf("%s (model %s): generate questions: %w", a.id, model, err)
	}

	questions, err := ParseQuestions(raw, a.id, model, maxQuestions)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "questions generated",
		zap.String("provider", a.id),
		zap.Int("count", len(questions)),
	)

	return questions, nil
}

func (a *OpenAICompatible) RefinePrompt(ctx context.Context, originalPrompt string, questions []entity.Question, answers []entity.Answer, opts RefineOptions) (string, error) {
	model := a.resolveModel(opts.Model)

	ctxzap.Info(ctx, "refining prompt",
		zap.String("provider", a.id),
		zap.String("model", model),
		zap.Int("questions", len(questions)),
		zap.Int("answers", len(answers)),
	)

	transcript := RenderTranscript(originalPrompt, questions, answers)

	refined, err := a.complete(ctx, model,
		resolveTemperature(opts.Temperature, DefaultRefineTemperature),
		refineInstruction, transcript)
	if err != nil {
		return "", &entity.RefinementError{Provider: a.id, Model: model, Err: err}
	}
	if refined == "" {
		return "", &entity.RefinementError{Provider: a.id, Model: model, Err: errors.New("empty refinement response")}
	}

	return refined, nil
}

func (a *OpenAICompatible) complete(ctx context.Context, model string, temperature float64, system, user string) (string, error) {
	reqBody := chatCompletionRequest{
		Model:       model,
		Temperature: temperature,
		MaxTokens:   completionMaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	var resp chatCompletionResponse
	err := retry.Do(func() error {
		resp = chatCompletionResponse{}
		return a.connector.DoRequest(ctx, http.MethodPost, "/chat/completions", reqBody, &resp)
	}, append(a.retryOpts, retry.Context(ctx), retry.RetryIf(isRetryable))...)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("completion response has no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (a *OpenAICompatible) resolveModel(requested string) string {
	if requested == "" {
		return a.defaultModel
	}
	return requested
}
