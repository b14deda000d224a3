package provider

import (
	pkghttp "github.com/promptforge/promptforge/pkg/http"
)

const (
	groqID          = "groq"
	groqDisplayName = "Groq"
	groqBaseURL     = "https://api.groq.com/openai/v1"
)

var groqModels = []string{
	"llama-3.3-70b-versatile",
	"llama-3.1-8b-instant",
	"mixtral-8x7b-32768",
}

// NewGroq builds the Groq adapter. Groq speaks the OpenAI chat completions
// wire format but its models wrap JSON in prose more often, so the adapter
// uses the strict JSON-only instruction.
func NewGroq(opts Options) *OpenAICompatible {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = groqBaseURL
	}

	return &OpenAICompatible{
		id:           groqID,
		displayName:  groqDisplayName,
		models:       groqModels,
		defaultModel: groqModels[0],
		strictJSON:   true,
		connector: newVendorConnector(baseURL, opts.HTTP, opts.Logger,
			pkghttp.WithAuthToken(opts.APIKey)),
		retryOpts: opts.retryOptions(),
		logger:    opts.Logger,
	}
}
