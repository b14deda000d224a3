package entity

type CreateSessionRequest struct {
	OriginalPrompt string `json:"originalPrompt"`
	Provider       string `json:"llmProvider"`
	Model          string `json:"model,omitempty"`
}

type CreateSessionResponse struct {
	Session   *RefinementSession `json:"session"`
	Questions []Question         `json:"questions"`
}

type AnswerQuestionRequest struct {
	QuestionID string      `json:"questionId"`
	Response   AnswerValue `json:"response"`
}

// AnswerInput is one entry of the full answer set a refine call carries.
type AnswerInput struct {
	QuestionID string      `json:"questionId"`
	Response   AnswerValue `json:"response"`
}

type RefineRequest struct {
	Answers  []AnswerInput `json:"answers"`
	Provider string        `json:"llmProvider"`
	Model    string        `json:"model,omitempty"`
}

type RefineResponse struct {
	RefinedPrompt string             `json:"refinedPrompt"`
	Session       *RefinementSession `json:"session"`
}

type GenerateQuestionsRequest struct {
	Prompt       string `json:"prompt"`
	Provider     string `json:"llmProvider"`
	Model        string `json:"model,omitempty"`
	MaxQuestions int    `json:"maxQuestions,omitempty"`
}

type GenerateQuestionsResponse struct {
	Questions []Question `json:"questions"`
}

type ValidateKeyRequest struct {
	APIKey string `json:"apiKey"`
}

type ValidateKeyResponse struct {
	Valid bool `json:"valid"`
}

// ProviderDescriptor describes a registered adapter to API consumers.
type ProviderDescriptor struct {
	ID              string   `json:"id"`
	DisplayName     string   `json:"displayName"`
	SupportedModels []string `json:"supportedModels"`
	DefaultModel    string   `json:"defaultModel"`
	IsAvailable     bool     `json:"isAvailable"`
}
