package validator

import (
	"fmt"
	"unicode/utf8"

	"github.com/promptforge/promptforge/internal/config"
	"github.com/promptforge/promptforge/internal/entity"
)

// ValidatePrompt enforces the prompt length bounds.
func (v *Validator) ValidatePrompt(prompt string) error {
	length := utf8.RuneCountInString(prompt)
	if length < config.MinPromptLength || length > config.MaxPromptLength {
		return fmt.Errorf("%w: prompt length must be between %d and %d characters, got %d",
			entity.ErrInvalidParameter, config.MinPromptLength, config.MaxPromptLength, length)
	}
	return nil
}

// ValidateCreateSession validates CreateSessionRequest
func (v *Validator) ValidateCreateSession(req *entity.CreateSessionRequest) error {
	if req.Provider == "" {
		return fmt.Errorf("%w: llmProvider", entity.ErrMissingField)
	}

	return v.ValidatePrompt(req.OriginalPrompt)
}

// ValidateAnswerQuestion validates answer submission
func (v *Validator) ValidateAnswerQuestion(req *entity.AnswerQuestionRequest) error {
	if req.QuestionID == "" {
		return fmt.Errorf("%w: questionId", entity.ErrMissingField)
	}

	if req.Response.IsZero() {
		return fmt.Errorf("%w: response", entity.ErrMissingField)
	}

	return nil
}

// ValidateRefine validates a refine request; a partial answer set is legal,
// an absent provider is not.
func (v *Validator) ValidateRefine(req *entity.RefineRequest) error {
	if req.Provider == "" {
		return fmt.Errorf("%w: llmProvider", entity.ErrMissingField)
	}

	for _, a := range req.Answers {
		if a.QuestionID == "" {
			return fmt.Errorf("%w: answers[].questionId", entity.ErrMissingField)
		}
	}

	return nil
}

// ValidateGenerateQuestions validates a stateless generation request
func (v *Validator) ValidateGenerateQuestions(req *entity.GenerateQuestionsRequest) error {
	if req.Provider == "" {
		return fmt.Errorf("%w: llmProvider", entity.ErrMissingField)
	}

	if req.MaxQuestions < 0 {
		return fmt.Errorf("%w: maxQuestions must not be negative", entity.ErrInvalidParameter)
	}

	return v.ValidatePrompt(req.Prompt)
}

// ValidateKey validates a key probe request
func (v *Validator) ValidateKey(req *entity.ValidateKeyRequest) error {
	if req.APIKey == "" {
		return fmt.Errorf("%w: apiKey", entity.ErrMissingField)
	}
	return nil
}
