package validator

import (
	"strings"
	"testing"

	"github.com/promptforge/promptforge/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestValidatePromptBounds(t *testing.T) {
	v := New()

	assert.NoError(t, v.ValidatePrompt("Write a blog post about AI"))

	assert.ErrorIs(t, v.ValidatePrompt("too short"), entity.ErrInvalidParameter)
	assert.ErrorIs(t, v.ValidatePrompt(""), entity.ErrInvalidParameter)
	assert.ErrorIs(t, v.ValidatePrompt(strings.Repeat("a", 5001)), entity.ErrInvalidParameter)

	// Bounds are rune counts, not byte counts.
	assert.NoError(t, v.ValidatePrompt(strings.Repeat("я", 5000)))
	assert.NoError(t, v.ValidatePrompt(strings.Repeat("я", 10)))
}

func TestValidateCreateSession(t *testing.T) {
	v := New()

	assert.NoError(t, v.ValidateCreateSession(&entity.CreateSessionRequest{
		OriginalPrompt: "Write a blog post about AI",
		Provider:       "openai",
	}))

	assert.ErrorIs(t, v.ValidateCreateSession(&entity.CreateSessionRequest{
		OriginalPrompt: "Write a blog post about AI",
	}), entity.ErrMissingField)

	assert.ErrorIs(t, v.ValidateCreateSession(&entity.CreateSessionRequest{
		OriginalPrompt: "short",
		Provider:       "openai",
	}), entity.ErrInvalidParameter)
}

func TestValidateAnswerQuestion(t *testing.T) {
	v := New()

	assert.NoError(t, v.ValidateAnswerQuestion(&entity.AnswerQuestionRequest{
		QuestionID: "q1",
		Response:   entity.StringAnswer("Formal"),
	}))

	assert.NoError(t, v.ValidateAnswerQuestion(&entity.AnswerQuestionRequest{
		QuestionID: "q1",
		Response:   entity.BoolAnswer(false),
	}))

	assert.ErrorIs(t, v.ValidateAnswerQuestion(&entity.AnswerQuestionRequest{
		Response: entity.StringAnswer("Formal"),
	}), entity.ErrMissingField)

	assert.ErrorIs(t, v.ValidateAnswerQuestion(&entity.AnswerQuestionRequest{
		QuestionID: "q1",
	}), entity.ErrMissingField)
}

func TestValidateRefine(t *testing.T) {
	v := New()

	assert.NoError(t, v.ValidateRefine(&entity.RefineRequest{Provider: "openai"}))

	assert.NoError(t, v.ValidateRefine(&entity.RefineRequest{
		Provider: "openai",
		Answers: []entity.AnswerInput{
			{QuestionID: "q1", Response: entity.BoolAnswer(true)},
		},
	}))

	assert.ErrorIs(t, v.ValidateRefine(&entity.RefineRequest{}), entity.ErrMissingField)

	assert.ErrorIs(t, v.ValidateRefine(&entity.RefineRequest{
		Provider: "openai",
		Answers:  []entity.AnswerInput{{Response: entity.BoolAnswer(true)}},
	}), entity.ErrMissingField)
}

func TestValidateGenerateQuestions(t *testing.T) {
	v := New()

	assert.NoError(t, v.ValidateGenerateQuestions(&entity.GenerateQuestionsRequest{
		Prompt:   "Write a blog post about AI",
		Provider: "openai",
	}))

	assert.ErrorIs(t, v.ValidateGenerateQuestions(&entity.GenerateQuestionsRequest{
		Prompt: "Write a blog post about AI",
	}), entity.ErrMissingField)

	assert.ErrorIs(t, v.ValidateGenerateQuestions(&entity.GenerateQuestionsRequest{
		Prompt:       "Write a blog post about AI",
		Provider:     "openai",
		MaxQuestions: -1,
	}), entity.ErrInvalidParameter)
}

func TestValidateKey(t *testing.T) {
	v := New()

	assert.NoError(t, v.ValidateKey(&entity.ValidateKeyRequest{APIKey: "sk-something"}))
	assert.ErrorIs(t, v.ValidateKey(&entity.ValidateKeyRequest{}), entity.ErrMissingField)
}
