package provider

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/promptforge/promptforge/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedPayload = `{
  "questions": [
    {
      "text": "Should the post target a technical audience?",
      "category": "context",
      "impact": "high",
      "explanation": "Audience drives vocabulary.",
      "options": ["Yes, experts", "Mixed audience", "No, general readers"],
      "defaultOption": 1
    },
    {
      "text": "Is there a strict word limit?",
      "category": "constraints",
      "impact": "medium",
      "options": ["Yes", "Flexible", "No"],
      "defaultOption": 2
    }
  ]
}`

func TestParseQuestionsDirectJSON(t *testing.T) {
	questions, err := ParseQuestions(wellFormedPayload, "openai", "gpt-4o", 10)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, "Should the post target a technical audience?", questions[0].Text)
	assert.Equal(t, entity.CategoryContext, questions[0].Category)
	assert.Equal(t, entity.ImpactHigh, questions[0].Impact)
	assert.Equal(t, "Audience drives vocabulary.", questions[0].Explanation)
	assert.Equal(t, []string{"Yes, experts", "Mixed audience", "No, general readers"}, questions[0].Options)
	assert.Equal(t, 1, questions[0].DefaultOption)
	assert.Equal(t, 0, questions[0].Order)

	assert.Equal(t, entity.CategoryConstraints, questions[1].Category)
	assert.Equal(t, 2, questions[1].DefaultOption)
	assert.Equal(t, 1, questions[1].Order)

	assert.NotEqual(t, questions[0].ID, questions[1].ID)
}

func TestParseQuestionsRoundTrip(t *testing.T) {
	first, err := ParseQuestions(wellFormedPayload, "openai", "gpt-4o", 10)
	require.NoError(t, err)

	// Re-serialize the adapter's own output and feed it back through the
	// parser: order and field values must survive.
	reserialized, err := json.Marshal(map[string]any{"questions": first})
	require.NoError(t, err)

	second, err := ParseQuestions(string(reserialized), "openai", "gpt-4o", 10)
	require.NoError(t, err)
	require.Len(t, second, len(first))

	for i := range first {
		assert.Equal(t, first[i].Text, second[i].Text)
		assert.Equal(t, first[i].Order, second[i].Order)
		assert.Equal(t, first[i].Category, second[i].Category)
		assert.Equal(t, first[i].Impact, second[i].Impact)
		assert.Equal(t, first[i].Explanation, second[i].Explanation)
		assert.Equal(t, first[i].Options, second[i].Options)
		assert.Equal(t, first[i].DefaultOption, second[i].DefaultOption)
	}
}

func TestParseQuestionsFencedBlock(t *testing.T) {
	raw := "Here are your questions:\n\n```json\n" + wellFormedPayload + "\n```\n\nLet me know if you need more."

	questions, err := ParseQuestions(raw, "anthropic", "claude-3-5-sonnet-latest", 10)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestParseQuestionsEmbeddedObject(t *testing.T) {
	raw := "Sure! " + wellFormedPayload + " Hope this helps."

	questions, err := ParseQuestions(raw, "groq", "llama-3.3-70b-versatile", 10)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestParseQuestionsNumberedRecovery(t *testing.T) {
	raw := "Sure, here are some questions: 1. What tone? 2. What length?"

	questions, err := ParseQuestions(raw, "openai", "gpt-4o", 10)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, "What tone?", questions[0].Text)
	assert.Equal(t, "What length?", questions[1].Text)

	for _, q := range questions {
		assert.Equal(t, []string{"Yes", "Maybe", "No"}, q.Options)
		assert.Equal(t, 1, q.DefaultOption)
	}
}

func TestParseQuestionsNumberedLines(t *testing.T) {
	raw := "Question 1: Should it be formal?\nQ2: Does it need examples?\n3) How long should it be?"

	questions, err := ParseQuestions(raw, "openai", "gpt-4o", 10)
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, "Should it be formal?", questions[0].Text)
	assert.Equal(t, "Does it need examples?", questions[1].Text)
	assert.Equal(t, "How long should it be?", questions[2].Text)
}

func TestParseQuestionsUnparseable(t *testing.T) {
	questions, err := ParseQuestions("I cannot help with that request.", "groq", "llama-3.3-70b-versatile", 10)
	assert.Nil(t, questions)

	var parseErr *entity.GenerationParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "groq", parseErr.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", parseErr.Model)
}

func TestParseQuestionsNormalizesMalformedFields(t *testing.T) {
	bad := -1
	raw, err := json.Marshal(rawQuestionsPayload{Questions: []rawQuestion{
		{Text: "Missing everything?"},
		{Question: "Legacy field spelling?", Category: "CLARITY", Impact: "HIGH"},
		{Text: "Two options only?", Options: []string{"Yes", "No"}, DefaultOption: &bad},
		{Text: "", Question: ""},
		{Text: "Weird category?", Category: "tone", Impact: "severe"},
	}})
	require.NoError(t, err)

	questions, perr := ParseQuestions(string(raw), "openai", "gpt-4o", 10)
	require.NoError(t, perr)
	require.Len(t, questions, 4)

	for i, q := range questions {
		assert.Len(t, q.Options, 3, "question %d", i)
		assert.GreaterOrEqual(t, q.DefaultOption, 0)
		assert.LessOrEqual(t, q.DefaultOption, 2)
		assert.Equal(t, i, q.Order)
		assert.NotEmpty(t, q.ID)
	}

	assert.Equal(t, "Legacy field spelling?", questions[1].Text)
	assert.Equal(t, entity.CategoryClarity, questions[1].Category)
	assert.Equal(t, entity.ImpactHigh, questions[1].Impact)

	assert.Equal(t, entity.CategoryClarity, questions[3].Category)
	assert.Equal(t, entity.ImpactMedium, questions[3].Impact)
}

func TestParseQuestionsClampsToMax(t *testing.T) {
	payload := rawQuestionsPayload{}
	for i := 0; i < 12; i++ {
		payload.Questions = append(payload.Questions, rawQuestion{Text: fmt.Sprintf("Question number %d?", i)})
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	questions, perr := ParseQuestions(string(raw), "openai", "gpt-4o", 7)
	require.NoError(t, perr)
	assert.Len(t, questions, 7)
}

func TestFallbackQuestionsInvariants(t *testing.T) {
	questions := FallbackQuestions()
	require.Len(t, questions, 5)

	for i, q := range questions {
		assert.NotEmpty(t, q.ID)
		assert.Equal(t, i, q.Order)
		assert.Len(t, q.Options, 3)
		assert.Equal(t, 1, q.DefaultOption)
	}

	// Fresh ids per call so two sessions never share question ids.
	again := FallbackQuestions()
	assert.NotEqual(t, questions[0].ID, again[0].ID)
}
