package provider

import (
	"strings"

	"github.com/promptforge/promptforge/internal/entity"
)

const notAnswered = "Not answered"

// RenderTranscript renders the deterministic refinement transcript: the
// original prompt followed by every question in order, each paired with its
// recorded answer or "Not answered". Boolean answers render as Yes/No,
// string answers verbatim.
func RenderTranscript(originalPrompt string, questions []entity.Question, answers []entity.Answer) string {
	byQuestion := make(map[string]entity.AnswerValue, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a.Response
	}

	var b strings.Builder
	b.WriteString("Original prompt:\n")
	b.WriteString(originalPrompt)
	b.WriteString("\n\nClarifying questions and answers:\n")

	for _, q := range questions {
		b.WriteString("\nQ: ")
		b.WriteString(q.Text)
		b.WriteString("\nA: ")
		if v, ok := byQuestion[q.ID]; ok && !v.IsZero() {
			b.WriteString(v.Render())
		} else {
			b.WriteString(notAnswered)
		}
		b.WriteString("\n")
	}

	return b.String()
}
