package provider

import (
	"github.com/google/uuid"
	"github.com/promptforge/promptforge/internal/entity"
)

type fallbackSeed struct {
	text        string
	category    entity.QuestionCategory
	impact      entity.QuestionImpact
	explanation string
}

var fallbackSeeds = []fallbackSeed{
	{
		text:        "Should the response use a formal, professional tone?",
		category:    entity.CategoryClarity,
		impact:      entity.ImpactHigh,
		explanation: "Tone shapes wording throughout the whole response.",
	},
	{
		text:        "Does the output need a specific format or structure, such as a list or sections?",
		category:    entity.CategorySpecificity,
		impact:      entity.ImpactHigh,
		explanation: "Structure requirements are easy to miss in a vague prompt.",
	},
	{
		text:        "Should background context and assumptions be stated explicitly in the prompt?",
		category:    entity.CategoryContext,
		impact:      entity.ImpactMedium,
		explanation: "Unstated assumptions are the most common cause of off-target output.",
	},
	{
		text:        "Are there length constraints the response must respect?",
		category:    entity.CategoryConstraints,
		impact:      entity.ImpactMedium,
		explanation: "Length bounds keep the model from over- or under-delivering.",
	},
	{
		text:        "Is the prompt aimed at a specific audience or expertise level?",
		category:    entity.CategoryContext,
		impact:      entity.ImpactMedium,
		explanation: "Audience changes vocabulary and the level of detail.",
	},
}

// FallbackQuestions returns the hardcoded question set substituted when a
// provider response yields no parseable questions. Each call produces fresh
// ids so the set can be stored on a session like any generated set.
func FallbackQuestions() []entity.Question {
	questions := make([]entity.Question, 0, len(fallbackSeeds))
	for i, seed := range fallbackSeeds {
		questions = append(questions, entity.Question{
			ID:            uuid.New().String(),
			Text:          seed.text,
			Order:         i,
			Category:      seed.category,
			Impact:        seed.impact,
			Explanation:   seed.explanation,
			Options:       append([]string(nil), defaultOptions...),
			DefaultOption: 1,
		})
	}
	return questions
}
