package provider

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/promptforge/promptforge/internal/entity"
)

// rawQuestion tolerates the field spellings models actually emit.
type rawQuestion struct {
	Text          string   `json:"text"`
	Question      string   `json:"question"`
	Category      string   `json:"category"`
	Impact        string   `json:"impact"`
	Explanation   string   `json:"explanation"`
	Options       []string `json:"options"`
	DefaultOption *int     `json:"defaultOption"`
}

type rawQuestionsPayload struct {
	Questions []rawQuestion `json:"questions"`
}

var defaultOptions = []string{"Yes", "Maybe", "No"}

var (
	fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

	// Matches "Question 3:", "Q1.", "2." or "7)" markers followed by a
	// sentence ending in a question mark.
	numberedQuestionRe = regexp.MustCompile(`(?i)(?:question\s*\d+\s*[:.)]|q\d+\s*[:.)]|\d+\s*[.)])\s*([^?]+\?)`)
)

// ParseQuestions coerces a raw vendor completion into questions, trying
// progressively looser extraction strategies: direct JSON, fenced code
// block, embedded object, numbered-line recovery. Zero questions after all
// stages is a typed failure, never a silent empty result.
func ParseQuestions(raw, providerID, model string, maxQuestions int) ([]entity.Question, error) {
	stages := []func(string) []rawQuestion{
		extractDirect,
		extractFenced,
		extractEmbedded,
		extractNumbered,
	}

	for _, extract := range stages {
		if rawQs := extract(raw); len(rawQs) > 0 {
			if questions := normalizeQuestions(rawQs, maxQuestions); len(questions) > 0 {
				return questions, nil
			}
		}
	}

	return nil, &entity.GenerationParseError{Provider: providerID, Model: model}
}

func extractDirect(raw string) []rawQuestion {
	return unmarshalQuestions(strings.TrimSpace(raw))
}

func extractFenced(raw string) []rawQuestion {
	for _, m := range fencedBlockRe.FindAllStringSubmatch(raw, -1) {
		if qs := unmarshalQuestions(m[1]); len(qs) > 0 {
			return qs
		}
	}
	return nil
}

// extractEmbedded pulls out the object enclosing the "questions" key by
// balanced-brace scanning. Braces inside string values can fool it, which
// is acceptable for a recovery stage.
func extractEmbedded(raw string) []rawQuestion {
	keyIdx := strings.Index(raw, `"questions"`)
	if keyIdx < 0 {
		return nil
	}

	start := strings.LastIndex(raw[:keyIdx], "{")
	if start < 0 {
		return nil
	}

	depth := 0
	for i := start; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return unmarshalQuestions(raw[start : i+1])
			}
		}
	}
	return nil
}

func extractNumbered(raw string) []rawQuestion {
	matches := numberedQuestionRe.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil
	}

	out := make([]rawQuestion, 0, len(matches))
	for _, m := range matches {
		out = append(out, rawQuestion{Text: strings.TrimSpace(m[1])})
	}
	return out
}

func unmarshalQuestions(candidate string) []rawQuestion {
	var payload rawQuestionsPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil
	}
	return payload.Questions
}

// normalizeQuestions turns raw parsed questions into valid domain questions:
// fresh ids, sequential order, exactly 3 options, defaultOption in range,
// known category/impact values, clamped to maxQuestions.
func normalizeQuestions(raw []rawQuestion, maxQuestions int) []entity.Question {
	questions := make([]entity.Question, 0, len(raw))

	for _, rq := range raw {
		text := strings.TrimSpace(rq.Text)
		if text == "" {
			text = strings.TrimSpace(rq.Question)
		}
		if text == "" {
			continue
		}

		q := entity.Question{
			ID:            uuid.New().String(),
			Text:          text,
			Order:         len(questions),
			Category:      normalizeCategory(rq.Category),
			Impact:        normalizeImpact(rq.Impact),
			Explanation:   strings.TrimSpace(rq.Explanation),
			Options:       rq.Options,
			DefaultOption: 1,
		}

		if len(q.Options) != 3 {
			q.Options = append([]string(nil), defaultOptions...)
		}
		if rq.DefaultOption != nil && *rq.DefaultOption >= 0 && *rq.DefaultOption < len(q.Options) {
			q.DefaultOption = *rq.DefaultOption
		}

		questions = append(questions, q)
		if maxQuestions > 0 && len(questions) == maxQuestions {
			break
		}
	}

	return questions
}

func normalizeCategory(raw string) entity.QuestionCategory {
	switch entity.QuestionCategory(strings.ToLower(strings.TrimSpace(raw))) {
	case entity.CategoryClarity:
		return entity.CategoryClarity
	case entity.CategorySpecificity:
		return entity.CategorySpecificity
	case entity.CategoryContext:
		return entity.CategoryContext
	case entity.CategoryConstraints:
		return entity.CategoryConstraints
	default:
		return entity.CategoryClarity
	}
}

func normalizeImpact(raw string) entity.QuestionImpact {
	switch entity.QuestionImpact(strings.ToLower(strings.TrimSpace(raw))) {
	case entity.ImpactHigh:
		return entity.ImpactHigh
	case entity.ImpactMedium:
		return entity.ImpactMedium
	case entity.ImpactLow:
		return entity.ImpactLow
	default:
		return entity.ImpactMedium
	}
}
