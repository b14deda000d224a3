package entity

import (
	"time"
)

type SessionStatus string

// Session status represents the current state of the refinement workflow
const (
	SessionStatusDraft     SessionStatus = "draft"     // Session created, questions not yet generated
	SessionStatusRefining  SessionStatus = "refining"  // Questions generated, refine cycles in progress
	SessionStatusCompleted SessionStatus = "completed" // User exported the refined prompt
)

type QuestionCategory string

const (
	CategoryClarity     QuestionCategory = "clarity"
	CategorySpecificity QuestionCategory = "specificity"
	CategoryContext     QuestionCategory = "context"
	CategoryConstraints QuestionCategory = "constraints"
)

type QuestionImpact string

const (
	ImpactHigh   QuestionImpact = "high"
	ImpactMedium QuestionImpact = "medium"
	ImpactLow    QuestionImpact = "low"
)

// RefinementSession tracks one user's in-progress prompt refinement.
// Questions are replaced wholesale each refine cycle; answers hold at most
// one entry per question id.
type RefinementSession struct {
	ID             string        `json:"id"`
	OriginalPrompt string        `json:"originalPrompt"`
	RefinedPrompt  string        `json:"refinedPrompt,omitempty"`
	Status         SessionStatus `json:"status"`
	Provider       string        `json:"llmProvider"`
	Model          string        `json:"model,omitempty"`
	Questions      []Question    `json:"questions"`
	Answers        []Answer      `json:"answers"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
	ExpiresAt      time.Time     `json:"expiresAt"`
}

// Expired reports whether the session passed its TTL deadline.
func (s *RefinementSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// QuestionByID returns the question from the current question set.
func (s *RefinementSession) QuestionByID(id string) (*Question, bool) {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i], true
		}
	}
	return nil, false
}

// AnswerFor returns the current answer for a question, if any.
func (s *RefinementSession) AnswerFor(questionID string) (*Answer, bool) {
	for i := range s.Answers {
		if s.Answers[i].QuestionID == questionID {
			return &s.Answers[i], true
		}
	}
	return nil, false
}

// UpsertAnswer replaces the answer for the question if one exists,
// otherwise appends. The stored answer keeps its original id on replace.
func (s *RefinementSession) UpsertAnswer(a Answer) {
	for i := range s.Answers {
		if s.Answers[i].QuestionID == a.QuestionID {
			s.Answers[i].Response = a.Response
			s.Answers[i].Timestamp = a.Timestamp
			return
		}
	}
	s.Answers = append(s.Answers, a)
}

type Question struct {
	ID            string           `json:"id"`
	Text          string           `json:"text"`
	Order         int              `json:"order"`
	Category      QuestionCategory `json:"category"`
	Impact        QuestionImpact   `json:"impact"`
	Explanation   string           `json:"explanation,omitempty"`
	Options       []string         `json:"options"`
	DefaultOption int              `json:"defaultOption"`
}

type Answer struct {
	ID         string      `json:"id"`
	QuestionID string      `json:"questionId"`
	Response   AnswerValue `json:"response"`
	Timestamp  time.Time   `json:"timestamp"`
}
