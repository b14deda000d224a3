package session

import (
	"context"

	"github.com/promptforge/promptforge/internal/entity"
)

type RefinementUsecase interface {
	CreateSession(ctx context.Context, originalPrompt, providerID, model string) (*entity.RefinementSession, error)
	GetSession(ctx context.Context, sessionID string) (*entity.RefinementSession, error)
	GenerateQuestions(ctx context.Context, prompt, providerID, model string, maxQuestions int) ([]entity.Question, error)
	AnswerQuestion(ctx context.Context, sessionID, questionID string, response entity.AnswerValue) (*entity.Answer, error)
	RefinePrompt(ctx context.Context, sessionID string, answers []entity.AnswerInput, providerID, model string) (*entity.RefinementSession, error)
	CompleteSession(ctx context.Context, sessionID string) (*entity.RefinementSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
}
