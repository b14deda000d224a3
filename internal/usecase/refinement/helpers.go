package refinement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/promptforge/promptforge/internal/entity"
	"github.com/promptforge/promptforge/internal/pkg/logger"
	"go.uber.org/zap"
)

// buildAnswers materializes the submitted answer set, deduplicating on
// question id so the stored set keeps at most one answer per question
// (last one wins, matching the upsert rule).
func buildAnswers(inputs []entity.AnswerInput) []entity.Answer {
	now := time.Now()
	answers := make([]entity.Answer, 0, len(inputs))
	index := make(map[string]int, len(inputs))

	for _, in := range inputs {
		if in.QuestionID == "" {
			continue
		}
		if i, seen := index[in.QuestionID]; seen {
			answers[i].Response = in.Response
			answers[i].Timestamp = now
			continue
		}
		index[in.QuestionID] = len(answers)
		answers = append(answers, entity.Answer{
			ID:         uuid.New().String(),
			QuestionID: in.QuestionID,
			Response:   in.Response,
			Timestamp:  now,
		})
	}

	return answers
}

func ctxWithSession(ctx context.Context, sessionID string) context.Context {
	return logger.AddFields(ctx, zap.String("session_id", sessionID))
}
