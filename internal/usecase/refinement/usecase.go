package refinement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/promptforge/promptforge/internal/entity"
	"github.com/promptforge/promptforge/internal/provider"
	"go.uber.org/zap"
)

// Config holds the tunables the usecase needs from application config.
type Config struct {
	SessionTTL   time.Duration
	MaxQuestions int
}

// Usecase drives the refinement cycle: create session with generated
// questions, collect answers, refine the prompt and regenerate questions
// from the refined text. It exclusively owns session mutation.
type Usecase struct {
	sessions  SessionRepository
	providers ProviderRegistry
	cfg       Config
	logger    *zap.Logger
}

func NewUsecase(sessions SessionRepository, providers ProviderRegistry, cfg Config, logger *zap.Logger) *Usecase {
	return &Usecase{
		sessions:  sessions,
		providers: providers,
		cfg:       cfg,
		logger:    logger,
	}
}

// CreateSession builds a draft session, synchronously generates the initial
// question set and persists the session as refining. When the provider
// response cannot be parsed into questions the hardcoded fallback set is
// substituted; any other generation failure aborts without persisting.
func (uc *Usecase) CreateSession(ctx context.Context, originalPrompt, providerID, model string) (*entity.RefinementSession, error) {
	adapter, err := uc.resolveAdapter(providerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &entity.RefinementSession{
		ID:             uuid.New().String(),
		OriginalPrompt: originalPrompt,
		Status:         entity.SessionStatusDraft,
		Provider:       adapter.ID(),
		Model:          model,
		Answers:        []entity.Answer{},
		CreatedAt:      now,
		UpdatedAt:      now,
		ExpiresAt:      now.Add(uc.cfg.SessionTTL),
	}

	ctx = ctxWithSession(ctx, session.ID)

	questions, err := uc.generateOrFallback(ctx, adapter, originalPrompt, model)
	if err != nil {
		return nil, err
	}

	session.Questions = questions
	session.Status = entity.SessionStatusRefining
	session.UpdatedAt = time.Now()

	if err := uc.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	ctxzap.Info(ctx, "session created",
		zap.String("provider", adapter.ID()),
		zap.Int("questions", len(session.Questions)),
	)

	return session, nil
}

// GetSession returns the session; expired sessions read as nonexistent.
func (uc *Usecase) GetSession(ctx context.Context, sessionID string) (*entity.RefinementSession, error) {
	return uc.sessions.Get(ctx, sessionID)
}

// GenerateQuestions produces a question set without touching any session.
// Generation and parse failures propagate to the caller.
func (uc *Usecase) GenerateQuestions(ctx context.Context, prompt, providerID, model string, maxQuestions int) ([]entity.Question, error) {
	adapter, err := uc.resolveAdapter(providerID)
	if err != nil {
		return nil, err
	}

	if maxQuestions <= 0 || maxQuestions > uc.cfg.MaxQuestions {
		maxQuestions = uc.cfg.MaxQuestions
	}

	return adapter.GenerateQuestions(ctx, prompt, provider.GenerateOptions{
		Model:        model,
		MaxQuestions: maxQuestions,
		Temperature:  provider.DefaultGenerateTemperature,
	})
}

// AnswerQuestion upserts the answer for a question in the session's current
// question set: re-answering replaces, never duplicates.
func (uc *Usecase) AnswerQuestion(ctx context.Context, sessionID, questionID string, response entity.AnswerValue) (*entity.Answer, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if _, ok := session.QuestionByID(questionID); !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrQuestionNotFound, questionID)
	}

	session.UpsertAnswer(entity.Answer{
		ID:         uuid.New().String(),
		QuestionID: questionID,
		Response:   response,
		Timestamp:  time.Now(),
	})
	session.UpdatedAt = time.Now()

	if err := uc.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	answer, _ := session.AnswerFor(questionID)

	ctxzap.Info(ctxWithSession(ctx, sessionID), "answer recorded",
		zap.String("question_id", questionID),
	)

	return answer, nil
}

// RefinePrompt runs one refinement cycle: the supplied answers replace the
// session's answer set wholesale, the vendor refines the original prompt
// against the pre-refinement question set, and a fresh question set is
// generated from the refined prompt, replacing the old one. Vendor
// refinement failures propagate as RefinementError; the session is left
// untouched in that case.
func (uc *Usecase) RefinePrompt(ctx context.Context, sessionID string, inputs []entity.AnswerInput, providerID, model string) (*entity.RefinementSession, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	adapter, err := uc.resolveAdapter(providerID)
	if err != nil {
		return nil, err
	}

	ctx = ctxWithSession(ctx, sessionID)

	answers := buildAnswers(inputs)

	refined, err := adapter.RefinePrompt(ctx, session.OriginalPrompt, session.Questions, answers, provider.RefineOptions{
		Model:       model,
		Temperature: provider.DefaultRefineTemperature,
	})
	if err != nil {
		return nil, err
	}

	// Regenerate from the refined prompt. Prior answers become orphaned by
	// the wholesale question replacement; no migration is attempted.
	questions, err := uc.generateOrFallback(ctx, adapter, refined, model)
	if err != nil {
		return nil, err
	}

	session.RefinedPrompt = refined
	session.Questions = questions
	session.Answers = answers
	session.Provider = adapter.ID()
	session.Model = model
	session.Status = entity.SessionStatusRefining
	session.UpdatedAt = time.Now()

	if err := uc.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	ctxzap.Info(ctx, "refinement cycle completed",
		zap.String("provider", adapter.ID()),
		zap.Int("new_questions", len(questions)),
	)

	return session, nil
}

// CompleteSession marks the session completed after the user's final
// copy/export action.
func (uc *Usecase) CompleteSession(ctx context.Context, sessionID string) (*entity.RefinementSession, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Status = entity.SessionStatusCompleted
	session.UpdatedAt = time.Now()

	if err := uc.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	return session, nil
}

// DeleteSession removes the session; deleting an absent session is a no-op.
func (uc *Usecase) DeleteSession(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

// Providers lists descriptors of every registered adapter.
func (uc *Usecase) Providers() []entity.ProviderDescriptor {
	return uc.providers.Available()
}

// DefaultProvider returns the descriptor of the default adapter, if any
// adapter is registered at all.
func (uc *Usecase) DefaultProvider() (entity.ProviderDescriptor, bool) {
	adapter, ok := uc.providers.Default()
	if !ok {
		return entity.ProviderDescriptor{}, false
	}
	return provider.Describe(adapter), true
}

// ValidateProviderKey probes the vendor with the supplied key.
func (uc *Usecase) ValidateProviderKey(ctx context.Context, providerID, key string) (bool, error) {
	adapter, err := uc.resolveAdapter(providerID)
	if err != nil {
		return false, err
	}
	return adapter.ValidateAPIKey(ctx, key), nil
}

func (uc *Usecase) resolveAdapter(providerID string) (provider.Adapter, error) {
	adapter, ok := uc.providers.Get(providerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrProviderUnavailable, providerID)
	}
	return adapter, nil
}

// generateOrFallback asks the adapter for questions and substitutes the
// hardcoded fallback set when the response yields nothing parseable. That
// substitution is the one documented degraded mode; transport failures
// still propagate.
func (uc *Usecase) generateOrFallback(ctx context.Context, adapter provider.Adapter, prompt, model string) ([]entity.Question, error) {
	questions, err := adapter.GenerateQuestions(ctx, prompt, provider.GenerateOptions{
		Model:        model,
		MaxQuestions: uc.cfg.MaxQuestions,
		Temperature:  provider.DefaultGenerateTemperature,
	})

	var parseErr *entity.GenerationParseError
	if errors.As(err, &parseErr) {
		ctxzap.Warn(ctx, "question generation unparseable, using fallback set",
			zap.String("provider", parseErr.Provider),
			zap.String("model", parseErr.Model),
		)
		return provider.FallbackQuestions(), nil
	}
	if err != nil {
		return nil, err
	}

	return questions, nil
}
