package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	cache "github.com/patrickmn/go-cache"
	"github.com/promptforge/promptforge/internal/entity"
	"go.uber.org/zap"
)

// SessionRepository is pure keyed storage with expiry; it holds no business
// logic. The orchestration usecase owns all session mutation.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.RefinementSession) error
	Get(ctx context.Context, id string) (*entity.RefinementSession, error)
	Update(ctx context.Context, session *entity.RefinementSession) error
	Delete(ctx context.Context, id string) error
}

// SessionCache is the in-memory TTL store for refinement sessions. go-cache
// treats expired entries as absent on read and its janitor is the periodic
// sweep bounding memory in a long-running process. Writes to the same id
// race with last-write-wins semantics.
type SessionCache struct {
	cache  *cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewSessionCache(ttl, sweepInterval time.Duration, logger *zap.Logger) *SessionCache {
	return &SessionCache{
		cache:  cache.New(ttl, sweepInterval),
		ttl:    ttl,
		logger: logger,
	}
}

// TTL returns the configured session lifetime.
func (r *SessionCache) TTL() time.Duration {
	return r.ttl
}

func (r *SessionCache) Create(ctx context.Context, session *entity.RefinementSession) error {
	if session.ID == "" {
		return fmt.Errorf("%w: session id", entity.ErrMissingField)
	}

	r.cache.Set(session.ID, session, r.ttl)

	ctxzap.Debug(ctx, "session stored",
		zap.String("session_id", session.ID),
		zap.Time("expires_at", session.ExpiresAt),
	)

	return nil
}

// Get returns the session or ErrSessionNotFound for missing and expired
// entries. A session past its own ExpiresAt is evicted as a side effect of
// the read, even if the cache entry itself has not expired yet.
func (r *SessionCache) Get(ctx context.Context, id string) (*entity.RefinementSession, error) {
	value, ok := r.cache.Get(id)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	session, ok := value.(*entity.RefinementSession)
	if !ok {
		return nil, fmt.Errorf("unexpected cache entry type for session %q", id)
	}

	if session.Expired(time.Now()) {
		r.cache.Delete(id)
		ctxzap.Debug(ctx, "expired session evicted", zap.String("session_id", id))
		return nil, entity.ErrSessionNotFound
	}

	return session, nil
}

// Update overwrites the stored session, preserving its remaining lifetime.
func (r *SessionCache) Update(ctx context.Context, session *entity.RefinementSession) error {
	if _, err := r.Get(ctx, session.ID); err != nil {
		return err
	}

	remaining := time.Until(session.ExpiresAt)
	if remaining <= 0 {
		return entity.ErrSessionNotFound
	}

	r.cache.Set(session.ID, session, remaining)
	return nil
}

// Delete is idempotent; removing an absent session is not an error.
func (r *SessionCache) Delete(_ context.Context, id string) error {
	r.cache.Delete(id)
	return nil
}
