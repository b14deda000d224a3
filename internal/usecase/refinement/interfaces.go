package refinement

import (
	"context"

	"github.com/promptforge/promptforge/internal/entity"
	"github.com/promptforge/promptforge/internal/provider"
)

type ProviderRegistry interface {
	Get(id string) (provider.Adapter, bool)
	Default() (provider.Adapter, bool)
	Available() []entity.ProviderDescriptor
}

type SessionRepository interface {
	Create(ctx context.Context, session *entity.RefinementSession) error
	Get(ctx context.Context, id string) (*entity.RefinementSession, error)
	Update(ctx context.Context, session *entity.RefinementSession) error
	Delete(ctx context.Context, id string) error
}
