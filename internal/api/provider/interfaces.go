package provider

import (
	"context"

	"github.com/promptforge/promptforge/internal/entity"
)

type ProviderUsecase interface {
	Providers() []entity.ProviderDescriptor
	DefaultProvider() (entity.ProviderDescriptor, bool)
	ValidateProviderKey(ctx context.Context, providerID, key string) (bool, error)
}
