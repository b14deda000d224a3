package provider

import (
	"github.com/promptforge/promptforge/internal/entity"
	"go.uber.org/zap"
)

// Registry holds every adapter whose credentials were present at startup.
// Availability means "configured and instantiated"; no network calls happen
// here.
type Registry struct {
	adapters  map[string]Adapter
	order     []string
	defaultID string
	logger    *zap.Logger
}

func NewRegistry(defaultID string, logger *zap.Logger, adapters ...Adapter) *Registry {
	r := &Registry{
		adapters:  make(map[string]Adapter, len(adapters)),
		defaultID: defaultID,
		logger:    logger,
	}

	for _, a := range adapters {
		r.Register(a)
	}

	return r
}

func (r *Registry) Register(a Adapter) {
	if _, exists := r.adapters[a.ID()]; !exists {
		r.order = append(r.order, a.ID())
	}
	r.adapters[a.ID()] = a

	r.logger.Info("provider registered",
		zap.String("provider", a.ID()),
		zap.Strings("models", a.SupportedModels()),
	)
}

func (r *Registry) Get(id string) (Adapter, bool) {
	a, ok := r.adapters[id]
	return a, ok
}

// Default returns the configured default provider, or any registered one
// when the configured default is absent, or nothing when the registry is
// empty.
func (r *Registry) Default() (Adapter, bool) {
	if a, ok := r.adapters[r.defaultID]; ok {
		return a, true
	}
	if len(r.order) > 0 {
		return r.adapters[r.order[0]], true
	}
	return nil, false
}

// Available lists descriptors for every registered adapter in registration
// order.
func (r *Registry) Available() []entity.ProviderDescriptor {
	descriptors := make([]entity.ProviderDescriptor, 0, len(r.order))
	for _, id := range r.order {
		descriptors = append(descriptors, Describe(r.adapters[id]))
	}
	return descriptors
}

func Describe(a Adapter) entity.ProviderDescriptor {
	return entity.ProviderDescriptor{
		ID:              a.ID(),
		DisplayName:     a.DisplayName(),
		SupportedModels: a.SupportedModels(),
		DefaultModel:    a.DefaultModel(),
		IsAvailable:     true,
	}
}
