package provider

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/promptforge/promptforge/internal/entity"
	"github.com/promptforge/promptforge/internal/pkg/logger"
	"github.com/promptforge/promptforge/internal/pkg/response"
	"github.com/promptforge/promptforge/internal/pkg/validator"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   ProviderUsecase
	validator *validator.Validator
}

func NewHandler(usecase ProviderUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// ListProviders handles GET /api/providers - descriptors of registered adapters
func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.usecase.Providers())
}

// DefaultProvider handles GET /api/providers/default - 404 when none registered
func (h *Handler) DefaultProvider(w http.ResponseWriter, r *http.Request) {
	descriptor, ok := h.usecase.DefaultProvider()
	if !ok {
		response.Error(w, http.StatusNotFound, "no providers configured")
		return
	}

	response.Success(w, descriptor)
}

// ValidateKey handles POST /api/providers/{id}/validate-key - boolean key probe
func (h *Handler) ValidateKey(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("provider", providerID),
		zap.String("action", "ValidateKey"),
	)

	var req entity.ValidateKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateKey(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	valid, err := h.usecase.ValidateProviderKey(ctx, providerID, req.APIKey)
	if err != nil {
		if errors.Is(err, entity.ErrProviderUnavailable) {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		ctxzap.Error(ctx, "key validation error", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(w, entity.ValidateKeyResponse{Valid: valid})
}
