package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/promptforge/promptforge/internal/entity"
	"github.com/promptforge/promptforge/internal/pkg/response"
	pkghttp "github.com/promptforge/promptforge/pkg/http"
	"go.uber.org/zap"
)

// handleUsecaseError maps domain errors to HTTP statuses so a caller can
// tell "fix your input" (4xx) from "try a different provider / try later"
// (502).
func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusForError(err)

	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, "usecase error", zap.Error(err))
	} else {
		ctxzap.Warn(ctx, "usecase error", zap.Error(err))
	}

	response.Error(w, status, err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound),
		errors.Is(err, entity.ErrQuestionNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrProviderUnavailable),
		errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidParameter):
		return http.StatusBadRequest
	}

	var parseErr *entity.GenerationParseError
	var refineErr *entity.RefinementError
	var httpErr *pkghttp.HTTPError
	var netErr *pkghttp.NetworkError
	if errors.As(err, &parseErr) || errors.As(err, &refineErr) ||
		errors.As(err, &httpErr) || errors.As(err, &netErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
