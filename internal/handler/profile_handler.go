package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swiftride/backend/internal/middleware"
	"github.com/swiftride/backend/internal/usecase"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	usecase *usecase.ProfileUsecase
	logger  *zap.Logger
}

func NewProfileHandler(ucase *usecase.ProfileUsecase, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		usecase: ucase,
		logger:  logger,
	}
}

// Welcome handles GET /api/profile/{userId}/welcome.
func (h *ProfileHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userID := chi.URLParam(r, "userId")
	data, message, err := h.usecase.Welcome(caller, userID)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}
	respondSuccess(w, http.StatusOK, data, message)
}
