package handler

import (
	"encoding/json"
	"net/http"

	"github.com/swiftride/backend/internal/entity"
	"github.com/swiftride/backend/internal/middleware"
	"github.com/swiftride/backend/internal/usecase"
	"github.com/swiftride/backend/internal/validation"
	"go.uber.org/zap"
)

type DriverHandler struct {
	usecase *usecase.DriverUsecase
	logger  *zap.Logger
}

func NewDriverHandler(ucase *usecase.DriverUsecase, logger *zap.Logger) *DriverHandler {
	return &DriverHandler{
		usecase: ucase,
		logger:  logger,
	}
}

func (h *DriverHandler) caller(w http.ResponseWriter, r *http.Request) (*entity.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return user, true
}

// Register handles POST /api/driver/register.
func (h *DriverHandler) Register(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req validation.CreateDriverProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondError(w, http.StatusBadRequest, errs.Error())
		return
	}

	profile, err := h.usecase.CreateProfile(r.Context(), user, &req)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}
	respondSuccess(w, http.StatusCreated, profile, "Driver profile created successfully")
}

// Me handles GET /api/driver/me.
func (h *DriverHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	profile, err := h.usecase.GetProfile(r.Context(), user)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}
	respondSuccess(w, http.StatusOK, profile, "Driver profile retrieved successfully")
}

// Update handles PATCH /api/driver/me.
func (h *DriverHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req validation.UpdateDriverProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondError(w, http.StatusBadRequest, errs.Error())
		return
	}

	profile, err := h.usecase.UpdateProfile(r.Context(), user, &req)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}
	respondSuccess(w, http.StatusOK, profile, "Driver profile updated successfully")
}

// UpdateStatus handles PATCH /api/driver/me/status.
func (h *DriverHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req validation.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondError(w, http.StatusBadRequest, errs.Error())
		return
	}

	profile, err := h.usecase.UpdateStatus(r.Context(), user, *req.IsOnline)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}
	respondSuccess(w, http.StatusOK, profile, "Driver status updated successfully")
}

// Completion handles GET /api/driver/me/completion.
func (h *DriverHandler) Completion(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r)
	if !ok {
		return
	}

	breakdown, err := h.usecase.GetCompletion(r.Context(), user)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}
	respondSuccess(w, http.StatusOK, breakdown, "Profile completion retrieved successfully")
}
