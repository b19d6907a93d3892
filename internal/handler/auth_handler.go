package handler

import (
	"encoding/json"
	"net/http"

	"github.com/swiftride/backend/internal/usecase"
	"github.com/swiftride/backend/internal/validation"
	"go.uber.org/zap"
)

type AuthHandler struct {
	usecase *usecase.AuthUsecase
	logger  *zap.Logger
}

func NewAuthHandler(ucase *usecase.AuthUsecase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		usecase: ucase,
		logger:  logger,
	}
}

type authResponse struct {
	User  *usecase.UserView `json:"user"`
	Token string            `json:"token"`
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req validation.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondError(w, http.StatusBadRequest, errs.Error())
		return
	}

	user, token, err := h.usecase.Signup(r.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}
	respondSuccess(w, http.StatusCreated, authResponse{User: user, Token: token}, "User registered successfully")
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req validation.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondError(w, http.StatusBadRequest, errs.Error())
		return
	}

	user, token, err := h.usecase.Login(r.Context(), req.Identifier(), req.Password)
	if err != nil {
		respondUsecaseError(w, h.logger, err)
		return
	}
	respondSuccess(w, http.StatusOK, authResponse{User: user, Token: token}, "Login successful")
}
