package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/swiftride/backend/internal/repository"
	"github.com/swiftride/backend/internal/usecase"
	"github.com/swiftride/backend/internal/validation"
	"go.uber.org/zap"
)

// All success responses share {success:true, data, message}; all failures
// share {success:false, message}.

type successEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondSuccess(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data, Message: message})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{Success: false, Message: message})
}

// respondUsecaseError maps domain failures onto the HTTP taxonomy:
// validation and business-rule failures 400, forbidden 403, missing profile
// 404, everything unexpected a generic 500.
func respondUsecaseError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var fieldErrs validation.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		respondError(w, http.StatusBadRequest, fieldErrs.Error())
	case errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, repository.ErrDuplicatePhone),
		errors.Is(err, repository.ErrDuplicateNationalID),
		errors.Is(err, repository.ErrDuplicateLicenseNumber),
		errors.Is(err, repository.ErrDuplicateRCNumber),
		errors.Is(err, repository.ErrDriverProfileExists),
		errors.Is(err, usecase.ErrProfileExists),
		errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrAccountInactive),
		errors.Is(err, usecase.ErrNotEligible):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrForbiddenProfile):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, repository.ErrDriverProfileNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		logger.Error("Unexpected error handling request", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
