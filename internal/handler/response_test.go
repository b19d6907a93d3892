package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/swiftride/backend/internal/repository"
	"github.com/swiftride/backend/internal/usecase"
	"github.com/swiftride/backend/internal/validation"
	"go.uber.org/zap"
)

func TestRespondSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	respondSuccess(rec, http.StatusCreated, map[string]string{"k": "v"}, "done")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "done", body["message"])
	assert.NotNil(t, body["data"])
}

func TestRespondUsecaseErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{repository.ErrDuplicateEmail, http.StatusBadRequest},
		{repository.ErrDuplicatePhone, http.StatusBadRequest},
		{repository.ErrDuplicateNationalID, http.StatusBadRequest},
		{usecase.ErrProfileExists, http.StatusBadRequest},
		{usecase.ErrInvalidCredentials, http.StatusBadRequest},
		{usecase.ErrNotEligible, http.StatusBadRequest},
		{validation.FieldErrors{{Field: "email", Message: "bad"}}, http.StatusBadRequest},
		{usecase.ErrForbiddenProfile, http.StatusForbidden},
		{repository.ErrDriverProfileNotFound, http.StatusNotFound},
		{errors.New("database connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		respondUsecaseError(rec, zap.NewNop(), tc.err)
		assert.Equal(t, tc.status, rec.Code, "error %v", tc.err)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, false, body["success"])
		assert.NotEmpty(t, body["message"])
	}
}

func TestInternalErrorDoesNotLeakDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	respondUsecaseError(rec, zap.NewNop(), errors.New("mongo: topology closed at 10.0.0.3"))

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Internal server error", body["message"])
}
