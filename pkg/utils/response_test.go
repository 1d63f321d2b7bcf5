package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "gearguard/pkg/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccessResponseWithCount(t *testing.T) {
	ctx, rec := newTestContext()

	require.NoError(t, SuccessResponse(ctx, []string{"a", "b"}, "ok", http.StatusOK, 2))

	body := decode(t, rec)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["message"])
	assert.Equal(t, float64(2), body["count"])
	assert.Len(t, body["data"], 2)
}

func TestSuccessResponseOmitsCount(t *testing.T) {
	ctx, rec := newTestContext()

	require.NoError(t, SuccessResponse(ctx, map[string]int{"x": 1}, "", http.StatusCreated))

	body := decode(t, rec)
	assert.Equal(t, http.StatusCreated, rec.Code)
	_, hasCount := body["count"]
	assert.False(t, hasCount)
	_, hasMessage := body["message"]
	assert.False(t, hasMessage)
}

func TestErrorResponseMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"not found", apperrors.NewNotFoundError("Request not found"), http.StatusNotFound, "Request not found"},
		{"conflict", apperrors.NewConflictError("Email already registered"), http.StatusBadRequest, "Email already registered"},
		{"missing header", apperrors.ErrEmptyAuthHeader, http.StatusUnauthorized, "No token provided"},
		{"expired", fmt.Errorf("validate: %w", apperrors.ErrTokenExpired), http.StatusUnauthorized, "Invalid or expired token"},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{"locked", apperrors.ErrAccountLocked, http.StatusTooManyRequests, apperrors.ErrAccountLocked.Error()},
		{"input", apperrors.NewInvalidInputError("Invalid %s", "status"), http.StatusBadRequest, "Invalid status"},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, "Internal server error"},
		{"internal http", apperrors.NewHttpError(http.StatusInternalServerError, "db down", errors.New("boom"), nil), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, rec := newTestContext()

			require.NoError(t, ErrorResponse(ctx, tc.err, zap.NewNop()))

			body := decode(t, rec)
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.message, body["message"])
		})
	}
}
