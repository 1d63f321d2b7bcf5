package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "gearguard/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal server error"

type HTTPResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

// sentinel-ошибки, которые могут всплыть из сервисов без обёртки в HttpError.
var errorList = []struct {
	err  error
	code int
}{
	{apperrors.ErrEmptyAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidToken, http.StatusUnauthorized},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized},
	{apperrors.ErrInvalidSigningMethod, http.StatusUnauthorized},
	{apperrors.ErrUserIDNotFoundInContext, http.StatusUnauthorized},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
	{apperrors.ErrAccountLocked, http.StatusTooManyRequests},
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrConflict, http.StatusBadRequest},
	{apperrors.ErrBadRequest, http.StatusBadRequest},
}

// clientMessage переопределяет текст для ошибок токена: клиенту не важно, истёк он или подделан.
var clientMessage = map[error]string{
	apperrors.ErrTokenExpired:         apperrors.ErrInvalidToken.Error(),
	apperrors.ErrInvalidSigningMethod: apperrors.ErrInvalidToken.Error(),
	apperrors.ErrNotFound:             "Not found",
}

// SuccessResponse отдаёт {success: true, message, data, count}. count передаётся только для списков.
func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, count ...int) error {
	response := &HTTPResponse{Success: true, Message: message, Data: body}
	if len(count) > 0 {
		c := count[0]
		response.Count = &c
	}
	return ctx.JSON(code, response)
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Code >= http.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
			return c.JSON(httpErr.Code, &HTTPResponse{Success: false, Message: internalErrorMessage})
		}
		logger.Debug("HTTP Error", zap.Int("code", httpErr.Code), zap.String("message", httpErr.Message))
		return c.JSON(httpErr.Code, &HTTPResponse{Success: false, Message: httpErr.Message})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return c.JSON(http.StatusBadRequest, &HTTPResponse{Success: false, Message: ValidationMessage(validationErrors)})
	}

	var inputErr *apperrors.InvalidInputError
	if errors.As(err, &inputErr) {
		return c.JSON(http.StatusBadRequest, &HTTPResponse{Success: false, Message: inputErr.Message})
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg := http.StatusText(echoErr.Code)
		if s, ok := echoErr.Message.(string); ok {
			msg = s
		}
		return c.JSON(echoErr.Code, &HTTPResponse{Success: false, Message: msg})
	}

	for _, item := range errorList {
		if errors.Is(err, item.err) {
			msg, ok := clientMessage[item.err]
			if !ok {
				msg = item.err.Error()
			}
			return c.JSON(item.code, &HTTPResponse{Success: false, Message: msg})
		}
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, &HTTPResponse{Success: false, Message: internalErrorMessage})
}

// ValidationMessage склеивает ошибки валидатора в одну читаемую строку.
func ValidationMessage(validationErrors validator.ValidationErrors) string {
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", e.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
		case "request_status":
			msgs = append(msgs, "Invalid status")
		default:
			msgs = append(msgs, fmt.Sprintf("Invalid %s", e.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}
