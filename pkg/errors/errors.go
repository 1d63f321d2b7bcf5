package errors

import (
	"errors"
	"fmt"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = errors.New("invalid token signing method")
	ErrInvalidToken         = errors.New("Invalid or expired token")
	ErrTokenExpired         = errors.New("token has expired")

	// Авторизация
	ErrEmptyAuthHeader    = errors.New("No token provided")
	ErrInvalidAuthHeader  = errors.New("Invalid token format")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrAccountLocked      = errors.New("Too many failed login attempts, try again later")

	// Контекст
	ErrUserIDNotFoundInContext = errors.New("user id not found in request context")

	// Общие
	ErrNotFound   = errors.New("record not found")
	ErrConflict   = errors.New("record already exists")
	ErrBadRequest = errors.New("bad request")
)

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
