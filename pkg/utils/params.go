package utils

import (
	"fmt"
	"strconv"

	apperrors "gearguard/pkg/errors"

	"github.com/labstack/echo/v4"
)

// ParseIDParam читает числовой path-параметр. Ошибка уже готова для ErrorResponse.
func ParseIDParam(ctx echo.Context, name string) (uint64, error) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError(fmt.Sprintf("Invalid %s", name))
	}
	return id, nil
}

// ParseOptionalUint64 - пустая строка даёт nil.
func ParseOptionalUint64(raw string) (*uint64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
