package utils

import "github.com/aarondl/null/v8"

func SafeDeref[T any](ptr *T) T {
	if ptr == nil {
		var zero T
		return zero
	}
	return *ptr
}

func ToPtr[T any](v T) *T {
	return &v
}

// Coalesce возвращает patch, если он задан, иначе current.
func Coalesce[T any](patch *T, current T) T {
	if patch != nil {
		return *patch
	}
	return current
}

// Ниже - слияние null-полей из patch-DTO: невалидное значение означает "без изменений".

func MergeString(patch null.String, current string) string {
	if patch.Valid {
		return patch.String
	}
	return current
}

func MergeStringPtr(patch null.String, current *string) *string {
	if patch.Valid {
		v := patch.String
		return &v
	}
	return current
}

func MergeUint64Ptr(patch null.Uint64, current *uint64) *uint64 {
	if patch.Valid {
		v := patch.Uint64
		return &v
	}
	return current
}

func MergeFloat64Ptr(patch null.Float64, current *float64) *float64 {
	if patch.Valid {
		v := patch.Float64
		return &v
	}
	return current
}

func MergeBool(patch null.Bool, current bool) bool {
	if patch.Valid {
		return patch.Bool
	}
	return current
}
