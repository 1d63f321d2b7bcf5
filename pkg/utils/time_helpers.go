package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate принимает дату из JSON в любом из форматов, которые шлёт фронт.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", raw)
}

// ParseOptionalDate - nil или пустая строка дают nil.
func ParseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := ParseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func IsValidDate(raw string) bool {
	_, err := ParseDate(raw)
	return err == nil
}

// MergeDatePtr - слияние даты из patch-DTO: null = без изменений, пустая строка снимает дату.
func MergeDatePtr(patch null.String, current *time.Time) (*time.Time, error) {
	if !patch.Valid {
		return current, nil
	}
	raw := patch.String
	return ParseOptionalDate(&raw)
}
