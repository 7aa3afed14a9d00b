package utils

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// GenerateRequestID generates a unique request ID for tracking
func GenerateRequestID() string {
	return uuid.New().String()
}

// StringOrNil trims a string and returns nil when nothing is left. Empty
// strings are stored as NULL, never "".
func StringOrNil(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

// PtrStringOrNil applies StringOrNil through a pointer.
func PtrStringOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	return StringOrNil(*s)
}

// FiniteOrNil rejects NaN and infinities before a numeric value reaches the
// store.
func FiniteOrNil(f *float64) *float64 {
	if f == nil {
		return nil
	}
	if math.IsNaN(*f) || math.IsInf(*f, 0) {
		return nil
	}
	return f
}

// CleanStringSlice trims every element and drops empties, preserving order.
func CleanStringSlice(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Truncate shortens s to at most n bytes, appending an ellipsis when cut.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// GetStringOrDefault returns the value if not empty, otherwise returns the default
func GetStringOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
