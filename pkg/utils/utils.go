package utils

import (
	"log"
	"math"
	"strings"
)

// ToPointer returns a pointer to the given value.
func ToPointer[T any](value T) *T {
	return &value
}

// CleanFloat maps NaN and Inf to nil so they serialize as JSON null.
func CleanFloat(value float64) *float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}

// CleanFloatPtr applies CleanFloat to an already-optional value.
func CleanFloatPtr(value *float64) *float64 {
	if value == nil {
		return nil
	}
	return CleanFloat(*value)
}

// SafeText strips invalid UTF-8 and collapses runs of whitespace.
func SafeText(text string) string {
	text = strings.ToValidUTF8(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// GoSafe runs fn in a goroutine and recovers panics so a best-effort
// side task cannot take the process down.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("recovered from panic: %v", r)
			}
		}()
		fn()
	}()
}
