package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// isBlank treats nil and whitespace-only strings as "not provided"
func isBlank(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && strings.TrimSpace(s) == ""
}

// toNumber accepts JSON numbers and numeric strings, nothing else
func toNumber(value any) (float64, error) {
	switch v := value.(type) {
	case bool:
		return 0, fmt.Errorf("not a number: %v", v)
	case string:
		value = strings.TrimSpace(v)
	}

	f, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a number: %v", value)
	}
	return f, nil
}

// ParseOptionalPrice coerces value to a non-negative float. A nil or
// empty value yields (nil, nil).
func ParseOptionalPrice(value any) (*float64, error) {
	if isBlank(value) {
		return nil, nil
	}

	f, err := toNumber(value)
	if err != nil {
		return nil, err
	}
	if f < 0 {
		return nil, fmt.Errorf("must not be negative: %v", f)
	}
	return &f, nil
}

// ParseOptionalCalories coerces value to a non-negative integer. "250" and
// 250.0 are accepted, 250.5 is not.
func ParseOptionalCalories(value any) (*int, error) {
	if isBlank(value) {
		return nil, nil
	}

	f, err := toNumber(value)
	if err != nil {
		return nil, err
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("must be a whole number: %v", f)
	}
	if f < 0 {
		return nil, fmt.Errorf("must not be negative: %v", f)
	}
	if f > math.MaxInt32 {
		return nil, fmt.Errorf("out of range: %v", f)
	}

	n := int(f)
	return &n, nil
}
