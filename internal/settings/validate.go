package settings

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dshills/smartseek/internal/input/key"
)

// MaxSeekAmount is the largest accepted seek interval in seconds.
const MaxSeekAmount = 300

// User-facing messages for binding errors.
const (
	msgBindingInvalid   = "Key bindings cannot be empty or modifier-only."
	msgBindingDuplicate = "Back and forward keys must be different."
)

// ValidateSeekAmount converts value to a seek interval and checks its range.
// Strings are parsed as decimal numbers (surrounding whitespace allowed, an
// empty string is zero). The result is rounded to one decimal place and must
// still be positive, so an amount that rounds to zero is rejected.
func ValidateSeekAmount(value any) (float64, error) {
	n, ok := numeric(value)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) || Round1(n) <= 0 {
		return 0, &ValidationError{
			Field:   FieldSeekAmount,
			Message: fmt.Sprintf("Invalid seek amount: %s. Must be a positive number.", display(value)),
			Value:   value,
			Code:    ErrCodeNotNumeric,
		}
	}
	if n > MaxSeekAmount {
		return 0, &ValidationError{
			Field:   FieldSeekAmount,
			Message: fmt.Sprintf("Seek amount %s exceeds maximum of %d seconds.", formatNumber(n), MaxSeekAmount),
			Value:   value,
			Code:    ErrCodeOutOfRange,
		}
	}
	return Round1(n), nil
}

// ValidateBindings checks a back/forward pair. Both must be valid bindings
// and they must differ.
func ValidateBindings(back, forward string) error {
	if !key.IsValid(back) {
		return &ValidationError{Field: FieldBackKey, Message: msgBindingInvalid, Value: back, Code: ErrCodeModifierOnly}
	}
	if !key.IsValid(forward) {
		return &ValidationError{Field: FieldForwardKey, Message: msgBindingInvalid, Value: forward, Code: ErrCodeModifierOnly}
	}
	if back == forward {
		return &ValidationError{Field: FieldForwardKey, Message: msgBindingDuplicate, Value: forward, Code: ErrCodeDuplicateBinding}
	}
	return nil
}

// Validate checks a complete settings record.
func Validate(s Settings) error {
	if _, err := ValidateSeekAmount(s.SeekAmount); err != nil {
		return err
	}
	return ValidateBindings(s.BackKey, s.ForwardKey)
}

// Round1 rounds n to one decimal place.
func Round1(n float64) float64 {
	return math.Round(n*10) / 10
}

func numeric(value any) (float64, bool) {
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, true
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return toFloat(value)
}

func display(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return "undefined"
	}
	if n, ok := toFloat(value); ok {
		return formatNumber(n)
	}
	return fmt.Sprint(value)
}

func formatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
