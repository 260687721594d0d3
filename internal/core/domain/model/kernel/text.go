package kernel

import (
	"unicode/utf8"

	"mealdelivery/internal/pkg/errs"
)

// ValidateText checks that value has between minLen and maxLen characters
// (inclusive), counting runes rather than bytes.
func ValidateText(paramName, value string, minLen, maxLen int) error {
	n := utf8.RuneCountInString(value)
	if n < minLen || n > maxLen {
		return errs.NewValueIsOutOfRangeError(paramName+" length", n, minLen, maxLen)
	}
	return nil
}
