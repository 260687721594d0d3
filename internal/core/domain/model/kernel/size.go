package kernel

import (
	"fmt"

	"mealdelivery/internal/pkg/errs"
)

// Size is the portion size a dish is ordered and priced in.
type Size int

const (
	// UnknownSize is the zero value and is never valid.
	UnknownSize Size = iota
	Small
	Medium
	Big
)

func getSizeStrings() map[Size]string {
	return map[Size]string{
		Small:  "small",
		Medium: "medium",
		Big:    "big",
	}
}

// ParseSize converts "small", "medium" or "big".
func ParseSize(s string) (Size, error) {
	for size, str := range getSizeStrings() {
		if str == s {
			return size, nil
		}
	}
	return UnknownSize, errs.NewValueIsInvalidErrorWithCause(
		"size", fmt.Errorf("%q is not one of small, medium, big", s))
}

func (s Size) Validate() error {
	if _, ok := getSizeStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("size", fmt.Errorf("%d is not a valid size", s))
	}
	return nil
}

func (s Size) String() string {
	if str, ok := getSizeStrings()[s]; ok {
		return str
	}
	return "unknown"
}
