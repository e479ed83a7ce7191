// Package validation provides custom validation rules for request DTOs.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/luhnify/internal/errors"
)

var digitsRegex = regexp.MustCompile(`^[0-9]+$`)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Digits validates that a string holds only ASCII decimal digits
var Digits = validation.NewStringRuleWithError(
	func(s string) bool {
		return digitsRegex.MatchString(s)
	},
	validation.NewError("validation_digits", "must contain only digits"),
)
