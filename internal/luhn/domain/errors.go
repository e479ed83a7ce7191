package domain

import (
	"github.com/allisson/luhnify/internal/errors"
)

var (
	// ErrInvalidTemplate indicates the template contains characters other than
	// digits and placeholders.
	ErrInvalidTemplate = errors.Wrap(
		errors.ErrInvalidInput,
		"template must contain only digits and placeholders (x or ?)",
	)

	// ErrEmptyTemplate indicates the template is blank. It matches ErrInvalidTemplate.
	ErrEmptyTemplate error = &kindError{msg: "template is required", kind: ErrInvalidTemplate}

	// ErrGenerationExhausted indicates no Luhn-valid resolution was found within MaxAttempts.
	ErrGenerationExhausted = errors.Wrap(
		errors.ErrUnprocessable,
		"could not generate a valid number, please try again",
	)

	// ErrInvalidNumber indicates a number submitted for validation is empty or
	// contains non-digit characters.
	ErrInvalidNumber = errors.Wrap(errors.ErrInvalidInput, "number must contain only digits")
)

// kindError carries its own message while matching kind in errors.Is.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string {
	return e.msg + ": " + errors.ErrInvalidInput.Error()
}

func (e *kindError) Unwrap() error {
	return e.kind
}
