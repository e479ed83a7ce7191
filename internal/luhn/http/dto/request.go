// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/luhnify/internal/validation"
)

// maxInputLength bounds templates and numbers accepted over HTTP.
const maxInputLength = 64

// GenerateRequest contains the parameters for generating a batch of numbers.
type GenerateRequest struct {
	Template string `json:"template"` // Digits plus x, X or ? placeholders
	// BatchCount is optional; out-of-range values are clamped into [1, 100].
	BatchCount *int `json:"batch_count,omitempty"`
}

// Validate checks if the generate request is valid. The character class of the
// template is checked by the generator so its message reaches the client as is.
func (r *GenerateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Template,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, maxInputLength),
		),
	)
}

// Count returns the requested batch size, defaulting to 1.
func (r *GenerateRequest) Count() int {
	if r.BatchCount == nil {
		return 1
	}
	return *r.BatchCount
}

// ValidateNumberRequest contains the number to check against the Luhn checksum.
type ValidateNumberRequest struct {
	Number string `json:"number"`
}

// Validate checks if the validate number request is valid.
func (r *ValidateNumberRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Number,
			validation.Required,
			customValidation.Digits,
			validation.Length(1, maxInputLength),
		),
	)
}
