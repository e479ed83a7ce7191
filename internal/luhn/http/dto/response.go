package dto

import (
	"github.com/allisson/luhnify/internal/luhn/domain"
)

// GenerateResponse represents a generated batch in API responses.
type GenerateResponse struct {
	Template  string   `json:"template"`
	Numbers   []string `json:"numbers"`
	Count     int      `json:"count"`
	Requested int      `json:"requested"`
}

// MapBatchToResponse converts a domain batch to an API response.
func MapBatchToResponse(batch *domain.Batch) GenerateResponse {
	return GenerateResponse{
		Template:  batch.Template,
		Numbers:   batch.Numbers,
		Count:     len(batch.Numbers),
		Requested: batch.Requested,
	}
}

// ValidateNumberResponse represents the result of a checksum validation.
type ValidateNumberResponse struct {
	Number     string `json:"number"`
	Valid      bool   `json:"valid"`
	CheckDigit string `json:"check_digit"`
}

// MapValidationToResponse converts a domain validation to an API response.
func MapValidationToResponse(v *domain.Validation) ValidateNumberResponse {
	return ValidateNumberResponse{
		Number:     v.Number,
		Valid:      v.Valid,
		CheckDigit: v.CheckDigit,
	}
}
