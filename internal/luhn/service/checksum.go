package service

import (
	"github.com/allisson/luhnify/internal/luhn/domain"
)

// IsValid reports whether digits passes the Luhn checksum. Empty input and
// input containing anything but ASCII digits is reported as invalid.
func IsValid(digits string) bool {
	if len(digits) == 0 {
		return false
	}

	sum := 0
	doubled := false

	// Walk right to left; the rightmost digit is never doubled
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}

		digit := int(c - '0')
		if doubled {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		doubled = !doubled
	}

	return sum%10 == 0
}

// CheckDigit calculates the digit that makes payload followed by it Luhn valid.
// The payload must not include the check digit position.
func CheckDigit(payload string) (byte, error) {
	if len(payload) == 0 {
		return 0, domain.ErrInvalidNumber
	}

	sum := 0
	length := len(payload)

	// The check digit will sit at position 0 from the right, so the last
	// payload digit is the first doubled one
	for i := 0; i < length; i++ {
		c := payload[length-1-i]
		if c < '0' || c > '9' {
			return 0, domain.ErrInvalidNumber
		}

		digit := int(c - '0')
		if i%2 == 0 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
	}

	//nolint:gosec // bounded [0,9]
	return byte('0' + (10-(sum%10))%10), nil
}
