package domain

import (
	"strings"
)

// Batch is the result of one generation run: distinct numbers in discovery order.
type Batch struct {
	Template  string
	Numbers   []string
	Requested int
}

// Partial reports whether fewer numbers were found than requested.
func (b *Batch) Partial() bool {
	return len(b.Numbers) < b.Requested
}

// Text joins the numbers with newlines, the format used for downloads.
func (b *Batch) Text() string {
	return strings.Join(b.Numbers, "\n")
}

// Validation is the result of checking a number against the Luhn checksum.
type Validation struct {
	Number string
	Valid  bool
	// CheckDigit is the final digit that would make Number valid.
	CheckDigit string
}
