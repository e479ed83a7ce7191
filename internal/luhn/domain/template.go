package domain

import (
	"strings"
)

// Template is a pattern of literal digits and wildcard placeholders.
// A wildcard is 'x', 'X' or '?'.
type Template struct {
	raw       string
	wildcards []int
}

// ParseTemplate trims s and checks that every character is a digit or a wildcard.
func ParseTemplate(s string) (Template, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Template{}, ErrEmptyTemplate
	}

	var wildcards []int
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case IsWildcard(c):
			wildcards = append(wildcards, i)
		case c >= '0' && c <= '9':
		default:
			return Template{}, ErrInvalidTemplate
		}
	}

	return Template{raw: s, wildcards: wildcards}, nil
}

// IsWildcard reports whether c is a placeholder character.
func IsWildcard(c byte) bool {
	return c == 'x' || c == 'X' || c == '?'
}

// String returns the trimmed template text.
func (t Template) String() string {
	return t.raw
}

// Len returns the number of positions in the template.
func (t Template) Len() int {
	return len(t.raw)
}

// Wildcards returns the indexes of the placeholder positions.
func (t Template) Wildcards() []int {
	return t.wildcards
}

// HasWildcards reports whether any position still needs resolving.
func (t Template) HasWildcards() bool {
	return len(t.wildcards) > 0
}

// Matches reports whether candidate has the template's length and agrees with
// every literal digit.
func (t Template) Matches(candidate string) bool {
	if len(candidate) != len(t.raw) {
		return false
	}
	for i := 0; i < len(t.raw); i++ {
		c := t.raw[i]
		if IsWildcard(c) {
			if candidate[i] < '0' || candidate[i] > '9' {
				return false
			}
			continue
		}
		if candidate[i] != c {
			return false
		}
	}
	return true
}
