// Package validate implements the credential validation rules shared by
// the client form flows and the server-side sign-up check.
package validate

import (
	"regexp"
	"strings"
)

// emailPattern is a shape check, not full RFC validation: something
// without whitespace or '@', then '@', then the same, then '.', then the
// same again.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// passwordSymbols is the fixed punctuation set a password must draw
// at least one character from.
const passwordSymbols = "!@#$%^&*"

// Email reports whether s looks like a single-line email address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Password reports whether s satisfies the password policy: at least
// 8 characters, at least one ASCII uppercase letter, and at least one
// symbol from "!@#$%^&*".
func Password(s string) bool {
	if len([]rune(s)) < 8 {
		return false
	}
	if !strings.ContainsFunc(s, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		return false
	}
	return strings.ContainsAny(s, passwordSymbols)
}
