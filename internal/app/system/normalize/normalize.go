// Package normalize provides canonical forms for user-supplied identity
// fields. Every comparison of emails anywhere in the app goes through
// Email, so case or whitespace differences can never split one identity
// into two.
package normalize

import "strings"

// Email lowercases and trims an email address. Empty or all-whitespace
// input normalizes to "".
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}
