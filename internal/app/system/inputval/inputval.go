// Package inputval validates request payload fields at the gateway boundary
// so the stores never see partially-shaped data.
package inputval

import (
	"net/mail"
	"strings"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// MaxNameLength bounds display names.
const MaxNameLength = 50

// IsValidEmail reports whether s is a plausible bare email address.
// Display-name forms ("Alice <a@b.co>") are rejected; single-label domains
// are accepted for dev/test environments.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" || domain == "" {
		return false
	}
	for _, part := range []string{local, domain} {
		if strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") || strings.Contains(part, "..") {
			return false
		}
	}
	return true
}

// IsValidPassword reports whether a plaintext password meets the minimum
// length policy.
func IsValidPassword(s string) bool {
	return len(s) >= MinPasswordLength
}

// IsValidName reports whether a display name is non-empty after trimming
// and within the length bound.
func IsValidName(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && len(s) <= MaxNameLength
}
