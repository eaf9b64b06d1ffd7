// Package otp generates the numeric one-time codes sent during email
// verification.
package otp

import (
	"crypto/rand"
	"fmt"
)

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

// Generate returns a random 6-digit numeric code (100000-999999).
// Panics if the system's cryptographic random number generator fails.
func Generate() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand.Read failed: " + err.Error())
	}
	n := int(b[0])<<24 | int(b[1])<<16 | int(b[2])<<8 | int(b[3])
	if n < 0 {
		n = -n
	}
	code := (n % 900000) + 100000
	return fmt.Sprintf("%06d", code)
}
