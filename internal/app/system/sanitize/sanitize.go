// Package sanitize strips markup from user-authored text before it is
// stored. Snippet code is exempt (code is code); comment text and project
// descriptions are rendered in other users' clients and go through Text.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
