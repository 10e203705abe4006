// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips markup from free text that is stored and
// later echoed into HTML email bodies (remarks, job descriptions).
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
