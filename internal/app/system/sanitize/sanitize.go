// Package sanitize strips HTML from client-supplied text before it is stored.
// It uses bluemonday so lead-form fields and admin content can never smuggle
// markup into the frontends that render them.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict     *bluemonday.Policy
	strictOnce sync.Once
)

func strictPolicy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

// Text removes all HTML elements and attributes from s and trims the result.
// Content fields in this system are plain text; anything tag-shaped is noise
// or an injection attempt.
func Text(s string) string {
	return strings.TrimSpace(strictPolicy().Sanitize(s))
}

// Slice applies Text to every element of ss in place and returns it.
func Slice(ss []string) []string {
	for i, s := range ss {
		ss[i] = Text(s)
	}
	return ss
}
