// Package sanitize holds the pure input rules applied to every
// user-supplied string before it is persisted.
package sanitize

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLen       = 100
	MaxDisplayNameLen = 50
	MaxBioLen         = 500
	MaxAvatarURLLen   = 500
)

var (
	scriptElemRe = regexp.MustCompile(`(?is)<\s*script[^>]*>.*?<\s*/\s*script\s*>`)
	scriptTagRe  = regexp.MustCompile(`(?i)<\s*/?\s*script[^>]*>`)
)

// Clean neutralizes markup in s. Whole script elements go first, contents
// included, then any unpaired script tags, then any remaining angle brackets
// are dropped. Callers apply Clean before length validation so limits bind on
// what is actually stored.
func Clean(s string) string {
	s = scriptElemRe.ReplaceAllString(s, "")
	s = scriptTagRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	return strings.TrimSpace(s)
}

// ValidTitle reports whether the trimmed title length is in [1,100].
func ValidTitle(s string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n >= 1 && n <= MaxTitleLen
}

// ValidDisplayName reports whether the trimmed name length is in [1,50].
func ValidDisplayName(s string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n >= 1 && n <= MaxDisplayNameLen
}

// ValidBio reports whether the bio fits in 500 characters. Empty is valid.
func ValidBio(s string) bool {
	return utf8.RuneCountInString(s) <= MaxBioLen
}

// ValidAvatarURL reports whether s is empty or a well-formed absolute URL of
// at most 500 characters.
func ValidAvatarURL(s string) bool {
	if s == "" {
		return true
	}
	if utf8.RuneCountInString(s) > MaxAvatarURLLen {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
