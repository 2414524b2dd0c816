package util

import (
	"regexp"
	"strings"
)

var invalidGroupChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// SanitizeGroupName converts a controller location name into a valid Ansible
// group name: only letters, digits and underscores, not starting with a digit.
func SanitizeGroupName(s string) string {
	s = strings.TrimSpace(s)
	s = invalidGroupChars.ReplaceAllString(s, "_")
	if s == "" {
		return "ungrouped_location"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}
