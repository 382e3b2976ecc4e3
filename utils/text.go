package utils

import "strings"

// CollapseSpace trims s and collapses every internal run of whitespace,
// newlines and tabs included, into one space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
