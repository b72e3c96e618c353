package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CollapseSpaces trims a string and collapses any inner whitespace
// run (tabs, newlines, repeated spaces) into a single space. Table
// cells on the portal are littered with layout whitespace.
func CollapseSpaces(s string) string {
	s = strings.Trim(s, " \n\t")
	return whitespaceRegex.ReplaceAllString(s, " ")
}
