package placeholder

import (
	"regexp"
	"strings"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// Humanize turns a raw placeholder key into a display label: outer brackets
// stripped, underscores and hyphens replaced with spaces, whitespace
// collapsed. "[Company_Name]" becomes "Company Name".
func Humanize(key string) string {
	inner := strings.TrimSpace(key)
	if strings.HasPrefix(inner, "[") && strings.HasSuffix(inner, "]") && len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}
	inner = strings.ReplaceAll(inner, "_", " ")
	inner = strings.ReplaceAll(inner, "-", " ")
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(inner, " "))
}

// NormalizeValue prepares a user-supplied answer value. Values typed with
// surrounding brackets (users often paste the placeholder back) have the
// brackets stripped.
func NormalizeValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]") && len(v) >= 2 {
		v = strings.TrimSpace(v[1 : len(v)-1])
	}
	return v
}

// Filled reports whether a value counts as an answer. Whitespace-only values
// do not.
func Filled(v string) bool {
	return strings.TrimSpace(v) != ""
}
