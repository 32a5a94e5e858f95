package placeholder

import (
	"fmt"
	"regexp"
)

// DefaultPattern matches a bracketed template token: an opening bracket, one
// or more non-bracket characters, a closing bracket. Nested or unmatched
// brackets never match and are treated as literal text.
const DefaultPattern = `\[[^\[\]]+\]`

// CompilePattern compiles a placeholder pattern. An empty expression selects
// DefaultPattern. The grammar is configuration, not code: alternate token
// syntaxes are a pattern change only.
func CompilePattern(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		expr = DefaultPattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile placeholder pattern %q: %w", expr, err)
	}
	return re, nil
}
