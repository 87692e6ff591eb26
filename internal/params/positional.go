package params

import (
	"database/sql"
	"strings"
)

// ParseArgs splits command line arguments into statement arguments. A
// name=value or :name=value argument becomes a named value, anything else
// a positional one. If any named value is present the result is a single
// map[string]any, as Bind expects.
func ParseArgs(args []string) []any {
	named := make(map[string]any)
	var positional []any

	for _, a := range args {
		name, value, ok := strings.Cut(a, "=")
		name = strings.TrimPrefix(name, ":")
		if ok && name != "" && isIdentifier(name) {
			named[name] = value
			continue
		}
		positional = append(positional, a)
	}

	if len(named) > 0 {
		if len(positional) > 0 {
			// Bind rejects the mix with a precise error.
			out := make([]any, 0, len(positional)+len(named))
			out = append(out, positional...)
			for k, v := range named {
				out = append(out, sql.Named(k, v))
			}
			return out
		}
		return []any{named}
	}
	return positional
}

func isIdentifier(s string) bool {
	if !isNameStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isNameChar(s[i]) {
			return false
		}
	}
	return true
}
