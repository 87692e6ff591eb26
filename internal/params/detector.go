package params

import (
	"regexp"
	"strings"
)

var returningClause = regexp.MustCompile(`(?i)\bRETURNING\b`)

// ReturnsRows detects if the SQL is a SELECT-type statement (returns data).
func ReturnsRows(sql string) bool {
	stripped := strings.TrimSpace(removeComments(sql))
	upper := strings.ToUpper(stripped)
	keywords := []string{"SELECT", "WITH", "SHOW", "DESCRIBE", "DESC", "EXPLAIN", "PRAGMA", "VALUES"}

	for _, kw := range keywords {
		if upper == kw || hasKeywordPrefix(upper, kw) {
			return true
		}
	}
	return returningClause.MatchString(blankLiterals(stripped))
}

// blankLiterals drops the contents of quoted literals and identifiers.
func blankLiterals(sql string) string {
	var b strings.Builder
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		if ch == '\'' || ch == '"' || ch == '`' {
			i = skipQuoted(sql, i, true) - 1
			b.WriteString("''")
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}

func hasKeywordPrefix(s, kw string) bool {
	if !strings.HasPrefix(s, kw) || len(s) == len(kw) {
		return false
	}
	switch s[len(kw)] {
	case ' ', '\t', '\n', '\r', '(':
		return true
	}
	return false
}
