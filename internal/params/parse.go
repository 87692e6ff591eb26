package params

import "strings"

// Compiled is a statement whose :name placeholders were rewritten to ?.
type Compiled struct {
	SQL string
	// Names holds the placeholder name of every ? produced by the rewrite,
	// in order of appearance. A name used twice appears twice.
	Names []string
	// Positional counts the ? placeholders already present in the input.
	Positional int
}

// Named reports whether the statement uses :name placeholders.
func (c Compiled) Named() bool {
	return len(c.Names) > 0
}

// Compile rewrites :name placeholders to ? so the statement can be bound
// by any driver. Quoted literals, quoted identifiers and comments are copied
// verbatim, and :: casts are left alone. A backslash inside a literal
// escapes the next character, as in MySQL.
func Compile(sql string) Compiled {
	return CompileFor(sql, true)
}

// CompileFor is Compile for dialects where backslashEscapes may be off, as
// in sqlite, where 'C:\' is a complete literal.
func CompileFor(sql string, backslashEscapes bool) Compiled {
	var (
		b strings.Builder
		c Compiled
	)
	b.Grow(len(sql))

	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch {
		case ch == '\'' || ch == '"' || ch == '`':
			end := skipQuoted(sql, i, backslashEscapes)
			b.WriteString(sql[i:end])
			i = end - 1
		case ch == '-' && i+1 < len(sql) && sql[i+1] == '-':
			end := strings.IndexByte(sql[i:], '\n')
			if end == -1 {
				end = len(sql)
			} else {
				end += i
			}
			b.WriteString(sql[i:end])
			i = end - 1
		case ch == '/' && i+1 < len(sql) && sql[i+1] == '*':
			end := strings.Index(sql[i+2:], "*/")
			if end == -1 {
				end = len(sql)
			} else {
				end += i + 4
			}
			b.WriteString(sql[i:end])
			i = end - 1
		case ch == '?':
			c.Positional++
			b.WriteByte(ch)
		case ch == ':' && i+1 < len(sql) && sql[i+1] == ':':
			b.WriteString("::")
			i++
		case ch == ':' && i+1 < len(sql) && isNameStart(sql[i+1]):
			j := i + 1
			for j < len(sql) && isNameChar(sql[j]) {
				j++
			}
			c.Names = append(c.Names, sql[i+1:j])
			b.WriteByte('?')
			i = j - 1
		default:
			b.WriteByte(ch)
		}
	}

	c.SQL = b.String()
	return c
}

// skipQuoted returns the index just past the literal opened at sql[start].
// A doubled quote character escapes itself, and so does a backslash when
// backslashEscapes is set.
func skipQuoted(sql string, start int, backslashEscapes bool) int {
	q := sql[start]
	for i := start + 1; i < len(sql); i++ {
		switch sql[i] {
		case '\\':
			if backslashEscapes && q != '`' {
				i++
			}
		case q:
			if i+1 < len(sql) && sql[i+1] == q {
				i++
				continue
			}
			return i + 1
		}
	}
	return len(sql)
}

func isNameStart(ch byte) bool {
	return ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || ch >= '0' && ch <= '9'
}

// removeComments strips -- and /* */ comments outside quoted literals.
func removeComments(sql string) string {
	var b strings.Builder
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		switch {
		case ch == '\'' || ch == '"' || ch == '`':
			end := skipQuoted(sql, i, true)
			b.WriteString(sql[i:end])
			i = end - 1
		case ch == '-' && i+1 < len(sql) && sql[i+1] == '-':
			end := strings.IndexByte(sql[i:], '\n')
			if end == -1 {
				return b.String()
			}
			b.WriteByte('\n')
			i += end
		case ch == '/' && i+1 < len(sql) && sql[i+1] == '*':
			end := strings.Index(sql[i+2:], "*/")
			if end == -1 {
				return b.String()
			}
			b.WriteByte(' ')
			i += end + 3
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
