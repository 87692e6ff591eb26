package params

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrBind reports arguments that do not match a statement's placeholders.
var ErrBind = errors.New("bind parameters")

// Bind orders args for the compiled statement. args may be positional
// values, sql.NamedArg values, or a single map[string]any of named values.
// Names may carry the leading colon. Named and positional arguments cannot
// be mixed.
func (c Compiled) Bind(args []any) ([]any, error) {
	positional, named := split(args)

	if !c.Named() {
		if len(named) > 0 {
			return nil, fmt.Errorf("%w: statement has no named placeholders", ErrBind)
		}
		return positional, nil
	}

	if len(positional) > 0 {
		return nil, fmt.Errorf("%w: cannot mix named and positional parameters", ErrBind)
	}
	if c.Positional > 0 {
		return nil, fmt.Errorf("%w: statement mixes ? and :name placeholders", ErrBind)
	}

	ordered := make([]any, len(c.Names))
	for i, name := range c.Names {
		v, ok := named[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing value for parameter: %s", ErrBind, name)
		}
		ordered[i] = v
	}
	return ordered, nil
}

func split(args []any) ([]any, map[string]any) {
	if len(args) == 1 {
		if m, ok := args[0].(map[string]any); ok {
			named := make(map[string]any, len(m))
			for k, v := range m {
				named[strings.TrimPrefix(k, ":")] = v
			}
			return nil, named
		}
	}

	var (
		positional []any
		named      map[string]any
	)
	for _, a := range args {
		if na, ok := a.(sql.NamedArg); ok {
			if named == nil {
				named = make(map[string]any)
			}
			named[strings.TrimPrefix(na.Name, ":")] = na.Value
			continue
		}
		positional = append(positional, a)
	}
	return positional, named
}
