package params

import (
	"database/sql"
	"errors"
	"reflect"
	"testing"
)

func TestCompileForBackslash(t *testing.T) {
	sql := `SELECT 'C:\' , :x`

	got := CompileFor(sql, false)
	if got.SQL != `SELECT 'C:\' , ?` || len(got.Names) != 1 || got.Names[0] != "x" {
		t.Errorf("CompileFor(backslashEscapes=false) = %q %v, want :x rewritten", got.SQL, got.Names)
	}

	// With backslash escapes the literal is unterminated and swallows :x.
	got = CompileFor(sql, true)
	if got.SQL != sql || len(got.Names) != 0 {
		t.Errorf("CompileFor(backslashEscapes=true) = %q %v, want unchanged", got.SQL, got.Names)
	}

	got = CompileFor(`SELECT 'it\'s' , :x`, true)
	if len(got.Names) != 1 || got.Names[0] != "x" {
		t.Errorf("CompileFor(backslashEscapes=true) names = %v, want [x]", got.Names)
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		sql        string
		wantSQL    string
		wantNames  []string
		positional int
	}{
		{
			name:      "single named",
			sql:       "SELECT * FROM users WHERE id = :id",
			wantSQL:   "SELECT * FROM users WHERE id = ?",
			wantNames: []string{"id"},
		},
		{
			name:      "repeated name",
			sql:       "SELECT * FROM t WHERE a = :v OR b = :v",
			wantSQL:   "SELECT * FROM t WHERE a = ? OR b = ?",
			wantNames: []string{"v", "v"},
		},
		{
			name:      "colon inside literal",
			sql:       "SELECT * FROM t WHERE at = '10:30' AND id = :id",
			wantSQL:   "SELECT * FROM t WHERE at = '10:30' AND id = ?",
			wantNames: []string{"id"},
		},
		{
			name:      "escaped quote",
			sql:       "SELECT 'it''s :not' , :yes",
			wantSQL:   "SELECT 'it''s :not' , ?",
			wantNames: []string{"yes"},
		},
		{
			name:      "comments",
			sql:       "SELECT 1 -- :skip\n, :take /* :skip */",
			wantSQL:   "SELECT 1 -- :skip\n, ? /* :skip */",
			wantNames: []string{"take"},
		},
		{
			name:    "double colon cast",
			sql:     "SELECT '1'::int",
			wantSQL: "SELECT '1'::int",
		},
		{
			name:       "positional",
			sql:        "INSERT INTO t (a, b) VALUES (?, ?)",
			wantSQL:    "INSERT INTO t (a, b) VALUES (?, ?)",
			positional: 2,
		},
		{
			name:      "identifier quoting",
			sql:       "SELECT `a:b`, \":c\" FROM t WHERE x = :x_1",
			wantSQL:   "SELECT `a:b`, \":c\" FROM t WHERE x = ?",
			wantNames: []string{"x_1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compile(tt.sql)
			if got.SQL != tt.wantSQL {
				t.Errorf("Compile().SQL = %q, want %q", got.SQL, tt.wantSQL)
			}
			if !reflect.DeepEqual(got.Names, tt.wantNames) {
				t.Errorf("Compile().Names = %v, want %v", got.Names, tt.wantNames)
			}
			if got.Positional != tt.positional {
				t.Errorf("Compile().Positional = %d, want %d", got.Positional, tt.positional)
			}
		})
	}
}

func TestBind(t *testing.T) {
	named := Compile("SELECT * FROM t WHERE a = :a AND b = :b AND c = :a")
	positional := Compile("SELECT * FROM t WHERE a = ? AND b = ?")

	tests := []struct {
		name     string
		compiled Compiled
		args     []any
		want     []any
		wantErr  bool
	}{
		{
			name:     "map",
			compiled: named,
			args:     []any{map[string]any{"a": 1, ":b": "two"}},
			want:     []any{1, "two", 1},
		},
		{
			name:     "named args",
			compiled: named,
			args:     []any{sql.Named("b", 2), sql.Named("a", 1)},
			want:     []any{1, 2, 1},
		},
		{
			name:     "missing name",
			compiled: named,
			args:     []any{map[string]any{"a": 1}},
			wantErr:  true,
		},
		{
			name:     "mixed",
			compiled: named,
			args:     []any{1, sql.Named("b", 2)},
			wantErr:  true,
		},
		{
			name:     "positional passthrough",
			compiled: positional,
			args:     []any{1, 2},
			want:     []any{1, 2},
		},
		{
			name:     "named against positional statement",
			compiled: positional,
			args:     []any{map[string]any{"a": 1}},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.compiled.Bind(tt.args)
			if tt.wantErr {
				if !errors.Is(err, ErrBind) {
					t.Fatalf("Bind() error = %v, want ErrBind", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Bind() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Bind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReturnsRows(t *testing.T) {
	tests := []struct {
		sql  string
		want bool
	}{
		{"SELECT 1", true},
		{"  select * from t", true},
		{"-- leading comment\nSELECT 1", true},
		{"/* c */ WITH x AS (SELECT 1) SELECT * FROM x", true},
		{"PRAGMA table_info(t)", true},
		{"SHOW TABLES", true},
		{"SELECT(1)", true},
		{"INSERT INTO t VALUES (1)", false},
		{"INSERT INTO t (a) VALUES (1) RETURNING id", true},
		{"UPDATE t SET a = 'returning'", false},
		{"DELETE FROM t", false},
		{"SELECTED", false},
		{"CREATE TABLE t (id INTEGER)", false},
	}
	for _, tt := range tests {
		if got := ReturnsRows(tt.sql); got != tt.want {
			t.Errorf("ReturnsRows(%q) = %v, want %v", tt.sql, got, tt.want)
		}
	}
}

func TestParseArgs(t *testing.T) {
	got := ParseArgs([]string{"1", "two"})
	if !reflect.DeepEqual(got, []any{"1", "two"}) {
		t.Errorf("ParseArgs(positional) = %v", got)
	}

	got = ParseArgs([]string{"name=bob", ":age=42"})
	want := []any{map[string]any{"name": "bob", "age": "42"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseArgs(named) = %v, want %v", got, want)
	}

	if got := ParseArgs(nil); len(got) != 0 {
		t.Errorf("ParseArgs(nil) = %v, want empty", got)
	}
}
