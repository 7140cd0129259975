package vdf

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// tree builds a mapping from alternating keys and values, where each value
// is a string or a *Map.
func tree(kv ...any) *Map {
	m := NewMap()

	for i := 0; i+1 < len(kv); i += 2 {
		key := kv[i].(string)

		switch v := kv[i+1].(type) {
		case string:
			m.SetString(key, v)
		case *Map:
			m.SetMap(key, v)
		}
	}

	return m
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *Map
	}{
		{
			name:     "empty",
			input:    "",
			expected: NewMap(),
		},
		{
			name:     "comments only",
			input:    "// header\n\n   // indented\n/ single slash\n",
			expected: NewMap(),
		},
		{
			name:     "root scalar",
			input:    `"key" "value"`,
			expected: tree("key", "value"),
		},
		{
			name: "single block",
			input: `"AppState"
{
	"appid"		"440"
	"name"		"Team Fortress 2"
}
`,
			expected: tree("AppState", tree(
				"appid", "440",
				"name", "Team Fortress 2",
			)),
		},
		{
			name: "nested blocks",
			input: `"a"
{
	"b"
	{
		"c"
		{
			"d" "deep"
		}
	}
	"e" "shallow"
}`,
			expected: tree("a", tree(
				"b", tree("c", tree("d", "deep")),
				"e", "shallow",
			)),
		},
		{
			name: "bare tokens",
			input: `settings
{
	max_players 24
	map-name cp_badlands
}`,
			expected: tree("settings", tree(
				"max_players", "24",
				"map-name", "cp_badlands",
			)),
		},
		{
			name: "trailing text ignored",
			input: `"a"
{
	"k" "v" // comment
	"n" "1" [$WIN32]
}`,
			expected: tree("a", tree("k", "v", "n", "1")),
		},
		{
			name: "repeated block keys merge",
			input: `"root"
{
	"a"
	{
		"x" "1"
	}
	"b" "between"
	"a"
	{
		"y" "2"
	}
}`,
			expected: tree("root", tree(
				"a", tree("x", "1", "y", "2"),
				"b", "between",
			)),
		},
		{
			name: "last scalar wins in place",
			input: `"root"
{
	"k" "1"
	"j" "x"
	"k" "2"
}`,
			expected: tree("root", tree("k", "2", "j", "x")),
		},
		{
			name: "block replaces scalar",
			input: `"a" "1"
"a"
{
	"b" "2"
}`,
			expected: tree("a", tree("b", "2")),
		},
		{
			name: "multi-line value",
			input: `"root"
{
	"desc" "line one
line two
	line three"
	"after" "x"
}`,
			expected: tree("root", tree(
				"desc", "line one\nline two\n\tline three",
				"after", "x",
			)),
		},
		{
			name:     "escaped quotes and backslashes",
			input:    `"k" "say \"hi\" \\ ok \n"`,
			expected: tree("k", `say "hi" \ ok \n`),
		},
		{
			name:     "unknown escapes kept",
			input:    `"path" "C:\games\hl2\bin"`,
			expected: tree("path", `C:\games\hl2\bin`),
		},
		{
			name:     "escaped quote in key",
			input:    `"a\"b" "c"`,
			expected: tree(`a"b`, "c"),
		},
		{
			name:     "empty value",
			input:    `"k" ""`,
			expected: tree("k", ""),
		},
		{
			name:     "crlf line endings",
			input:    "\"a\"\r\n{\r\n\t\"b\" \"c\"\r\n}\r\n",
			expected: tree("a", tree("b", "c")),
		},
		{
			name: "base directive ignored without base files",
			input: `#base "missing.vdf"
"a"
{
}`,
			expected: tree("a", NewMap()),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !got.Equal(tt.expected) {
				t.Errorf("got %s, want %s", mustJSON(t, got), mustJSON(t, tt.expected))
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
		line  int
	}{
		{
			name:  "extra closing brace",
			input: "\"a\"\n{\n}\n}\n",
			err:   ErrUnbalancedBraces,
			line:  4,
		},
		{
			name:  "blocks on a single line",
			input: `"A"{ "x" "1" } "A"{ "y" "2" }`,
			err:   ErrUnbalancedBraces,
			line:  0,
		},
		{
			name:  "closing brace at root",
			input: "}",
			err:   ErrUnbalancedBraces,
			line:  1,
		},
		{
			name:  "unclosed block",
			input: "\"a\"\n{\n\t\"b\" \"c\"\n",
			err:   ErrUnbalancedBraces,
			line:  0,
		},
		{
			name:  "missing open brace",
			input: "\"a\"\n\"b\" \"c\"\n",
			err:   ErrSyntax,
			line:  2,
		},
		{
			name:  "block key before closing brace",
			input: "\"a\"\n{\n\t\"b\"\n}\n",
			err:   ErrSyntax,
			line:  4,
		},
		{
			name:  "invalid key",
			input: "\"a\"\n{\n\t!!!\n}\n",
			err:   ErrSyntax,
			line:  3,
		},
		{
			name:  "empty quoted key",
			input: `"" "value"`,
			err:   ErrSyntax,
			line:  1,
		},
		{
			name:  "unclosed quoted key",
			input: `"key`,
			err:   ErrSyntax,
			line:  1,
		},
		{
			name:  "base directive after first block",
			input: "\"a\"\n{\n}\n#base \"x.vdf\"\n",
			err:   ErrSyntax,
			line:  4,
		},
		{
			name:  "unterminated multi-line value",
			input: "\"a\"\n{\n\t\"desc\" \"never closed\n\n}\n",
			err:   ErrSyntax,
			line:  3,
		},
		{
			name:  "invalid utf-8",
			input: "\"a\" \"\xc3\x28\"",
			err:   ErrInvalidInput,
			line:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(context.Background(), tt.input)
			if err == nil {
				t.Fatalf("expected error, got %s", mustJSON(t, got))
			}

			if !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}

			if line := LineOf(err); line != tt.line {
				t.Errorf("expected line %d, got %d (%v)", tt.line, line, err)
			}
		})
	}
}

func TestDecode_ErrorMessageIncludesLine(t *testing.T) {
	_, err := Decode(context.Background(), "\"a\"\n{\n}\n}\n")
	if err == nil {
		t.Fatal("expected error")
	}

	if !strings.Contains(err.Error(), "on line 4") {
		t.Errorf("expected line number in message, got %q", err.Error())
	}
}

func TestDecode_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Decode(ctx, `"a" "b"`)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDecodeReader(t *testing.T) {
	got, err := DecodeReader(
		context.Background(),
		strings.NewReader("\"a\"\n{\n\t\"b\" \"c\"\n}\n"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.Equal(tree("a", tree("b", "c"))) {
		t.Errorf("unexpected tree %s", mustJSON(t, got))
	}

	_, err = DecodeReader(context.Background(), nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for nil reader, got %v", err)
	}
}

func TestDecoder_Reusable(t *testing.T) {
	dec := NewDecoder()

	for range 3 {
		got, err := dec.Decode(context.Background(), "\"a\"\n{\n\t\"b\" \"c\"\n}\n")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got.Len() != 1 {
			t.Fatalf("expected 1 top-level key, got %d", got.Len())
		}
	}
}

func TestMatchLine(t *testing.T) {
	tests := []struct {
		input string
		want  pair
		ok    bool
	}{
		{`"k" "v"`, pair{key: "k", value: "v", hasValue: true}, true},
		{`k v`, pair{key: "k", value: "v", hasValue: true}, true},
		{`"k"`, pair{key: "k"}, true},
		{`"k" "open`, pair{key: "k", value: "open", hasValue: true, open: true}, true},
		{`"k" "trailing\`, pair{key: "k", value: "trailing", hasValue: true, open: true}, true},
		{`"k"	"tab"`, pair{key: "k", value: "tab", hasValue: true}, true},
		{`"k" {`, pair{key: "k"}, true},
		{`{`, pair{}, false},
		{`""`, pair{}, false},
		{`ü "v"`, pair{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := matchLine(tt.input)
			if ok != tt.ok {
				t.Fatalf("matchLine(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}

			if ok && got != tt.want {
				t.Errorf("matchLine(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBaseDirective(t *testing.T) {
	tests := []struct {
		input string
		path  string
		ok    bool
	}{
		{`#base "items.vdf"`, "items.vdf", true},
		{`#BASE items.vdf`, "items.vdf", true},
		{"#base\t\"sub/dir.vdf\"", "sub/dir.vdf", true},
		{`#base`, "", false},
		{`#base ""`, "", false},
		{`#include "x.vdf"`, "", false},
		{`"#base" "x"`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			path, ok := baseDirective(tt.input)
			if ok != tt.ok || path != tt.path {
				t.Errorf("baseDirective(%q) = (%q, %v), want (%q, %v)",
					tt.input, path, ok, tt.path, tt.ok)
			}
		})
	}
}

func mustJSON(t *testing.T, m *Map) string {
	t.Helper()

	data, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	return string(data)
}
