package vdf

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func sampleTree() *Map {
	return tree("AppState", tree(
		"appid", "440",
		"UserConfig", tree("language", "english"),
		"name", "Team Fortress 2",
	))
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		tree     *Map
		pretty   bool
		expected string
	}{
		{
			name:     "empty",
			tree:     NewMap(),
			expected: "",
		},
		{
			name:     "root scalar",
			tree:     tree("k", "v"),
			expected: "\"k\" \"v\"\n",
		},
		{
			name:   "pretty",
			tree:   sampleTree(),
			pretty: true,
			expected: `"AppState"
{
	"appid" "440"
	"UserConfig"
	{
		"language" "english"
	}
	"name" "Team Fortress 2"
}
`,
		},
		{
			name: "compact",
			tree: sampleTree(),
			expected: `"AppState"
{
"appid" "440"
"UserConfig"
{
"language" "english"
}
"name" "Team Fortress 2"
}
`,
		},
		{
			name:     "empty block",
			tree:     tree("a", NewMap()),
			pretty:   true,
			expected: "\"a\"\n{\n}\n",
		},
		{
			name:     "verbatim specials",
			tree:     tree("k", `a"b\c`),
			expected: "\"k\" \"a\"b\\c\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.tree, tt.pretty)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.expected {
				t.Errorf("expected:\n%s\ngot:\n%s", tt.expected, got)
			}
		})
	}
}

func TestEncode_WithEscape(t *testing.T) {
	got, err := Encode(tree(`q"k`, `a"b\c`), false, WithEscape(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `"q\"k" "a\"b\\c"` + "\n"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestEncode_InvalidShape(t *testing.T) {
	tests := []struct {
		name string
		tree *Map
	}{
		{"nil tree", nil},
		{"nil node", func() *Map {
			m := NewMap()
			m.Set("bad", nil)

			return m
		}()},
		{"zero node", tree("ok", "v", "nested", func() *Map {
			m := NewMap()
			m.Set("bad", &Node{})

			return m
		}())},
		{"map node without map", func() *Map {
			m := NewMap()
			m.Set("bad", &Node{Kind: KindMap})

			return m
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			err := tt.tree.Format(&buf, true)
			if !errors.Is(err, ErrInvalidTreeShape) {
				t.Errorf("expected ErrInvalidTreeShape, got %v", err)
			}

			if buf.Len() != 0 {
				t.Errorf("expected no output on error, got %q", buf.String())
			}
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tree *Map
		opts []EncodeOption
	}{
		{"sample", sampleTree(), nil},
		{"multi-line value", tree("a", tree("desc", "one\ntwo")), nil},
		{"backslash path", tree("a", tree("path", `C:\games\hl2`, `dir\x`, "y")), nil},
		{"escaped", tree("a", tree(`k"ey`, `C:\path\"quoted"`)), []EncodeOption{WithEscape(true)}},
	}

	for _, tt := range tests {
		for _, pretty := range []bool{true, false} {
			t.Run(tt.name, func(t *testing.T) {
				text, err := Encode(tt.tree, pretty, tt.opts...)
				if err != nil {
					t.Fatalf("encode: %v", err)
				}

				got, err := Decode(context.Background(), text)
				if err != nil {
					t.Fatalf("decode: %v\n%s", err, text)
				}

				if !got.Equal(tt.tree) {
					t.Errorf("round trip mismatch:\n%s\ngot %s", text, mustJSON(t, got))
				}
			})
		}
	}
}
