package vdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// ToNative converts m to a native Go map structure.
// Nested mappings become map[string]any and strings remain strings.
func (m *Map) ToNative() map[string]any {
	result := make(map[string]any, m.Len())

	for key, val := range m.All() {
		result[key] = val.ToNative()
	}

	return result
}

// ToNative converts n to its native Go type.
func (n *Node) ToNative() any {
	switch {
	case n.IsString():
		return n.Str

	case n.IsMap():
		return n.Map.ToNative()

	default:
		return nil
	}
}

// ToMapSlice converts m to an ordered YAML mapping.
func (m *Map) ToMapSlice() yaml.MapSlice {
	result := make(yaml.MapSlice, 0, m.Len())

	for key, val := range m.All() {
		var v any

		switch {
		case val.IsString():
			v = val.Str

		case val.IsMap():
			v = val.Map.ToMapSlice()
		}

		result = append(result, yaml.MapItem{Key: key, Value: v})
	}

	return result
}

// MarshalJSON implements json.Marshaler for Map, preserving key order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	err := m.writeJSON(&buf)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler for Node.
func (n *Node) MarshalJSON() ([]byte, error) {
	switch {
	case n.IsString():
		return json.Marshal(n.Str)

	case n.IsMap():
		return n.Map.MarshalJSON()

	default:
		return nil, ErrInvalidTreeShape.With(slog.String("issue", "invalid node"))
	}
}

func (m *Map) writeJSON(buf *bytes.Buffer) error {
	buf.WriteByte('{')

	i := 0
	for key, val := range m.All() {
		if i > 0 {
			buf.WriteByte(',')
		}

		i++

		k, err := json.Marshal(key)
		if err != nil {
			return err
		}

		buf.Write(k)
		buf.WriteByte(':')

		if val.IsMap() {
			err = val.Map.writeJSON(buf)
		} else {
			var v []byte

			v, err = val.MarshalJSON()
			buf.Write(v)
		}

		if err != nil {
			return WrapError(err).With(slog.String("key", key))
		}
	}

	buf.WriteByte('}')

	return nil
}

// FormatJSON writes m as JSON to the writer.
func (m *Map) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	data, err := m.MarshalJSON()
	if err != nil {
		return err
	}

	if indent > 0 {
		var out bytes.Buffer

		err = json.Indent(&out, data, "", strings.Repeat(" ", indent))
		if err != nil {
			return err
		}

		data = out.Bytes()
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes m as YAML to the writer.
func (m *Map) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, m.ToMapSlice(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// ParseNative decodes YAML or JSON data into a tree, preserving key order.
// See [FromNative] for the accepted shapes.
func ParseNative(ctx context.Context, data []byte) (*Map, error) {
	var v any

	err := yaml.UnmarshalContext(ctx, data, &v, yaml.UseOrderedMap())
	if err != nil {
		return nil, ErrInvalidInput.Wrap(err)
	}

	return FromNative(v)
}

// FromNative converts a native Go value to a tree.
//
// The value must be a mapping: map[string]any, map[any]any, or
// [yaml.MapSlice]. Nested values may be mappings, strings, booleans, or
// numbers (formatted as strings). Slices become mappings keyed by element
// index. Any other value fails with [ErrInvalidTreeShape].
func FromNative(v any) (*Map, error) {
	n, err := nodeFromNative(v, "")
	if err != nil {
		return nil, err
	}

	if !n.IsMap() {
		return nil, ErrInvalidTreeShape.
			With(slog.String("issue", "root is not a mapping")).
			With(slog.String("type", typeName(v)))
	}

	return n.Map, nil
}

func nodeFromNative(v any, path string) (*Node, error) {
	switch val := v.(type) {
	case *Map:
		return Block(val.Clone()), nil

	case string:
		return String(val), nil

	case bool:
		return String(strconv.FormatBool(val)), nil

	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return String(fmt.Sprint(val)), nil

	case float32:
		return String(strconv.FormatFloat(float64(val), 'f', -1, 32)), nil

	case float64:
		return String(strconv.FormatFloat(val, 'f', -1, 64)), nil

	case yaml.MapSlice:
		m := NewMap()

		for _, item := range val {
			key := fmt.Sprint(item.Key)

			child, err := nodeFromNative(item.Value, joinPath(path, key))
			if err != nil {
				return nil, err
			}

			m.Set(key, child)
		}

		return Block(m), nil

	case map[string]any:
		m := NewMap()

		for _, key := range sortedKeys(val) {
			child, err := nodeFromNative(val[key], joinPath(path, key))
			if err != nil {
				return nil, err
			}

			m.Set(key, child)
		}

		return Block(m), nil

	case map[any]any:
		conv := make(map[string]any, len(val))
		for k, item := range val {
			conv[fmt.Sprint(k)] = item
		}

		return nodeFromNative(conv, path)

	case []any:
		m := NewMap()

		for i, item := range val {
			key := strconv.Itoa(i)

			child, err := nodeFromNative(item, joinPath(path, key))
			if err != nil {
				return nil, err
			}

			m.Set(key, child)
		}

		return Block(m), nil

	default:
		return nil, ErrInvalidTreeShape.
			With(slog.String("path", path)).
			With(slog.String("type", typeName(v)))
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}

func typeName(value any) string {
	if value == nil {
		return "nil"
	}

	return reflect.TypeOf(value).String()
}
