package vdf

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
)

// EncodeOption configures encoding.
type EncodeOption func(*encoder)

// WithEscape controls whether backslashes and double quotes in keys and
// values are escaped on output. Without it, they are written verbatim and
// may not decode back to the same text.
func WithEscape(enable bool) EncodeOption {
	return func(e *encoder) {
		e.escape = enable
	}
}

type encoder struct {
	pretty bool
	escape bool
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Encode returns the KeyValue text of tree.
// When pretty is set, each nesting level is indented with one tab.
func Encode(tree *Map, pretty bool, opts ...EncodeOption) (string, error) {
	var sb strings.Builder

	err := tree.Format(&sb, pretty, opts...)
	if err != nil {
		return "", err
	}

	return sb.String(), nil
}

// Format writes the KeyValue text of m to w.
// Nothing is written if m contains a node that is neither a string nor a
// mapping.
func (m *Map) Format(w io.Writer, pretty bool, opts ...EncodeOption) error {
	if m == nil {
		return ErrInvalidTreeShape.With(slog.String("issue", "nil tree"))
	}

	e := encoder{pretty: pretty}
	for _, opt := range opts {
		opt(&e)
	}

	var buf bytes.Buffer

	err := e.encodeMap(&buf, m, 0)
	if err != nil {
		return err
	}

	_, err = buf.WriteTo(w)

	return err
}

func (e *encoder) encodeMap(buf *bytes.Buffer, m *Map, depth int) error {
	indent := ""
	if e.pretty {
		indent = strings.Repeat("\t", depth)
	}

	for key, val := range m.All() {
		switch {
		case val.IsString():
			buf.WriteString(indent)
			e.writeQuoted(buf, key)
			buf.WriteByte(' ')
			e.writeQuoted(buf, val.Str)
			buf.WriteByte('\n')

		case val.IsMap() && val.Map != nil:
			buf.WriteString(indent)
			e.writeQuoted(buf, key)
			buf.WriteByte('\n')
			buf.WriteString(indent)
			buf.WriteString("{\n")

			err := e.encodeMap(buf, val.Map, depth+1)
			if err != nil {
				return err
			}

			buf.WriteString(indent)
			buf.WriteString("}\n")

		default:
			kind := "nil"
			if val != nil {
				kind = val.Kind.String()
			}

			return ErrInvalidTreeShape.
				With(slog.String("key", key)).
				With(slog.String("kind", kind)).
				With(slog.Int("depth", depth))
		}
	}

	return nil
}

func (e *encoder) writeQuoted(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')

	if e.escape {
		s = escaper.Replace(s)
	}

	buf.WriteString(s)
	buf.WriteByte('"')
}
