package vdf

import (
	"bytes"
	"log/slog"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// byteOrderMark associates a leading byte sequence with the text encoding it
// announces.
type byteOrderMark struct {
	name   string
	prefix []byte
	enc    encoding.Encoding
}

// byteOrderMarks is ordered longest prefix first: the UTF-32LE mark begins
// with the UTF-16LE mark.
var byteOrderMarks = []byteOrderMark{
	{
		name:   "UTF-32BE",
		prefix: []byte{0x00, 0x00, 0xFE, 0xFF},
		enc:    utf32.UTF32(utf32.BigEndian, utf32.UseBOM),
	},
	{
		name:   "UTF-32LE",
		prefix: []byte{0xFF, 0xFE, 0x00, 0x00},
		enc:    utf32.UTF32(utf32.LittleEndian, utf32.UseBOM),
	},
	{
		name:   "UTF-16BE",
		prefix: []byte{0xFE, 0xFF},
		enc:    unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	},
	{
		name:   "UTF-16LE",
		prefix: []byte{0xFF, 0xFE},
		enc:    unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	},
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalize transcodes data to UTF-8 if it starts with a UTF-16 or UTF-32
// byte order mark, then strips any leftover marker bytes from the start.
// It returns the name of the detected source encoding ("UTF-8" if none).
func normalize(data []byte) (string, []byte, error) {
	name := "UTF-8"

	for _, bom := range byteOrderMarks {
		if !bytes.HasPrefix(data, bom.prefix) {
			continue
		}

		out, err := bom.enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", nil, ErrInvalidInput.Wrap(err).
				With(slog.String("encoding", bom.name))
		}

		name, data = bom.name, out

		break
	}

	data = stripMarks(data)

	if !utf8.Valid(data) {
		return "", nil, ErrInvalidInput.
			With(slog.String("encoding", name)).
			With(slog.String("issue", "not valid UTF-8 text"))
	}

	return name, data, nil
}

// stripMarks removes any run of UTF-8 byte order marks and stray 0xFE/0xFF
// bytes from the start of data. Neither byte can begin valid UTF-8.
func stripMarks(data []byte) []byte {
	for len(data) > 0 {
		switch {
		case bytes.HasPrefix(data, utf8BOM):
			data = data[len(utf8BOM):]

		case data[0] == 0xFE || data[0] == 0xFF:
			data = data[1:]

		default:
			return data
		}
	}

	return data
}
