package vdf

import (
	"strings"
	"unicode"
)

// pair is the result of matching one logical line against the key/value
// grammar:
//
//	Line   → Key ([ \t]* Value)? <ignored>
//	Key    → Quoted | Bare
//	Value  → '"' Char* '"'? | Bare
//	Quoted → '"' Char+ '"'
//	Char   → '\' <any> | <not '\' or '"'>
//	Bare   → [A-Za-z0-9_-]+
type pair struct {
	key      string
	value    string
	hasValue bool // false for block keys
	open     bool // quoted value is missing its closing quote
}

// matchLine matches s against the key/value grammar.
// Text following the matched key and value is ignored.
func matchLine(s string) (pair, bool) {
	var p pair

	key, rest, ok := scanKey(s)
	if !ok {
		return p, false
	}

	p.key = key
	rest = strings.TrimLeft(rest, " \t")

	switch {
	case strings.HasPrefix(rest, `"`):
		raw, closed := scanQuoted(rest[1:])

		p.value = unescape(raw)
		p.hasValue = true
		p.open = !closed

	case bareLen(rest) > 0:
		p.value = rest[:bareLen(rest)]
		p.hasValue = true
	}

	return p, true
}

// scanKey scans a quoted or bare key from the start of s and returns the
// unescaped key with the unconsumed remainder of s.
func scanKey(s string) (key, rest string, ok bool) {
	if strings.HasPrefix(s, `"`) {
		raw, closed := scanQuoted(s[1:])
		if !closed || raw == "" {
			return "", s, false
		}

		return unescape(raw), s[len(raw)+2:], true
	}

	n := bareLen(s)
	if n == 0 {
		return "", s, false
	}

	return s[:n], s[n:], true
}

// scanQuoted scans quoted content following an opening quote.
// It returns the raw (still escaped) content and whether a closing quote
// terminated it.
func scanQuoted(s string) (raw string, closed bool) {
	i := 0

	for i < len(s) {
		switch s[i] {
		case '\\':
			if i+1 >= len(s) {
				return s[:i], false
			}

			i += 2

		case '"':
			return s[:i], true

		default:
			i++
		}
	}

	return s, false
}

// bareLen returns the length of the bare token at the start of s.
func bareLen(s string) int {
	for i, r := range s {
		if !isBare(r) {
			return i
		}
	}

	return len(s)
}

func isBare(r rune) bool {
	return r < unicode.MaxASCII &&
		(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_')
}

// unescape replaces the escape pairs \\ and \" with the character they
// escape. Any other backslash is kept, so Windows paths survive as written.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var sb strings.Builder

	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '"') {
			i++
		}

		sb.WriteByte(s[i])
	}

	return sb.String()
}

// baseDirective reports whether line is a "#base <path>" directive and
// returns its path argument with surrounding quotes removed.
func baseDirective(line string) (string, bool) {
	idx := strings.IndexFunc(line, unicode.IsSpace)
	if idx < 0 {
		return "", false
	}

	if !strings.EqualFold(line[:idx], "#base") {
		return "", false
	}

	path := strings.Trim(strings.TrimSpace(line[idx:]), `"`)
	if path == "" {
		return "", false
	}

	return path, true
}
