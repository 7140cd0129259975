// Package vdf decodes and encodes Valve's KeyValue text format, commonly
// known as VDF.
//
// A KeyValue document is a nested, ordered tree of string keys. Each key
// holds either a string or a brace-delimited block of further keys:
//
//	#base "defaults.vdf"
//	"AppState"
//	{
//		"appid"   "440"
//		"name"    "Team Fortress 2"
//		"UserConfig"
//		{
//			"language" "english"
//		}
//	}
//
// # Grammar
//
// Decoding is line oriented. Each trimmed line is one of:
//
//   - empty, or a comment starting with '/'
//   - a "#base <path>" directive, recognized only before the first '{'
//   - '{', opening the block announced by the previous key-only line
//   - '}', closing the innermost open block
//   - a key followed by an optional value
//
// Keys and values are double-quoted strings or bare tokens of ASCII letters,
// digits, '-' and '_'. Inside quotes, \" and \\ are unescaped when the
// string is stored; any other backslash is kept as written. A quoted
// value that is not closed on its line continues onto the following lines,
// keeping the line breaks.
//
// A key without a value opens a block. Repeating a block key at the same
// level merges both blocks into one mapping. Repeating a key with a string
// value replaces the earlier value.
//
// # Base Files
//
// With [WithBaseFiles], each #base file is decoded and its root object
// supplies defaults for the first top-level object of the document: keys
// missing from the document are added, and keys the document defines are
// kept as written. Nested #base directives are followed only with
// [WithNestedBaseFiles], bounded by [WithMaxBaseDepth] and a cycle check.
//
// # Errors
//
// Decoding stops at the first error. Errors match the sentinel values
// [ErrInvalidInput], [ErrSyntax], [ErrUnbalancedBraces], and [ErrReadInput]
// with [errors.Is], and [LineOf] reports the 1-based line where one was
// detected. Encoding fails with [ErrInvalidTreeShape] if a node is neither
// a string nor a mapping.
package vdf
