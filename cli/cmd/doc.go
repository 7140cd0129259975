// Package cmd implements the vdf subcommands.
//
// Each command reads one KeyValue document, from a file or from stdin when
// the source is "-", and writes its result to the kong context's stdout.
// Decoder options shared by all commands, such as #base resolution, are
// carried in the command context; see [WithDecodeOptions].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the name of
	// the default configuration namespace parsed from the configuration file.
	ConfigIdentifier = "config"
)
