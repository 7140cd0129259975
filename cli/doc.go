// Package cli contains the command line interface for vdf.
//
// # Usage
//
//	vdf fmt vdf items_game.txt
//	vdf fmt json --indent=4 appmanifest_440.acf
//	vdf get appmanifest_440.acf AppState name
//	vdf query appmanifest_440.acf 'AppState.StateFlags == "4"'
//	vdf encode overrides.yaml > overrides.vdf
//
// # Base Files
//
// #base directives are ignored unless --base-files is given. Relative
// paths resolve against the including file's directory, then each
// --base-path directory, then each directory listed in VDF_BASE_PATH.
//
//   - --base-files: Load #base files referenced by the input
//   - --base-nested: Follow #base directives inside base files
//   - --base-depth: Maximum nesting depth of #base files
//   - --base-path: Directories searched for #base files
//
// # Configuration
//
// Flag defaults are read from the "config" block of a KeyValue file in the
// user configuration directory (for example, ~/.config/vdf/config), and
// from config.json beside it. Run "vdf init" to write the current flag
// values to that file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (cpu, heap, allocs, ...)
//   - --pprof-dir: Set profile output directory
package cli
