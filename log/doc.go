// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stdout)
//	logger.Info("decode complete", slog.Int("keys", 3))
//	logger.Error("decode failed", slog.Any("error", err))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stdout,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level functions ([Info], [DebugContext], ...) write to a
// default logger that is adjusted with [Config]:
//
//	log.Config(log.WithOutput(os.Stderr), log.WithFormat(log.FormatText))
//
// # Context-Aware Logging
//
// Each level has a context-aware and a context-unaware variant.
// Context-unaware variants use [DefaultContextProvider], which returns
// [context.TODO] by default.
//
// # Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], and [LevelError].
// Messages below the configured level are discarded.
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText]. With [WithPretty], text output
// is colorized and unquoted for terminals.
package log
