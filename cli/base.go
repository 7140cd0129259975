package cli

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/vdf/log"
	"github.com/ardnew/vdf/vdf"
)

// baseConfig controls how #base directives are resolved by every command
// that decodes a document.
type baseConfig struct {
	Files  bool     `default:"false"                  help:"Load #base files referenced by the input."           negatable:""`
	Nested bool     `default:"false"                  help:"Follow #base directives found inside base files."    negatable:""`
	Depth  int      `default:"${baseDepth}"           help:"Maximum nesting depth of #base files."`
	Path   []string `help:"Directories searched for #base files (also ${basePathEnv})." placeholder:"DIR" sep:"${pathSep}" type:"path"`
}

func (*baseConfig) vars() kong.Vars {
	return kong.Vars{
		"baseDepth":   strconv.Itoa(vdf.DefaultMaxBaseDepth),
		"basePathEnv": basePathEnv,
		"pathSep":     string(os.PathListSeparator),
	}
}

func (*baseConfig) group() kong.Group {
	return kong.Group{Key: "base", Title: "Base file options"}
}

// options returns the decoder options selected by the flags and the
// environment.
func (f *baseConfig) options(ctx context.Context) []vdf.Option {
	dirs := searchPath(os.Getenv(basePathEnv), f.Path...)

	log.DebugContext(ctx, "base file options",
		slog.Bool("files", f.Files),
		slog.Bool("nested", f.Nested),
		slog.Int("depth", f.Depth),
		slog.Any("path", dirs),
	)

	return []vdf.Option{
		vdf.WithBaseFiles(f.Files),
		vdf.WithNestedBaseFiles(f.Nested),
		vdf.WithMaxBaseDepth(f.Depth),
		vdf.WithSearchPath(dirs...),
		vdf.WithLogger(log.Default()),
	}
}
