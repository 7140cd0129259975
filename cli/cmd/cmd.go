package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/alecthomas/kong"

	"github.com/ardnew/vdf/vdf"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type decodeOptionsKey struct{}

// WithDecodeOptions returns a new context.Context carrying decoder options
// applied by every command that decodes a document.
func WithDecodeOptions(ctx context.Context, opts ...vdf.Option) context.Context {
	return context.WithValue(ctx, decodeOptionsKey{}, slices.Clone(opts))
}

func decodeOptionsFrom(ctx context.Context) []vdf.Option {
	opts, _ := ctx.Value(decodeOptionsKey{}).([]vdf.Option)

	return opts
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// stdout returns the writer for command output.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// readSource returns the content of the named file, or of stdin if source
// is [stdinSource].
func readSource(source string) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if source == stdinSource {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(source)
	}

	if err != nil {
		return nil, ErrReadSource.
			With(slog.String("source", source)).
			Wrap(err)
	}

	return data, nil
}

// decodeSource decodes the KeyValue document named by source using the
// decoder options stored in ctx.
func decodeSource(ctx context.Context, source string) (*vdf.Map, error) {
	dec := vdf.NewDecoder(decodeOptionsFrom(ctx)...)

	if source == stdinSource {
		return dec.DecodeReader(ctx, os.Stdin)
	}

	return dec.DecodeFile(ctx, source)
}
