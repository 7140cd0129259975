package vdf

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"github.com/zeebo/xxh3"
)

// baseCache stores decoded base files keyed by the xxh3 hash of their
// content. Only files decoded without following their own #base directives
// are cached, since their result depends on content alone.
var baseCache sync.Map

// ClearCache removes all cached base files.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	baseCache.Clear()
}

// loadBaseFile reads and decodes the #base file referenced by ref.
func (d *Decoder) loadBaseFile(ctx context.Context, ref string) (*Map, error) {
	path := d.resolve(ref)

	if d.depth+1 > d.maxBaseDepth {
		return nil, ErrBaseDepthExceeded.
			With(slog.String("file", path)).
			With(slog.Int("max_depth", d.maxBaseDepth))
	}

	if slices.Contains(d.visited, filepath.Clean(path)) {
		return nil, ErrBaseCycle.
			With(slog.String("file", path)).
			With(slog.String("chain", strings.Join(d.visited, " -> ")))
	}

	data, err := afero.ReadFile(d.fs, path)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("file", path))
	}

	child := d.within(path)
	child.depth = d.depth + 1
	child.loadBase = d.nested

	if child.loadBase {
		return child.DecodeBytes(ctx, data)
	}

	sum := xxh3.Hash(data)

	if cached, ok := baseCache.Load(sum); ok {
		if tree, ok := cached.(*Map); ok {
			d.logger.TraceContext(ctx, "base file loaded",
				slog.String("path", path),
				slog.Bool("cache_hit", true),
			)

			return tree.Clone(), nil
		}
	}

	tree, err := child.DecodeBytes(ctx, data)
	if err != nil {
		return nil, err
	}

	baseCache.Store(sum, tree.Clone())

	d.logger.TraceContext(ctx, "base file loaded",
		slog.String("path", path),
		slog.Bool("cache_hit", false),
	)

	return tree, nil
}

// resolve returns the path of the #base file referenced by ref.
// A relative reference is tried against the directory of the including
// document, then each search path directory. If none exists, the first
// candidate is returned so the read reports a meaningful path.
func (d *Decoder) resolve(ref string) string {
	ref = filepath.FromSlash(strings.ReplaceAll(ref, `\`, "/"))

	if filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}

	candidates := make([]string, 0, len(d.searchPath)+1)
	candidates = append(candidates, filepath.Join(d.dir, ref))

	for _, dir := range d.searchPath {
		candidates = append(candidates, filepath.Join(dir, ref))
	}

	for _, path := range candidates {
		if ok, err := afero.Exists(d.fs, path); err == nil && ok {
			return path
		}
	}

	return candidates[0]
}
