package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/vdf/vdf"
)

// maxSuggestions limits the number of similar keys reported for a
// missing key.
const maxSuggestions = 3

// Get prints the value stored at a key path.
type Get struct {
	Format string `default:"vdf" enum:"vdf,json,yaml" help:"Output format for mappings (${enum})." short:"F"`
	Indent int    `default:"2"                        help:"Indent width for JSON and YAML output" short:"i"`

	Source string   `arg:""                  help:"Source input file or '-' for default stdin." name:"source"`
	Path   []string `arg:"" optional:""      help:"Keys leading to the value."                  name:"key"`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	tree, err := decodeSource(ctx, g.Source)
	if err != nil {
		return err
	}

	node, err := lookup(tree, g.Path)
	if err != nil {
		return err
	}

	w := stdout(ctx)

	if node.IsString() {
		_, err = fmt.Fprintln(w, node.Str)
	} else {
		switch g.Format {
		case "json":
			err = node.Map.FormatJSON(ctx, w, g.Indent)
		case "yaml":
			err = node.Map.FormatYAML(ctx, w, g.Indent)
		default:
			err = node.Map.Format(w, true)
		}
	}

	if err != nil {
		return ErrWriteOutput.
			With(slog.String("format", g.Format)).
			Wrap(err)
	}

	return nil
}

// lookup follows path from the root of tree. A missing key reports the
// keys of its enclosing mapping that most resemble it.
func lookup(tree *vdf.Map, path []string) (*vdf.Node, error) {
	cur := vdf.Block(tree)

	for i, key := range path {
		if !cur.IsMap() {
			return nil, vdf.ErrKeyNotFound.
				With(slog.String("path", strings.Join(path[:i+1], "/"))).
				With(slog.String("issue", "parent is a string"))
		}

		next, ok := cur.Map.Lookup(key)
		if !ok {
			return nil, vdf.ErrKeyNotFound.
				With(slog.String("path", strings.Join(path[:i+1], "/"))).
				With(slog.Any("similar", suggest(key, cur.Map.Keys())))
		}

		cur = next
	}

	return cur, nil
}

// suggest returns up to maxSuggestions candidates that fuzzy match key,
// best match first.
func suggest(key string, candidates []string) []string {
	matches := fuzzy.Find(key, candidates)

	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, m.Str)
	}

	return out
}
