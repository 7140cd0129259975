package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/vdf/vdf"
)

// Query evaluates an expression with the document's top-level keys in scope.
type Query struct {
	Indent int `default:"2" help:"Indent width for JSON results" short:"i"`

	Source string `arg:"" help:"Source input file or '-' for default stdin." name:"source"`
	Expr   string `arg:"" help:"Expression to evaluate, e.g. 'AppState.name'." name:"expr"`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	tree, err := decodeSource(ctx, q.Source)
	if err != nil {
		return err
	}

	result, err := vdf.Query(ctx, tree, q.Expr)
	if err != nil {
		return err
	}

	return q.print(ctx, result)
}

func (q *Query) print(ctx context.Context, result any) error {
	w := stdout(ctx)

	switch v := result.(type) {
	case nil:
		_, err := fmt.Fprintln(w)

		return err

	case string, bool, int, int64, float64:
		_, err := fmt.Fprintln(w, v)

		return err

	default:
		data, err := json.MarshalIndent(v, "", strings.Repeat(" ", q.Indent))
		if err != nil {
			return ErrInvalidQuery.
				With(slog.String("expr", q.Expr)).
				Wrap(err)
		}

		_, err = fmt.Fprintln(w, string(data))

		return err
	}
}
