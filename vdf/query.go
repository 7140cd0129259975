package vdf

import (
	"context"
	"log/slog"

	"github.com/expr-lang/expr"
)

// Query evaluates an expr-lang expression with the top-level keys of tree
// as its environment. Nested mappings are exposed as maps, so member access
// follows the tree structure:
//
//	AppState.name
//	AppState["UserConfig"].language ?? "english"
//
// Keys that are not valid identifiers are reachable through $env, e.g.
// $env["app-state"].
func Query(ctx context.Context, tree *Map, source string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrQuery.Wrap(err)
	}

	env := tree.ToNative()

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, ErrQuery.Wrap(err).
			With(slog.String("source", source))
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return nil, ErrQuery.Wrap(err).
			With(slog.String("source", source))
	}

	return result, nil
}
