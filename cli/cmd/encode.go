package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/vdf/log"
	"github.com/ardnew/vdf/vdf"
)

// Encode converts a YAML or JSON document to KeyValue text.
type Encode struct {
	Compact bool `help:"Write without indentation" short:"c"`
	Escape  bool `help:"Escape quotes and backslashes in keys and values" short:"e"`

	Source string `arg:"" default:"-" help:"YAML or JSON input file or '-' for default stdin." name:"source"`
}

// Run executes the encode command.
func (e *Encode) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	data, err := readSource(e.Source)
	if err != nil {
		return err
	}

	tree, err := vdf.ParseNative(ctx, data)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "encode",
		slog.String("source", e.Source),
		slog.Int("keys", tree.Len()),
	)

	err = tree.Format(stdout(ctx), !e.Compact, vdf.WithEscape(e.Escape))
	if err != nil {
		return ErrWriteOutput.
			With(slog.String("format", "vdf")).
			Wrap(err)
	}

	return nil
}
