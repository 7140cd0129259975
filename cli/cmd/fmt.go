package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/vdf/vdf"
)

// Fmt decodes a KeyValue document and writes it in the chosen format.
type Fmt struct {
	VDF  VDF  `cmd:"" default:"withargs" help:"Format as KeyValue text (default)."`
	JSON JSON `cmd:""                    help:"Format as JSON."`
	YAML YAML `cmd:""                    help:"Format as YAML."`
}

// VDF formats input as KeyValue text.
type VDF struct {
	Compact bool `help:"Write without indentation" short:"c"`
	Escape  bool `help:"Escape quotes and backslashes in keys and values" short:"e"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the vdf command.
func (f *VDF) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	tree, err := decodeSource(ctx, f.Source)
	if err != nil {
		return err
	}

	err = tree.Format(stdout(ctx), !f.Compact, vdf.WithEscape(f.Escape))
	if err != nil {
		return ErrWriteOutput.
			With(slog.String("format", "vdf")).
			Wrap(err)
	}

	return nil
}

// JSON formats input as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	tree, err := decodeSource(ctx, j.Source)
	if err != nil {
		return err
	}

	err = tree.FormatJSON(ctx, stdout(ctx), j.Indent)
	if err != nil {
		return ErrWriteOutput.
			With(slog.String("format", "json")).
			Wrap(err)
	}

	return nil
}

// YAML formats input as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	tree, err := decodeSource(ctx, y.Source)
	if err != nil {
		return err
	}

	err = tree.FormatYAML(ctx, stdout(ctx), y.Indent)
	if err != nil {
		return ErrWriteOutput.
			With(slog.String("format", "yaml")).
			Wrap(err)
	}

	return nil
}
