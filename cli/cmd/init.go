package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/vdf/log"
	"github.com/ardnew/vdf/profile"
	"github.com/ardnew/vdf/vdf"
)

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config namespace undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	err = i.buildTree(ctx).Format(file, true, vdf.WithEscape(true))
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// buildTree constructs the configuration document from current flag values.
// All flags are stored in a single block named by [ConfigIdentifier].
func (i *Init) buildTree(ctx context.Context) *vdf.Map {
	ktx := kongContextFrom(ctx)

	conf := vdf.NewMap()

	prefixIgnore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val := flagNode(ktx, flag); val != nil {
			conf.Set(flag.Name, val)
		}
	}

	tree := vdf.NewMap()
	tree.SetMap(ConfigIdentifier, conf)

	return tree
}

// flagNode returns the tree node for a flag's value, or nil if unset.
// Lists become blocks keyed by element index.
func flagNode(ktx *kong.Context, flag *kong.Flag) *vdf.Node {
	val := ktx.FlagValue(flag)
	if val == nil {
		return nil
	}

	switch v := val.(type) {
	case bool:
		return vdf.String(strconv.FormatBool(v))

	case string:
		if v == "" {
			return nil
		}

		return vdf.String(v)

	case []string:
		return listNode(v)

	case []int:
		return listNode(v)

	case []int64:
		return listNode(v)

	case []float64:
		return listNode(v)

	case []bool:
		return listNode(v)

	default:
		s := fmt.Sprint(v)
		if s == "" {
			return nil
		}

		return vdf.String(s)
	}
}

func listNode[T any](list []T) *vdf.Node {
	if len(list) == 0 {
		return nil
	}

	m := vdf.NewMap()
	for i, item := range list {
		m.SetString(strconv.Itoa(i), fmt.Sprint(item))
	}

	return vdf.Block(m)
}
