package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/vdf/log"
	"github.com/ardnew/vdf/vdf"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag values from
// the block named name in a KeyValue configuration file:
//
//	"config"
//	{
//		"log_level"  "debug"
//		"log_pretty" "false"
//		"base_path"
//		{
//			"0" "/opt/game/shared"
//			"1" "/opt/game/common"
//		}
//	}
//
// Keys match flag names with either hyphens or underscores. String values
// are passed to kong as written; nested blocks become lists in key order.
// A file that cannot be decoded, or that has no such block, configures
// nothing. Command-line flags override config file values.
func resolve(ctx context.Context, name string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		tree, err := vdf.DecodeReader(ctx, r)
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration file",
				slog.Any("error", err),
			)

			return config{}, nil
		}

		node, ok := tree.Lookup(name)
		if !ok || !node.IsMap() {
			return config{}, nil
		}

		return flatten(node.Map), nil
	}
}

// config implements [kong.Resolver] over a decoded configuration block.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, key := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if value, ok := r[key]; ok {
			return value, nil
		}
	}

	return nil, nil
}

// flatten converts a configuration block to resolver values.
func flatten(m *vdf.Map) config {
	result := make(config, m.Len())

	for key, val := range m.All() {
		if val.IsMap() {
			list := make([]any, 0, val.Map.Len())
			for _, item := range val.Map.All() {
				if item.IsString() {
					list = append(list, item.Str)
				}
			}

			result[key] = list

			continue
		}

		result[key] = val.Str
	}

	return result
}
