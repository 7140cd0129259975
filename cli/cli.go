package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/vdf/cli/cmd"
	"github.com/ardnew/vdf/pkg"
)

// CLI is the top-level command-line interface for vdf.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`
	Base  baseConfig  `embed:"" group:"base"  prefix:"base-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Init   cmd.Init   `cmd:"" help:"Initialize configuration file"`
	Fmt    cmd.Fmt    `cmd:"" help:"Reformat a KeyValue document"`
	Encode cmd.Encode `cmd:"" help:"Convert YAML or JSON to KeyValue text"`
	Get    cmd.Get    `cmd:"" help:"Print the value at a key path"`
	Query  cmd.Query  `cmd:"" help:"Evaluate an expression against a document"`
}

// Run executes the vdf CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(configName)

	vars := kong.Vars{
		"version":            pkg.Version,
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars()).
		CloneWith(cli.Base.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Configure logging before kong reports any parse errors.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group(), cli.Base.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx, configName), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithDecodeOptions(ctx, cli.Base.options(ctx)...)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
