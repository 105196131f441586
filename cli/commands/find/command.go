// Package find provides the `declscan find` command, which lists the declarations below the given
// roots that match the filter queries.
package find

import (
	"github.com/gruntwork-io/declscan/options"
	"github.com/gruntwork-io/declscan/pkg/env"
	"github.com/urfave/cli/v2"
)

const (
	CommandName = "find"

	FilterFlagName  = "filter"
	ExcludeFlagName = "exclude"
	FormatFlagName  = "format"
	JSONFlagName    = "json"
	CountFlagName   = "count"
	HiddenFlagName  = "hidden"
	WorkersFlagName = "workers"
)

// NewFlags returns the command flags. Their values are copied onto the options in Before,
// after the config file and the environment, so flags win.
func NewFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    FilterFlagName,
			Aliases: []string{"f"},
			Usage:   "Filter query, e.g. 'kind=class | App\\Http\\*'. Repeat to union several queries.",
		},
		&cli.StringSliceFlag{
			Name:  ExcludeFlagName,
			Usage: "Glob of paths to skip, e.g. 'tests' or 'src/**/*Stub.php'. Repeatable.",
		},
		&cli.StringFlag{
			Name:        FormatFlagName,
			Usage:       "Output format. Valid values: text, json.",
			DefaultText: options.FormatText,
		},
		&cli.BoolFlag{
			Name:  JSONFlagName,
			Usage: "Output in JSON format (equivalent to --format=json).",
		},
		&cli.BoolFlag{
			Name:  CountFlagName,
			Usage: "Print only the number of matching declarations.",
		},
		&cli.BoolFlag{
			Name:  HiddenFlagName,
			Usage: "Include hidden directories, vendor and node_modules.",
		},
		&cli.IntFlag{
			Name:        WorkersFlagName,
			Usage:       "Number of files parsed concurrently.",
			DefaultText: "number of CPUs, between 4 and 8",
		},
	}
}

// NewCommand returns the find command.
func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "Find declarations matching filter queries.",
		ArgsUsage: "[roots...]",
		Description: "Scans the roots (default: the working directory) for PHP declarations and prints those " +
			"accepted by the filter queries. Settings are read from " + options.DefaultConfigFilename + ", then " +
			env.Prefix + "* environment variables, then flags.",
		Flags: NewFlags(),
		Before: func(ctx *cli.Context) error {
			applyFlags(ctx, opts)

			if err := opts.Validate(); err != nil {
				return cli.Exit(err, 1)
			}

			return nil
		},
		Action: func(ctx *cli.Context) error {
			return Run(ctx.Context, opts.Logger, opts)
		},
	}
}

func applyFlags(ctx *cli.Context, opts *options.Options) {
	if ctx.Args().Present() {
		opts.Roots = ctx.Args().Slice()
	}

	if ctx.IsSet(FilterFlagName) {
		opts.FilterQueries = ctx.StringSlice(FilterFlagName)
	}

	if ctx.IsSet(ExcludeFlagName) {
		opts.Excludes = ctx.StringSlice(ExcludeFlagName)
	}

	if ctx.IsSet(FormatFlagName) {
		opts.Format = ctx.String(FormatFlagName)
	}

	if ctx.Bool(JSONFlagName) {
		opts.Format = options.FormatJSON
	}

	if ctx.IsSet(CountFlagName) {
		opts.Count = ctx.Bool(CountFlagName)
	}

	if ctx.IsSet(HiddenFlagName) {
		opts.Hidden = ctx.Bool(HiddenFlagName)
	}

	if ctx.IsSet(WorkersFlagName) {
		opts.NumWorkers = ctx.Int(WorkersFlagName)
	}
}
