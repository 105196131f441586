// Package cli assembles the declscan command-line application.
package cli

import (
	"os"
	"path/filepath"

	"github.com/gruntwork-io/declscan/cli/commands/find"
	"github.com/gruntwork-io/declscan/config"
	"github.com/gruntwork-io/declscan/internal/errors"
	"github.com/gruntwork-io/declscan/internal/telemetry"
	"github.com/gruntwork-io/declscan/options"
	"github.com/gruntwork-io/declscan/pkg/env"
	"github.com/gruntwork-io/declscan/pkg/log"
	"github.com/urfave/cli/v2"
)

const (
	AppName = "declscan"

	ConfigFlagName     = "config"
	WorkingDirFlagName = "working-dir"
	LogLevelFlagName   = "log-level"
	LogFormatFlagName  = "log-format"
	NoColorFlagName    = "no-color"
)

// NewGlobalFlags returns the flags shared by every command.
func NewGlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  ConfigFlagName,
			Usage: "Path to the config file. Defaults to " + options.DefaultConfigFilename + " in the working directory, if present.",
		},
		&cli.StringFlag{
			Name:  WorkingDirFlagName,
			Usage: "Directory relative roots and the config file are resolved against. Defaults to the current directory.",
		},
		&cli.StringFlag{
			Name:        LogLevelFlagName,
			Usage:       "Log level. Valid values: " + log.AllLevels.String() + ".",
			DefaultText: log.InfoLevel.String(),
		},
		&cli.StringFlag{
			Name:        LogFormatFlagName,
			Usage:       "Log format. Valid values: pretty, key-value, json.",
			DefaultText: log.PrettyFormatName,
		},
		&cli.BoolFlag{
			Name:  NoColorFlagName,
			Usage: "Disable colored output.",
		},
	}
}

// NewApp creates the declscan CLI app.
func NewApp(opts *options.Options, version string) *cli.App {
	var tlm *telemetry.Telemeter

	return &cli.App{
		Name:                      AppName,
		Usage:                     "Find PHP declarations matching filter queries.",
		UsageText:                 AppName + " <command> [options] [roots...]",
		Version:                   version,
		Writer:                    opts.Writer,
		ErrWriter:                 opts.ErrWriter,
		Flags:                     NewGlobalFlags(),
		Commands:                  []*cli.Command{find.NewCommand(opts)},
		DisableSliceFlagSeparator: true,
		Before: func(ctx *cli.Context) error {
			if err := InitialSetup(ctx, opts); err != nil {
				return err
			}

			var err error

			tlm, err = telemetry.NewTelemeter(ctx.Context, AppName, version, opts.ErrWriter, opts.Telemetry)
			if err != nil {
				return err
			}

			ctx.Context = telemetry.ContextWithTelemeter(log.ContextWithLogger(ctx.Context, opts.Logger), tlm)

			return nil
		},
		After: func(ctx *cli.Context) error {
			if tlm == nil {
				return nil
			}

			return tlm.Shutdown(ctx.Context)
		},
		// Errors are reported by the caller, never by os.Exit inside the app.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// InitialSetup resolves the working directory and layers the config file, the environment and
// the global flags onto opts, in that order, then configures the logger.
func InitialSetup(ctx *cli.Context, opts *options.Options) error {
	if ctx.IsSet(WorkingDirFlagName) {
		opts.WorkingDir = ctx.String(WorkingDirFlagName)
	}

	if opts.WorkingDir == "" {
		currentDir, err := os.Getwd()
		if err != nil {
			return errors.New(err)
		}

		opts.WorkingDir = currentDir
	}

	workingDir, err := filepath.Abs(opts.WorkingDir)
	if err != nil {
		return errors.New(err)
	}

	opts.WorkingDir = workingDir

	opts.ConfigPath = opts.Env.String(env.Key(ConfigFlagName), opts.ConfigPath)
	if ctx.IsSet(ConfigFlagName) {
		opts.ConfigPath = ctx.String(ConfigFlagName)
	}

	file, err := config.LoadOptional(opts.FS, opts.Logger, opts)
	if err != nil {
		return err
	}

	if file != nil {
		file.Apply(opts)
	}

	if err := opts.ApplyEnv(opts.Env); err != nil {
		return err
	}

	if ctx.IsSet(LogLevelFlagName) {
		level, err := log.ParseLevel(ctx.String(LogLevelFlagName))
		if err != nil {
			return err
		}

		opts.LogLevel = level
	}

	if ctx.IsSet(LogFormatFlagName) {
		opts.LogFormat = ctx.String(LogFormatFlagName)
	}

	if ctx.IsSet(NoColorFlagName) {
		opts.NoColor = ctx.Bool(NoColorFlagName)
	}

	formatter, err := log.ParseFormat(opts.LogFormat, opts.NoColor, opts.ErrWriter)
	if err != nil {
		return err
	}

	opts.Logger.SetOptions(log.WithLevel(opts.LogLevel), log.WithFormatter(formatter))
	opts.Logger.Debugf("Working directory: %s", opts.WorkingDir)

	return nil
}
