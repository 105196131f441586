// Package options provides the set of options that configure a declscan run.
package options

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gruntwork-io/declscan/internal/errors"
	"github.com/gruntwork-io/declscan/internal/telemetry"
	"github.com/gruntwork-io/declscan/internal/vfs"
	"github.com/gruntwork-io/declscan/pkg/env"
	"github.com/gruntwork-io/declscan/pkg/log"
	homedir "github.com/mitchellh/go-homedir"
)

const (
	// FormatText prints one qualified name per line.
	FormatText = "text"

	// FormatJSON prints the accepted records as a JSON array.
	FormatJSON = "json"

	// DefaultConfigFilename is looked up in the working directory when no config path is given.
	DefaultConfigFilename = ".declscan.hcl"

	// MaxWorkers bounds the number of concurrent parsers.
	MaxWorkers = 64

	defaultLogLevel = log.InfoLevel
)

// AllFormats lists the supported output formats.
var AllFormats = []string{FormatText, FormatJSON}

// Options represents the options that configure a run.
type Options struct {
	Writer    io.Writer
	ErrWriter io.Writer
	Logger    log.Logger
	Telemetry *telemetry.Options
	FS        vfs.FS
	Env       env.Environ

	// WorkingDir is the directory relative roots and the default config file are resolved against.
	WorkingDir string
	// ConfigPath is the config file to load. Empty means DefaultConfigFilename in WorkingDir, if present.
	ConfigPath string
	// Format is the output format, one of AllFormats.
	Format    string
	LogFormat string

	Roots         []string
	Excludes      []string
	FilterQueries []string

	// NumWorkers is the number of concurrent parsers. Zero selects a CPU-based default.
	NumWorkers int
	LogLevel   log.Level

	// Count prints only the number of accepted records.
	Count bool
	// Hidden includes hidden directories, vendor and node_modules.
	Hidden  bool
	NoColor bool
}

// NewOptions returns options with defaults for a run over the OS filesystem and environment,
// writing to stdout and stderr.
func NewOptions() *Options {
	opts := NewOptionsWithWriters(os.Stdout, os.Stderr)
	opts.FS = vfs.NewOSFS()
	opts.Env = env.Parse(os.Environ())

	return opts
}

// NewOptionsWithWriters returns options with defaults writing to the given writers,
// over an empty in-memory filesystem and an empty environment.
func NewOptionsWithWriters(stdout, stderr io.Writer) *Options {
	return &Options{
		FS:        vfs.NewMemMapFS(),
		Env:       env.Environ{},
		Writer:    stdout,
		ErrWriter: stderr,
		Logger:    log.New(log.WithOutput(stderr), log.WithLevel(defaultLogLevel)),
		Telemetry: &telemetry.Options{},
		Format:    FormatText,
		LogFormat: log.PrettyFormatName,
		LogLevel:  defaultLogLevel,
	}
}

// ApplyEnv overrides options with the DECLSCAN_* variables present in environ.
func (opts *Options) ApplyEnv(environ env.Environ) error {
	opts.ConfigPath = environ.String(env.Key("config"), opts.ConfigPath)
	opts.Roots = environ.StringSlice(env.Key("roots"), opts.Roots)
	opts.Excludes = environ.StringSlice(env.Key("exclude"), opts.Excludes)
	opts.Format = environ.String(env.Key("format"), opts.Format)
	opts.LogFormat = environ.String(env.Key("log-format"), opts.LogFormat)
	opts.NumWorkers = environ.Int(env.Key("workers"), opts.NumWorkers)
	opts.Count = environ.Bool(env.Key("count"), opts.Count)
	opts.Hidden = environ.Bool(env.Key("hidden"), opts.Hidden)
	opts.NoColor = environ.Bool(env.Key("no-color"), opts.NoColor)

	opts.Telemetry.TraceExporter = environ.String(env.Key("telemetry-trace-exporter"), opts.Telemetry.TraceExporter)
	opts.Telemetry.TraceExporterHTTPEndpoint = environ.String(env.Key("telemetry-trace-exporter-http-endpoint"), opts.Telemetry.TraceExporterHTTPEndpoint)
	opts.Telemetry.TraceParent = environ.String("TRACEPARENT", opts.Telemetry.TraceParent)
	opts.Telemetry.MetricExporter = environ.String(env.Key("telemetry-metric-exporter"), opts.Telemetry.MetricExporter)

	// A query may itself contain commas, so the variable holds exactly one.
	if query, ok := environ.Lookup(env.Key("filter")); ok {
		opts.FilterQueries = []string{query}
	}

	if val, ok := environ.Lookup(env.Key("log-level")); ok {
		level, err := log.ParseLevel(val)
		if err != nil {
			return err
		}

		opts.LogLevel = level
	}

	return nil
}

// Validate reports every invalid option at once.
func (opts *Options) Validate() error {
	errs := &errors.MultiError{}

	if !slices.Contains(AllFormats, opts.Format) {
		errs = errs.Append(errors.Errorf("invalid format %q, supported formats: %s", opts.Format, strings.Join(AllFormats, ", ")))
	}

	if !slices.Contains(log.AllFormatNames, opts.LogFormat) {
		errs = errs.Append(errors.Errorf("invalid log format %q, supported formats: %s", opts.LogFormat, strings.Join(log.AllFormatNames, ", ")))
	}

	if opts.NumWorkers < 0 || opts.NumWorkers > MaxWorkers {
		errs = errs.Append(errors.Errorf("invalid worker count %d, must be between 0 and %d", opts.NumWorkers, MaxWorkers))
	}

	for _, query := range opts.FilterQueries {
		if strings.TrimSpace(query) == "" {
			errs = errs.Append(errors.New("filter query must not be empty"))
			break
		}
	}

	return errs.ErrorOrNil()
}

// ResolvedRoots returns the roots made absolute against WorkingDir. No roots means WorkingDir itself.
func (opts *Options) ResolvedRoots() []string {
	if len(opts.Roots) == 0 {
		return []string{opts.WorkingDir}
	}

	roots := make([]string, 0, len(opts.Roots))

	for _, root := range opts.Roots {
		roots = append(roots, opts.resolve(root))
	}

	return roots
}

// ResolvedConfigPath returns the config file to load and whether it was given explicitly.
func (opts *Options) ResolvedConfigPath() (string, bool) {
	if opts.ConfigPath != "" {
		return opts.resolve(opts.ConfigPath), true
	}

	return filepath.Join(opts.WorkingDir, DefaultConfigFilename), false
}

// resolve expands a leading ~ and joins relative paths onto WorkingDir.
func (opts *Options) resolve(path string) string {
	// Expand only fails on an unknown home directory; the path is then used as given.
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}

	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(opts.WorkingDir, path)
}
