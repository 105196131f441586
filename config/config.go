// Package config loads the optional `.declscan.hcl` file that sets defaults for a run.
//
// Example:
//
//	roots          = ["src", "app"]
//	exclude        = ["tests", "**/*Stub.php"]
//	filters        = ["kind=class | !is=abstract"]
//	include_hidden = false
//	workers        = 4
//	format         = "json"
//
// Every attribute is optional. Unknown attributes and blocks are errors. Relative roots are
// resolved against the directory holding the file. A `.json` file is read with the HCL JSON syntax.
package config

import (
	"path/filepath"

	"github.com/gruntwork-io/declscan/internal/errors"
	"github.com/gruntwork-io/declscan/internal/vfs"
	"github.com/gruntwork-io/declscan/options"
	"github.com/gruntwork-io/declscan/pkg/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// File is the decoded config file. Nil fields were not set.
type File struct {
	IncludeHidden *bool   `hcl:"include_hidden,optional"`
	Workers       *int    `hcl:"workers,optional"`
	Format        *string `hcl:"format,optional"`

	// Path is the file the config was read from.
	Path string

	Roots   []string `hcl:"roots,optional"`
	Exclude []string `hcl:"exclude,optional"`
	Filters []string `hcl:"filters,optional"`
}

// Load reads and decodes the config file at path.
func Load(fsys vfs.FS, path string) (*File, error) {
	content, err := vfs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.New(err)
	}

	return Parse(content, path)
}

// Parse decodes the config file content. path is used for diagnostics and to pick the syntax.
func Parse(content []byte, path string) (file *File, err error) {
	// hcl and cty conversions can panic on malformed input.
	defer errors.Recover(func(cause error) {
		file, err = nil, errors.New(PanicWhileParsingConfigError{ConfigFile: path, Cause: cause})
	})

	parser := hclparse.NewParser()

	var (
		hclFile *hcl.File
		diags   hcl.Diagnostics
	)

	switch filepath.Ext(path) {
	case ".json":
		hclFile, diags = parser.ParseJSON(content, path)
	default:
		hclFile, diags = parser.ParseHCL(content, path)
	}

	if diags.HasErrors() {
		return nil, errors.New(diags)
	}

	file = &File{Path: path}

	if diags := gohcl.DecodeBody(hclFile.Body, nil, file); diags.HasErrors() {
		return nil, errors.New(diags)
	}

	return file, nil
}

// LoadOptional loads the config file opts points at. A missing default file yields a nil File;
// a missing file named explicitly is an error.
func LoadOptional(fsys vfs.FS, l log.Logger, opts *options.Options) (*File, error) {
	path, explicit := opts.ResolvedConfigPath()

	exists, err := vfs.FileExists(fsys, path)
	if err != nil {
		return nil, errors.New(err)
	}

	if !exists {
		if explicit {
			return nil, errors.New(MissingConfigError{Path: path})
		}

		l.Tracef("No config file at %s", path)

		return nil, nil //nolint:nilnil
	}

	l.WithField(log.FieldKeyPath, path).Debugf("Loading config file")

	return Load(fsys, path)
}

// Apply copies the attributes that were set onto opts.
func (file *File) Apply(opts *options.Options) {
	if file.Roots != nil {
		dir := filepath.Dir(file.Path)
		roots := make([]string, 0, len(file.Roots))

		for _, root := range file.Roots {
			if !filepath.IsAbs(root) {
				root = filepath.Join(dir, root)
			}

			roots = append(roots, root)
		}

		opts.Roots = roots
	}

	if file.Exclude != nil {
		opts.Excludes = file.Exclude
	}

	if file.Filters != nil {
		opts.FilterQueries = file.Filters
	}

	if file.IncludeHidden != nil {
		opts.Hidden = *file.IncludeHidden
	}

	if file.Workers != nil {
		opts.NumWorkers = *file.Workers
	}

	if file.Format != nil {
		opts.Format = *file.Format
	}
}
