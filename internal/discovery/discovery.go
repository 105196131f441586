package discovery

import (
	"runtime"

	"github.com/gruntwork-io/declscan/internal/declaration"
	"github.com/gruntwork-io/declscan/internal/parser"
	"github.com/gruntwork-io/declscan/internal/vfs"
)

const (
	minDefaultWorkers   = 4
	maxDefaultWorkers   = 8
	maxDiscoveryWorkers = 64
)

// skippedDirs are dependency directories that never hold first-party declarations.
var skippedDirs = map[string]struct{}{
	"vendor":       {},
	"node_modules": {},
}

// Discovery is the configuration for a discovery run.
type Discovery struct {
	fs       vfs.FS
	registry *parser.Registry
	index    *declaration.Index

	roots    []string
	excludes []string

	numWorkers int
	hidden     bool
}

// New returns a Discovery over the OS filesystem with the default parser registry,
// a fresh index and a worker count that scales with runtime.NumCPU.
func New(roots ...string) *Discovery {
	return &Discovery{
		fs:         vfs.NewOSFS(),
		registry:   parser.NewDefaultRegistry(),
		index:      declaration.NewIndex(),
		roots:      roots,
		numWorkers: defaultNumWorkers(),
	}
}

func defaultNumWorkers() int {
	return min(max(runtime.NumCPU(), minDefaultWorkers), maxDefaultWorkers)
}

// WithRoots sets the directories or files to scan.
func (d *Discovery) WithRoots(roots ...string) *Discovery {
	d.roots = roots
	return d
}

// WithExcludes sets glob patterns for paths to skip.
func (d *Discovery) WithExcludes(patterns ...string) *Discovery {
	d.excludes = patterns
	return d
}

// WithHidden includes hidden directories, vendor and node_modules.
func (d *Discovery) WithHidden() *Discovery {
	d.hidden = true
	return d
}

// WithNumWorkers sets the number of concurrent parsers used by Discover.
// Values outside of 1..64 are ignored.
func (d *Discovery) WithNumWorkers(numWorkers int) *Discovery {
	if numWorkers > 0 && numWorkers <= maxDiscoveryWorkers {
		d.numWorkers = numWorkers
	}

	return d
}

// WithFS sets the filesystem to scan.
func (d *Discovery) WithFS(fsys vfs.FS) *Discovery {
	d.fs = fsys
	return d
}

// WithRegistry sets the parser registry.
func (d *Discovery) WithRegistry(registry *parser.Registry) *Discovery {
	d.registry = registry
	return d
}

// WithIndex sets the index records are stored in.
func (d *Discovery) WithIndex(index *declaration.Index) *Discovery {
	d.index = index
	return d
}

// Index returns the index records are stored in.
func (d *Discovery) Index() *declaration.Index {
	return d.index
}

// NumWorkers returns the configured worker count.
func (d *Discovery) NumWorkers() int {
	return d.numWorkers
}
