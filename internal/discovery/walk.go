package discovery

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/gruntwork-io/declscan/internal/errors"
	"github.com/gruntwork-io/declscan/internal/vfs"
	"github.com/gruntwork-io/declscan/pkg/log"
)

// errStopWalk aborts a walk once the consumer stops pulling paths.
var errStopWalk = errors.New("stop walk")

// prepare validates the roots and compiles the exclude patterns.
func (d *Discovery) prepare() (excludes, error) {
	if len(d.roots) == 0 {
		return nil, errors.Errorf("no discovery roots configured")
	}

	for _, root := range d.roots {
		exists, err := vfs.FileExists(d.fs, root)
		if err != nil {
			return nil, errors.New(err)
		}

		if !exists {
			return nil, NewRootError(root)
		}
	}

	return newExcludes(d.excludes)
}

// files yields the supported, non-excluded files below every root, root by root, in lexical order.
// Entries that cannot be read are logged and skipped. The walk stops when ctx is done.
func (d *Discovery) files(ctx context.Context, l log.Logger, patterns excludes) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, root := range d.roots {
			err := vfs.Walk(d.fs, root, func(path string, info os.FileInfo, err error) error {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}

				if err != nil {
					l.WithField(log.FieldKeyPath, path).Debugf("Skipping unreadable path: %v", err)
					return nil
				}

				rel := relativePath(root, path)

				if info.IsDir() {
					if path != root && d.skipDir(info.Name(), rel, patterns) {
						return filepath.SkipDir
					}

					return nil
				}

				if patterns.match(rel) || !d.registry.Supports(path) {
					return nil
				}

				if !yield(path) {
					return errStopWalk
				}

				return nil
			})

			switch {
			case err == nil:
			case errors.Is(err, errStopWalk), ctx.Err() != nil:
				return
			default:
				l.WithField(log.FieldKeyRoot, root).Debugf("Walk stopped early: %v", err)
			}
		}
	}
}

func (d *Discovery) skipDir(name, rel string, patterns excludes) bool {
	if !d.hidden {
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return true
		}

		if _, ok := skippedDirs[name]; ok {
			return true
		}
	}

	return patterns.match(rel)
}

// relativePath returns path relative to root in slash form. A root that is itself a file
// is matched by its base name.
func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return filepath.ToSlash(filepath.Base(path))
	}

	return filepath.ToSlash(rel)
}
