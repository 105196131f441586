package discovery

import (
	"context"
	"iter"
	"slices"

	"github.com/gruntwork-io/declscan/internal/declaration"
	"github.com/gruntwork-io/declscan/internal/pipeline"
	"github.com/gruntwork-io/declscan/internal/telemetry"
	"github.com/gruntwork-io/declscan/pkg/log"

	"golang.org/x/sync/errgroup"
)

// Telemetry operation names and attribute keys for discovery.
const (
	TelemetryOpDiscover = "discover"

	AttrDiscoveryRoots   = "discovery.roots"
	AttrDiscoveryWorkers = "discovery.workers"
)

// Find returns the records below the configured roots keyed by qualified name.
//
// The sequence is lazy: files are walked and parsed only as the caller pulls records, and
// breaking out of the loop stops the walk. Each yielded record is stored in the index.
// Files that cannot be parsed yield nothing. The sequence can be ranged over more than once;
// each range walks the roots again.
func (d *Discovery) Find(ctx context.Context, l log.Logger) (iter.Seq2[string, *declaration.Declaration], error) {
	patterns, err := d.prepare()
	if err != nil {
		return nil, err
	}

	items := func(yield func(pipeline.Item[string, *declaration.Declaration]) bool) {
		for path := range d.files(ctx, l, patterns) {
			decls, err := d.registry.ParseFile(d.fs, path)
			if err != nil {
				if !yield(pipeline.Item[string, *declaration.Declaration]{Key: path, Err: err}) {
					return
				}

				continue
			}

			for _, decl := range decls {
				d.index.Add(decl)

				if !yield(pipeline.Item[string, *declaration.Declaration]{Key: decl.QualifiedName(), Value: decl}) {
					return
				}
			}
		}
	}

	return pipeline.SkipErrors(items, func(item pipeline.Item[string, *declaration.Declaration]) {
		logSkippedFile(l, item.Key, item.Err)
	}), nil
}

// Discover parses every file below the configured roots in parallel and returns the records
// in the order Find would yield them. Every record is stored in the index.
func (d *Discovery) Discover(ctx context.Context, l log.Logger) (declaration.Declarations, error) {
	patterns, err := d.prepare()
	if err != nil {
		return nil, err
	}

	var decls declaration.Declarations

	attrs := map[string]any{
		AttrDiscoveryRoots:   d.roots,
		AttrDiscoveryWorkers: d.numWorkers,
	}

	err = telemetry.TelemeterFromContext(ctx).Collect(ctx, TelemetryOpDiscover, attrs, func(ctx context.Context) error {
		paths := slices.Collect(d.files(ctx, l, patterns))
		if err := ctx.Err(); err != nil {
			return err
		}

		results := make([][]*declaration.Declaration, len(paths))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(d.numWorkers)

		for i, path := range paths {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				parsed, err := d.registry.ParseFile(d.fs, path)
				if err != nil {
					logSkippedFile(l, path, err)
					return nil
				}

				results[i] = parsed

				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}

		for _, parsed := range results {
			for _, decl := range parsed {
				d.index.Add(decl)
				decls = append(decls, decl)
			}
		}

		l.WithField(log.FieldKeyCount, len(decls)).Debugf("Discovered declarations in %d files", len(paths))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return decls, nil
}

func logSkippedFile(l log.Logger, path string, err error) {
	l.WithField(log.FieldKeyPath, path).Debugf("Skipping file: %v", err)
}
