package find

import (
	"context"
	"fmt"

	"github.com/gruntwork-io/declscan/internal/declaration"
	"github.com/gruntwork-io/declscan/internal/discovery"
	"github.com/gruntwork-io/declscan/internal/errors"
	"github.com/gruntwork-io/declscan/internal/filter"
	"github.com/gruntwork-io/declscan/internal/listener"
	"github.com/gruntwork-io/declscan/internal/pipeline"
	"github.com/gruntwork-io/declscan/options"
	"github.com/gruntwork-io/declscan/pkg/log"
)

// Run discovers the declarations below the configured roots, filters them and writes the
// accepted ones to opts.Writer.
func Run(ctx context.Context, l log.Logger, opts *options.Options) error {
	index := declaration.NewIndex()

	// Queries are compiled before discovery so malformed ones fail fast. The index is still empty
	// here: Discover fills it, and subclass predicates look supertypes up in it only when evaluated.
	filters, err := filter.ParseFilterQueriesWithTelemetry(ctx, opts.FilterQueries, index)
	if err != nil {
		reportQueryErrors(opts, err)
		return err
	}

	d := discovery.New(opts.ResolvedRoots()...).
		WithFS(opts.FS).
		WithExcludes(opts.Excludes...).
		WithIndex(index).
		WithNumWorkers(opts.NumWorkers)

	if opts.Hidden {
		d = d.WithHidden()
	}

	decls, err := d.Discover(ctx, l)
	if err != nil {
		return err
	}

	var predicates []filter.Predicate
	if len(filters) > 0 {
		predicates = append(predicates, filters.Predicate())
	}

	declarations, err := pipeline.NewDeclarations(decls.All(), predicates...)
	if err != nil {
		return err
	}
	defer declarations.Close()

	if opts.Count {
		var count int

		if err := filter.TraceFilterEvaluate(ctx, filters.String(), func(context.Context) error {
			count = declarations.Count()
			return nil
		}); err != nil {
			return err
		}

		if _, err := fmt.Fprintln(opts.Writer, count); err != nil {
			return errors.New(err)
		}

		return nil
	}

	out, err := newOutputListener(opts)
	if err != nil {
		return err
	}

	broadcaster, err := listener.NewBroadcaster(out)
	if err != nil {
		return err
	}

	return filter.TraceFilterEvaluate(ctx, filters.String(), func(ctx context.Context) error {
		delivered, err := broadcaster.Broadcast(ctx, l, declarations.All())
		l.Debugf("%d of %d declarations matched %s", delivered, len(decls), filters)

		return err
	})
}

// reportQueryErrors writes a caret diagnostic for every malformed query.
func reportQueryErrors(opts *options.Options, err error) {
	for _, unwrapped := range errors.UnwrapMultiErrors(err) {
		var queryErr *filter.QueryError
		if !errors.As(unwrapped, &queryErr) {
			continue
		}

		var parseErr filter.ParseError
		if !errors.As(queryErr.Err, &parseErr) {
			continue
		}

		fmt.Fprintln(opts.ErrWriter, filter.FormatDiagnostic(&parseErr, queryErr.Index, shouldColor(opts, opts.ErrWriter)))
	}
}
