package filter

import (
	"context"

	"github.com/gruntwork-io/declscan/internal/declaration"
	"github.com/gruntwork-io/declscan/internal/telemetry"
)

// Telemetry operation names for filter operations.
const (
	TelemetryOpFilterParse    = "filter_parse"
	TelemetryOpFilterEvaluate = "filter_evaluate"
)

// Telemetry attribute keys for filter operations.
const (
	AttrFilterQuery = "filter.query"
	AttrFilterCount = "filter.count"
	AttrResultCount = "result.count"
)

// ParseFilterQueriesWithTelemetry parses queries inside a telemetry span.
func ParseFilterQueriesWithTelemetry(ctx context.Context, queries []string, resolver declaration.Resolver) (Filters, error) {
	var filters Filters

	attrs := map[string]any{
		AttrFilterQuery: queries,
		AttrFilterCount: len(queries),
	}

	err := telemetry.TelemeterFromContext(ctx).Collect(ctx, TelemetryOpFilterParse, attrs, func(context.Context) error {
		var err error

		filters, err = ParseFilterQueries(queries, resolver)

		return err
	})

	return filters, err
}

// TraceFilterEvaluate wraps a filter evaluation with telemetry.
// The underlying Telemeter.Collect handles nil/unconfigured telemetry gracefully.
func TraceFilterEvaluate(ctx context.Context, query string, fn func(ctx context.Context) error) error {
	attrs := map[string]any{
		AttrFilterQuery: query,
	}

	return telemetry.TelemeterFromContext(ctx).Collect(ctx, TelemetryOpFilterEvaluate, attrs, fn)
}
