package telemetry

import (
	"context"
	"io"
	"time"

	"github.com/gruntwork-io/declscan/internal/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	otelmetric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const (
	noneMetricExporterType     metricExporterType = "none"
	consoleMetricExporterType  metricExporterType = "console"
	otlpHTTPMetricExporterType metricExporterType = "otlpHttp"
	grpcHTTPMetricExporterType metricExporterType = "grpcHttp"

	readerInterval = time.Second

	durationSuffix = "_duration"
	countSuffix    = "_count"
	errorsSuffix   = "_errors"
)

type metricExporterType string

type Meter struct {
	otelmetric.Meter
	provider *sdkmetric.MeterProvider
}

// NewMeter creates and configures the metrics collection.
// Returns a nil Meter when no exporter is configured.
func NewMeter(ctx context.Context, appName, appVersion string, writer io.Writer, opts *Options) (*Meter, error) {
	exporter, err := NewMetricExporter(ctx, writer, opts)
	if err != nil {
		return nil, err
	}

	if exporter == nil {
		return nil, nil
	}

	res, err := newResource(appName, appVersion)
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(readerInterval))),
	)

	otel.SetMeterProvider(provider)

	return &Meter{
		Meter:    provider.Meter(appName),
		provider: provider,
	}, nil
}

// NewMetricExporter creates a new exporter based on the telemetry options.
func NewMetricExporter(ctx context.Context, writer io.Writer, opts *Options) (sdkmetric.Exporter, error) {
	switch metricExporterType(opts.MetricExporter) {
	case "", noneMetricExporterType:
		return nil, nil
	case consoleMetricExporterType:
		return stdoutmetric.New(stdoutmetric.WithWriter(writer))
	case otlpHTTPMetricExporterType:
		var config []otlpmetrichttp.Option
		if opts.MetricExporterInsecureEndpoint {
			config = append(config, otlpmetrichttp.WithInsecure())
		}

		return otlpmetrichttp.New(ctx, config...)
	case grpcHTTPMetricExporterType:
		var config []otlpmetricgrpc.Option
		if opts.MetricExporterInsecureEndpoint {
			config = append(config, otlpmetricgrpc.WithInsecure())
		}

		return otlpmetricgrpc.New(ctx, config...)
	}

	return nil, errors.New(&ErrorInvalidExporter{Kind: "metric", Name: opts.MetricExporter})
}

// Time records the duration of fn in milliseconds, and counts its failures.
func (meter *Meter) Time(ctx context.Context, name string, attrs map[string]any, fn func(childCtx context.Context) error) error {
	if meter == nil || meter.provider == nil {
		return fn(ctx)
	}

	metricAttrs := otelmetric.WithAttributes(mapToAttributes(attrs)...)
	name = CleanMetricName(name)
	started := time.Now()

	err := fn(ctx)

	if histogram, histErr := meter.Int64Histogram(name+durationSuffix, otelmetric.WithUnit("ms")); histErr == nil {
		histogram.Record(ctx, time.Since(started).Milliseconds(), metricAttrs)
	}

	if err != nil {
		meter.Count(ctx, name+errorsSuffix, 1, attrs)
	}

	return err
}

// Count adds value to the counter with the given name.
func (meter *Meter) Count(ctx context.Context, name string, value int64, attrs map[string]any) {
	if meter == nil || meter.provider == nil {
		return
	}

	name = CleanMetricName(name)
	if name == "" {
		return
	}

	counter, err := meter.Int64Counter(name + countSuffix)
	if err != nil {
		return
	}

	counter.Add(ctx, value, otelmetric.WithAttributes(mapToAttributes(attrs)...))
}
