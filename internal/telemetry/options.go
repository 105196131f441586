package telemetry

// Options holds the exporter configuration read from flags, environment and the config file.
type Options struct {
	// TraceExporter is one of none, console, otlpHttp, otlpGrpc, http.
	TraceExporter string
	// TraceExporterHTTPEndpoint is required by the http trace exporter.
	TraceExporterHTTPEndpoint string
	// TraceParent is a W3C traceparent header value linking spans to an outer trace.
	TraceParent string

	// MetricExporter is one of none, console, otlpHttp, grpcHttp.
	MetricExporter string

	TraceExporterInsecureEndpoint  bool
	MetricExporterInsecureEndpoint bool
}
