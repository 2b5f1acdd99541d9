// Package observability records sample runs with OpenTelemetry.
//
// Every run gets a span and feeds four instruments (runs, elements,
// faults, duration):
//
//	ctx, run := observability.StartSampleRun(ctx, observability.Tracer(), metrics, "iterator", id)
//	run.Element(ctx)
//	status := run.End(ctx, err)
//
// The Telemetry component installs OTLP/HTTP exporters when
// telemetry.enabled is set. Otherwise the global no-op providers are used.
package observability
