// Package observability provides OpenTelemetry tracing integration for
// streamed query execution.
//
// Usage:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-service"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanQuery)
//	defer span.End()
package observability
