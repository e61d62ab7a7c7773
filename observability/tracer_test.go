package observability

import (
	"context"
	"errors"
	"testing"

	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("ServiceName = %q, want %q", cfg.ServiceName, "test-service")
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("Endpoint = %q, want %q", cfg.Endpoint, "localhost:4318")
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to default to true")
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("SampleRate = %v, want 1.0", cfg.SampleRate)
	}
}

func TestNewResourceMergesWithDefault(t *testing.T) {
	// The SDK's default resource carries its own schema URL; building ours
	// with a mismatched semconv version makes the merge fail outright.
	res, err := newResource("test-service", "1.0.0", "test")
	if err != nil {
		t.Fatalf("resource construction failed: %v", err)
	}

	found := false
	for _, attr := range res.Attributes() {
		if attr.Key == semconv.ServiceNameKey && attr.Value.AsString() == "test-service" {
			found = true
		}
	}
	if !found {
		t.Error("merged resource is missing the service.name attribute")
	}
}

func TestInitTracer(t *testing.T) {
	ctx := context.Background()

	tp, err := InitTracer(ctx, DefaultTracerConfig("test-service"))
	if err != nil {
		t.Fatal(err)
	}
	defer tp.Shutdown(ctx)

	spanCtx, span := StartSpan(ctx, SpanQuery)
	defer span.End()

	if !span.IsRecording() {
		t.Error("expected span to be recording with AlwaysSample")
	}
	if got := SpanFromContext(spanCtx); got != span {
		t.Error("SpanFromContext did not return the started span")
	}
}

func TestInitTracerSamplers(t *testing.T) {
	ctx := context.Background()

	for _, rate := range []float64{0, 0.5, 1.0} {
		cfg := DefaultTracerConfig("test-service")
		cfg.SampleRate = rate
		tp, err := InitTracer(ctx, cfg)
		if err != nil {
			t.Fatalf("SampleRate=%v: %v", rate, err)
		}
		tp.Shutdown(ctx)
	}
}

func TestSetSpanAttributeWithoutSpan(t *testing.T) {
	// Must not panic when the context carries no recording span.
	ctx := context.Background()
	SetSpanAttribute(ctx, "key", "value")
	SetSpanAttribute(ctx, "key", 42)
	SetSpanAttribute(ctx, "key", true)
	SetSpanError(ctx, errors.New("boom"))
}

func TestSetSpanAttribute(t *testing.T) {
	ctx := context.Background()
	tp, err := InitTracer(ctx, DefaultTracerConfig("test-service"))
	if err != nil {
		t.Fatal(err)
	}
	defer tp.Shutdown(ctx)

	spanCtx, span := StartSpan(ctx, SpanRealize)
	defer span.End()

	SetSpanAttribute(spanCtx, AttrRowsRead, int64(10))
	SetSpanAttribute(spanCtx, AttrStatement, "SELECT 1")
	SetSpanError(spanCtx, errors.New("query aborted"))
}
