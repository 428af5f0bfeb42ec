package callback

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for the callback registry.
const defaultTracerName = "lignin"

// OTelConfig configures the traced dispatcher.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "lignin").
	TracerName string

	// AttributeExtractor extracts custom attributes for each dispatch.
	AttributeExtractor func(key Key) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the traced dispatcher.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(key Key) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// TracedDispatcher wraps a Registry's dispatch path in OpenTelemetry
// spans. It is an optional front for renderers that already carry a
// trace context per event; the registry itself stays tracing-free.
type TracedDispatcher struct {
	registry *Registry
	config   OTelConfig
}

// NewTracedDispatcher creates a traced dispatch front over registry.
func NewTracedDispatcher(registry *Registry, opts ...OTelOption) *TracedDispatcher {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)
	return &TracedDispatcher{
		registry: registry,
		config:   config,
	}
}

// Invoke dispatches key with parameter inside a span. A handler panic
// is recorded on the span and then re-raised unchanged.
func (d *TracedDispatcher) Invoke(ctx context.Context, key Key, parameter any) {
	attrs := []attribute.KeyValue{
		attribute.Int64("callback.key", int64(key)),
	}
	if d.config.AttributeExtractor != nil {
		attrs = append(attrs, d.config.AttributeExtractor(key)...)
	}

	_, span := d.config.tracer.Start(ctx, "callback.invoke",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("handler panic: %v", rec)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			panic(rec)
		}
	}()
	d.registry.Invoke(key, parameter)
}

// Call dispatches ref with parameter inside a span. ref must have been
// derived from a registration on the dispatcher's registry; the zero
// Ref is a no-op as with Ref.Call.
func Call[T any](ctx context.Context, d *TracedDispatcher, ref Ref[T], parameter T) {
	if ref.Key() == 0 {
		return
	}
	d.Invoke(ctx, ref.Key(), parameter)
}
