package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TracerName identifies spans emitted by this module.
const TracerName = "article-digest"

// Tracer returns the tracer for creating spans from the current global provider.
//
//	ctx, span := tracing.Tracer().Start(ctx, "nytimes.search")
//	defer span.End()
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// Setup installs a global tracer provider and the W3C trace context
// propagator. sampleRatio is clamped to [0, 1]; 0 disables sampling of new
// traces while still honoring sampled parents. Exporters are attached with
// opts. The returned function flushes and shuts the provider down.
func Setup(sampleRatio float64, opts ...sdktrace.TracerProviderOption) func(context.Context) error {
	if sampleRatio < 0 {
		sampleRatio = 0
	}
	if sampleRatio > 1 {
		sampleRatio = 1
	}

	opts = append([]sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
	}, opts...)

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown
}
