package api

import (
	"context"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Tracer manages distributed tracing
type Tracer struct {
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
	shutdown   func(context.Context) error
}

// NewTracer creates a tracer exporting spans to the Jaeger collector at
// endpoint. An empty endpoint yields a tracer that records nothing.
func NewTracer(serviceName string, endpoint string) (*Tracer, error) {
	if endpoint == "" {
		return NewTracerFromProvider(noop.NewTracerProvider(), serviceName), nil
	}

	exporter, err := jaeger.New(
		jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	t := NewTracerFromProvider(tp, serviceName)
	t.shutdown = tp.Shutdown
	return t, nil
}

// NewTracerFromProvider creates a tracer using the given provider
func NewTracerFromProvider(tp trace.TracerProvider, serviceName string) *Tracer {
	return &Tracer{
		tracer: tp.Tracer(serviceName),
		propagator: propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
		shutdown: func(context.Context) error { return nil },
	}
}

// Shutdown flushes buffered spans
func (t *Tracer) Shutdown(ctx context.Context) error {
	return t.shutdown(ctx)
}

// TracingMiddleware adds tracing to requests. spanName must return a value
// drawn from a bounded set, such as the matched route.
func (t *Tracer) TracingMiddleware(spanName func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := t.propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			ctx, span := t.tracer.Start(ctx, spanName(r), trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			span.SetAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.url", r.URL.String()),
				attribute.String("http.user_agent", r.UserAgent()),
			)

			m := httpsnoop.CaptureMetrics(next, w, r.WithContext(ctx))

			span.SetAttributes(attribute.Int("http.status_code", m.Code))
			if m.Code >= 500 {
				span.SetStatus(codes.Error, http.StatusText(m.Code))
			}
		})
	}
}

// TraceSlotOperation runs fn inside a span named after the slot operation.
// Slot operations cannot fail, so the span only records timing.
func (t *Tracer) TraceSlotOperation(ctx context.Context, operation string, fn func(context.Context)) {
	ctx, span := t.tracer.Start(ctx, "slot."+operation)
	defer span.End()

	start := time.Now()
	fn(ctx)

	span.SetAttributes(
		attribute.String("operation", operation),
		attribute.String("duration", time.Since(start).String()),
	)
}
