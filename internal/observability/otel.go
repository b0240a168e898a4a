// Package observability wires OpenTelemetry tracing for the comparator.
//
// SetupOTel installs a global tracer provider exporting over OTLP/gRPC and
// the W3C trace-context propagator; when tracing is disabled it is a no-op
// and the global no-op provider stays in place. Tracer returns a named
// tracer under the module's instrumentation scope so spans opened by the
// services, the GORM plugin and the PostgREST client share one pipeline.
package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"google.golang.org/grpc/credentials"

	"github.com/votabienperu/comparador/internal/config"
)

// ScopePrefix prefixes every tracer name handed out by Tracer.
const ScopePrefix = "github.com/votabienperu/comparador/"

// builders constructs the pieces of the tracing pipeline; tests swap them.
type builders struct {
	exporter func(ctx context.Context, cfg config.OTELConfig) (sdktrace.SpanExporter, error)
	resource func(ctx context.Context, service, version string) (*resource.Resource, error)
}

var build = builders{
	exporter: func(ctx context.Context, cfg config.OTELConfig) (sdktrace.SpanExporter, error) {
		return otlptrace.New(ctx, otlptracegrpc.NewClient(grpcOptions(cfg)...))
	},
	resource: func(ctx context.Context, service, version string) (*resource.Resource, error) {
		return resource.New(ctx, resource.WithAttributes(
			semconv.ServiceName(service),
			semconv.ServiceVersion(version),
		))
	},
}

func grpcOptions(cfg config.OTELConfig) []otlptracegrpc.Option {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		return append(opts, otlptracegrpc.WithInsecure())
	}
	return append(opts, otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")))
}

// SetupOTel installs the tracer provider and returns its shutdown function.
// Nothing global changes unless the resource and exporter were both built.
func SetupOTel(ctx context.Context, cfg config.OTELConfig, version string) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	res, err := build.resource(ctx, cfg.ServiceName, version)
	if err != nil {
		return nil, err
	}
	exp, err := build.exporter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exp),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown, nil
}

// Tracer returns the tracer for a component, e.g. Tracer("services").
func Tracer(component string) trace.Tracer {
	return otel.Tracer(ScopePrefix + component)
}
