// Package telemetry wires an OTLP trace exporter when one is configured.
package telemetry

import (
	"context"
	"fmt"
	"strings"

	"github.com/Joshcode41/todo-app/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

// Setup installs a global tracer provider exporting over OTLP/HTTP.
// With no endpoint configured tracing stays a no-op and Setup returns a no-op shutdown.
func Setup(ctx context.Context, cfg config.OTELConfig, version string) (ShutdownFunc, error) {
	if cfg.Endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx, endpointOptions(cfg.Endpoint)...)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", version),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}

// endpointOptions accepts both "host:port" and a full URL.
func endpointOptions(endpoint string) []otlptracehttp.Option {
	if strings.Contains(endpoint, "://") {
		return []otlptracehttp.Option{otlptracehttp.WithEndpointURL(endpoint)}
	}
	return []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	}
}
