package tracer

import (
	"context"
	"fmt"
	"log"

	"career-assistant-be/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// ShutdownFunc flushes pending spans. It is never nil.
type ShutdownFunc func(context.Context) error

func noop(context.Context) error { return nil }

// InitTracer installs an OTLP/HTTP tracer provider (Jaeger accepts OTLP on
// port 4318). Tracing is off unless OTEL_ENABLED=true; an exporter error
// leaves it off rather than failing startup.
func InitTracer(ctx context.Context, cfg config.TracingConfig, environment string) ShutdownFunc {
	if !cfg.Enabled {
		log.Println("OpenTelemetry tracing is disabled (set OTEL_ENABLED=true to enable)")
		return noop
	}

	tp, err := newProvider(ctx, cfg, environment)
	if err != nil {
		log.Printf("Warning: %v (tracing disabled)", err)
		return noop
	}

	otel.SetTracerProvider(tp)
	log.Printf("✅ OpenTelemetry tracer initialized (endpoint: %s, service: %s)", cfg.Endpoint, cfg.ServiceName)
	return tp.Shutdown
}

func newProvider(ctx context.Context, cfg config.TracingConfig, environment string) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create OTLP exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(cfg.ServiceName),
		semconv.DeploymentEnvironmentKey.String(environment),
	)

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	), nil
}
