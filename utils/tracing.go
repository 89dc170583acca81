package utils

import (
	"context"
	"fmt"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	ExporterNone   = "none"
	ExporterOTLP   = "otlp"
	ExporterZipkin = "zipkin"

	defaultOTLPEndpoint = "localhost:4317"
	defaultZipkinURL    = "http://localhost:9411/api/v2/spans"
)

type TracingConfig struct {
	ServiceName    string
	ServiceVersion string
	// Exporter is one of ExporterNone, ExporterOTLP or ExporterZipkin.
	Exporter     string
	OTLPEndpoint string
	ZipkinURL    string
}

// InitTracer installs the global tracer provider and propagator. The returned
// function flushes and shuts the provider down. With ExporterNone nothing is
// exported and spans stay no-ops.
func InitTracer(ctx context.Context, cfg TracingConfig) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	var (
		exporter sdktrace.SpanExporter
		conn     *grpc.ClientConn
		err      error
	)
	switch cfg.Exporter {
	case "", ExporterNone:
		return func(context.Context) error { return nil }, nil
	case ExporterOTLP:
		endpoint := cfg.OTLPEndpoint
		if endpoint == "" {
			endpoint = defaultOTLPEndpoint
		}
		conn, err = grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, fmt.Errorf("failed to create gRPC connection to collector: %w", err)
		}
		exporter, err = otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
	case ExporterZipkin:
		url := cfg.ZipkinURL
		if url == "" {
			url = defaultZipkinURL
		}
		exporter, err = zipkin.New(url)
		if err != nil {
			return nil, fmt.Errorf("failed to create zipkin exporter: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", cfg.Exporter)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			"",
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.version", cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	log.Printf("Tracing enabled with %s exporter", cfg.Exporter)

	return func(ctx context.Context) error {
		err := tracerProvider.Shutdown(ctx)
		if conn != nil {
			conn.Close()
		}
		return err
	}, nil
}
