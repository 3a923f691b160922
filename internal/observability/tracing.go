package observability

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sabq-ai/app-template-recommender/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ServiceName identifies this service in traces and metrics
const ServiceName = "app-template-recommender"

// Resource attributes describing how this instance resolves manifests, content and explanations.
const (
	AttrManifestSource = attribute.Key("recommender.manifest_source")
	AttrContentSource  = attribute.Key("recommender.content_source")
	AttrAIProvider     = attribute.Key("recommender.ai_provider")
	AttrAILanguage     = attribute.Key("recommender.ai_language")
)

// ShutdownFunc flushes and stops the tracer provider
type ShutdownFunc func(context.Context) error

// InitTracer installs the global tracer provider exporting over OTLP gRPC.
// With tracing disabled the no-op provider stays and the returned shutdown does nothing.
func InitTracer(ctx context.Context, cfg *config.Config) (ShutdownFunc, error) {
	if !cfg.TracingEnabled {
		slog.Info("tracing disabled")
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(cfg.TracingEndpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	))
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(NewResource(cfg)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.TracingSampleRatio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	slog.Info("tracer initialized",
		"endpoint", cfg.TracingEndpoint,
		"sample_ratio", cfg.TracingSampleRatio,
		"environment", cfg.Environment,
	)
	return tp.Shutdown, nil
}

// NewResource describes this instance: service identity plus the configured
// manifest, content and AI backends, so traces can be split by deployment shape.
func NewResource(cfg *config.Config) *resource.Resource {
	return resource.NewWithAttributes(semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(cfg.Version),
		semconv.DeploymentEnvironment(cfg.Environment),
		AttrManifestSource.String(cfg.ManifestSource),
		AttrContentSource.String(cfg.ContentSource),
		AttrAIProvider.String(cfg.AIProvider),
		AttrAILanguage.String(cfg.AILanguage),
	)
}
