package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sabq-ai/app-template-recommender/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Span attributes for the recommender resources addressed by a route
const (
	AttrTemplateID    = attribute.Key("recommender.template_id")
	AttrDataset       = attribute.Key("recommender.dataset")
	AttrPreviewFormat = attribute.Key("recommender.preview_format")
	AttrRequestID     = attribute.Key("recommender.request_id")
)

// EventRejected marks a 422: the engine refused the input and, on
// /recommendations, the client received the manifest-order fallback.
const EventRejected = "recommender.rejected"

// Tracing opens a server span per request named after the gin route and
// tags it with the template or dataset the route addresses.
func Tracing() gin.HandlerFunc {
	tracer := otel.Tracer(observability.ServiceName + "/http")

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(routeAttributes(c, route, observability.RequestID(ctx))...),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		endSpan(span, c)
	}
}

func routeAttributes(c *gin.Context, route, requestID string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		semconv.HTTPRequestMethodKey.String(c.Request.Method),
		semconv.HTTPRoute(route),
	}
	if requestID != "" {
		attrs = append(attrs, AttrRequestID.String(requestID))
	}
	if id := c.Param("id"); id != "" {
		attrs = append(attrs, AttrTemplateID.String(id))
	}
	if name := c.Param("name"); name != "" {
		attrs = append(attrs, AttrDataset.String(name))
	}
	if format := c.Query("format"); format != "" {
		attrs = append(attrs, AttrPreviewFormat.String(format))
	}
	return attrs
}

// endSpan follows the OTel HTTP server convention: only 5xx is an error.
func endSpan(span trace.Span, c *gin.Context) {
	status := c.Writer.Status()
	span.SetAttributes(semconv.HTTPResponseStatusCode(status))

	switch {
	case status >= http.StatusInternalServerError:
		span.SetStatus(codes.Error, http.StatusText(status))
		for _, e := range c.Errors {
			span.RecordError(e.Err)
		}
	case status == http.StatusUnprocessableEntity:
		span.AddEvent(EventRejected)
	}
}
