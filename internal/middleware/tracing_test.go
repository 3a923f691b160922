package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTracedRouter(t *testing.T) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Tracing())
	r.GET("/api/v1/templates/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.PUT("/api/v1/playground/datasets/:name", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.POST("/api/v1/preview", func(c *gin.Context) { c.Status(http.StatusUnprocessableEntity) })
	r.POST("/api/v1/recommendations", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusInternalServerError)
	})
	return r, recorder
}

func spanAttrs(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range s.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestTracingAnnotatesRoute(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		wantName   string
		wantAttrs  map[attribute.Key]string
		wantStatus int64
	}{
		{
			name:       "template por id",
			method:     http.MethodGet,
			path:       "/api/v1/templates/grid-gallery",
			wantName:   "GET /api/v1/templates/:id",
			wantAttrs:  map[attribute.Key]string{AttrTemplateID: "grid-gallery", "http.route": "/api/v1/templates/:id"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "dataset do playground",
			method:     http.MethodPut,
			path:       "/api/v1/playground/datasets/breaking",
			wantName:   "PUT /api/v1/playground/datasets/:name",
			wantAttrs:  map[attribute.Key]string{AttrDataset: "breaking"},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "formato da pré-visualização",
			method:     http.MethodPost,
			path:       "/api/v1/preview?format=json",
			wantName:   "POST /api/v1/preview",
			wantAttrs:  map[attribute.Key]string{AttrPreviewFormat: "json"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "rota inexistente",
			method:     http.MethodGet,
			path:       "/nope",
			wantName:   "GET unmatched",
			wantAttrs:  map[attribute.Key]string{"http.request.method": "GET"},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, recorder := newTracedRouter(t)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			span := spans[0]
			assert.Equal(t, tt.wantName, span.Name())

			attrs := spanAttrs(span)
			for k, v := range tt.wantAttrs {
				assert.Equal(t, v, attrs[k].AsString(), "atributo %s", k)
			}
			assert.Equal(t, tt.wantStatus, attrs["http.response.status_code"].AsInt64())
			assert.Equal(t, w.Header().Get(RequestIDHeader), attrs[AttrRequestID].AsString())
		})
	}
}

func TestTracingStatus(t *testing.T) {
	r, recorder := newTracedRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/preview", nil))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	rejected := spans[0]
	assert.Equal(t, codes.Unset, rejected.Status().Code, "4xx não marca erro")
	require.Len(t, rejected.Events(), 1)
	assert.Equal(t, EventRejected, rejected.Events()[0].Name)

	failed := spans[1]
	assert.Equal(t, codes.Error, failed.Status().Code)
	require.NotEmpty(t, failed.Events())
	assert.Equal(t, "exception", failed.Events()[0].Name)
}
