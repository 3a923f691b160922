package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sabq-ai/app-template-recommender/internal/api/handlers"
	"github.com/sabq-ai/app-template-recommender/internal/config"
	"github.com/sabq-ai/app-template-recommender/internal/content"
	"github.com/sabq-ai/app-template-recommender/internal/manifest"
	"github.com/sabq-ai/app-template-recommender/internal/models"
	"github.com/sabq-ai/app-template-recommender/internal/observability"
	"github.com/sabq-ai/app-template-recommender/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router  *gin.Engine
	metrics *observability.Metrics
}

func newTestServer(t *testing.T, withDatasets bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider := manifest.NewProvider(manifest.DefaultSource{}, 0)
	metrics := observability.NewMetrics()

	opts := services.RecommendationOptions{
		Manifests: provider,
		Metrics:   metrics,
	}
	if withDatasets {
		store, err := content.OpenDatasetStore(filepath.Join(t.TempDir(), "datasets.db"))
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
		opts.Datasets = store
	}

	health := handlers.NewHealthHandler("test").Require("manifest", func(ctx context.Context) error {
		_, err := provider.Get(ctx)
		return err
	})

	r := SetupRouter(&config.Config{Version: "test"}, Dependencies{
		Service: services.NewRecommendationService(opts),
		Health:  health,
		Metrics: metrics,
	})
	return &testServer{router: r, metrics: metrics}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func galleryItems() []models.ContentItem {
	now := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	return []models.ContentItem{
		{ID: "a", Title: "أ", ImageURL: "https://cdn/a.jpg", CategoryID: "sports", PublishedAt: now},
		{ID: "b", Title: "ب", ImageURL: "https://cdn/b.jpg", CategoryID: "sports", PublishedAt: now},
		{ID: "c", Title: "ج", ImageURL: "https://cdn/c.jpg", CategoryID: "local", PublishedAt: now},
	}
}

func defaultIDs() []string {
	return []string{"hero-breaking", "spotlight-video", "grid-gallery", "list-latest", "carousel-media"}
}

func TestTemplates(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodGet, "/api/v1/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[models.TemplateListResponse](t, w)
	assert.Equal(t, 5, list.Total)
	ids := make([]string, len(list.Templates))
	for i, tpl := range list.Templates {
		ids[i] = tpl.ID
	}
	assert.Equal(t, defaultIDs(), ids)

	w = s.do(t, http.MethodGet, "/api/v1/templates/grid-gallery", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.KindGrid, decode[models.TemplateDescriptor](t, w).Kind)

	w = s.do(t, http.MethodGet, "/api/v1/templates/masonry", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalyze(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodPost, "/api/v1/analyze", models.AnalyzeRequest{Items: galleryItems()})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ContentAnalysis{ItemCount: 3, HasImages: true, UniqueCategories: 2},
		decode[models.ContentAnalysis](t, w))

	w = s.do(t, http.MethodPost, "/api/v1/analyze", `{"items":[{"title":"sem id"}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "items[0].id", decode[models.ErrorResponse](t, w).Field)
}

func TestRecommendations(t *testing.T) {
	s := newTestServer(t, false)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		check      func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name:       "itens inline",
			body:       models.RecommendRequest{Items: galleryItems()},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decode[models.RecommendResponse](t, w)
				require.Len(t, resp.Recommendations, 5)
				assert.Equal(t, "grid-gallery", resp.Recommendations[0].Template.ID)
				assert.Equal(t, 50.0, resp.Recommendations[0].Score)
				assert.Equal(t, "carousel-media", resp.Recommendations[1].Template.ID)
				assert.NotEmpty(t, resp.RequestID)
				assert.Empty(t, resp.Explanation)
			},
		},
		{
			name:       "limite",
			body:       models.RecommendRequest{Items: galleryItems(), Limit: 2},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Len(t, decode[models.RecommendResponse](t, w).Recommendations, 2)
			},
		},
		{
			name:       "item sem id devolve fallback",
			body:       `{"items":[{"id":"a"},{"title":"sem id"}]}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decode[models.ErrorResponse](t, w)
				assert.Equal(t, "items[1].id", resp.Field)
				assert.Equal(t, defaultIDs(), resp.Fallback)
			},
		},
		{
			name:       "limite negativo devolve fallback",
			body:       `{"items":[{"id":"a"}],"limit":-1}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decode[models.ErrorResponse](t, w)
				assert.Equal(t, "limit", resp.Field)
				assert.Equal(t, defaultIDs(), resp.Fallback)
			},
		},
		{
			name:       "lista vazia explícita",
			body:       `{"items":[]}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decode[models.RecommendResponse](t, w)
				assert.Equal(t, 0, resp.Analysis.ItemCount)
				require.Len(t, resp.Recommendations, 5)
				for i, rec := range resp.Recommendations {
					assert.Equal(t, defaultIDs()[i], rec.Template.ID)
					assert.Zero(t, rec.Score)
				}
			},
		},
		{
			name:       "sem itens",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "limite acima do máximo",
			body:       `{"items":[{"id":"a"}],"limit":101}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "json inválido",
			body:       `{"items":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "item_ids sem fonte de conteúdo",
			body:       models.RecommendRequest{ItemIDs: []string{"a"}},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/v1/recommendations", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.check != nil {
				tt.check(t, w)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	s := newTestServer(t, false)

	t.Run("html", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/preview", models.PreviewRequest{TemplateID: "grid-gallery", Items: galleryItems()})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), `data-template="grid-gallery"`)
	})

	t.Run("json", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/preview?format=json", models.PreviewRequest{TemplateID: "list-latest", Items: galleryItems()})
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[models.PreviewResponse](t, w)
		assert.Equal(t, "list-latest", resp.TemplateID)
		assert.Contains(t, resp.HTML, `data-id="c"`)
	})

	t.Run("hero com vários itens", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/preview", models.PreviewRequest{TemplateID: "hero-breaking", Items: galleryItems()})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("template desconhecido", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/preview", models.PreviewRequest{TemplateID: "masonry", Items: galleryItems()})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("sem itens", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/preview", `{"template_id":"grid-gallery","items":[]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPlayground(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodPut, "/api/v1/playground/datasets/galeria",
		models.DatasetUpsertRequest{Description: "três fotos", Items: galleryItems()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "galeria", decode[models.Dataset](t, w).Name)

	w = s.do(t, http.MethodGet, "/api/v1/playground/datasets/galeria", nil)
	require.Equal(t, http.StatusOK, w.Code)
	ds := decode[models.Dataset](t, w)
	assert.Equal(t, "três fotos", ds.Description)
	assert.Len(t, ds.Items, 3)

	w = s.do(t, http.MethodGet, "/api/v1/playground/datasets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[models.DatasetListResponse](t, w)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, 3, list.Datasets[0].ItemCount)

	w = s.do(t, http.MethodPost, "/api/v1/recommendations", models.RecommendRequest{Dataset: "galeria", Limit: 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "grid-gallery", decode[models.RecommendResponse](t, w).Recommendations[0].Template.ID)

	w = s.do(t, http.MethodGet, "/api/v1/playground/datasets/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/recommendations", models.RecommendRequest{Dataset: "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlaygroundDisabled(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodGet, "/api/v1/playground/datasets", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodGet, "/liveness", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/readiness", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[handlers.HealthResponse](t, w)
	assert.Equal(t, "ok", resp.Checks["manifest"])

	w = s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test", decode[handlers.HealthResponse](t, w).Version)
}

func TestHealthStatuses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	down := func(context.Context) error { return errors.New("down") }
	up := func(context.Context) error { return nil }

	tests := []struct {
		name            string
		health          *handlers.HealthHandler
		wantReadiness   int
		wantHealth      int
		wantHealthState string
	}{
		{
			name:            "opcional fora",
			health:          handlers.NewHealthHandler("v").Require("manifest", up).Observe("typesense", down),
			wantReadiness:   http.StatusOK,
			wantHealth:      http.StatusOK,
			wantHealthState: "degraded",
		},
		{
			name:            "obrigatória fora",
			health:          handlers.NewHealthHandler("v").Require("redis", down).Observe("datasets", up),
			wantReadiness:   http.StatusServiceUnavailable,
			wantHealth:      http.StatusServiceUnavailable,
			wantHealthState: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := SetupRouter(&config.Config{}, Dependencies{
				Service: services.NewRecommendationService(services.RecommendationOptions{
					Manifests: manifest.NewProvider(manifest.DefaultSource{}, 0),
				}),
				Health: tt.health,
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readiness", nil))
			assert.Equal(t, tt.wantReadiness, w.Code)

			w = httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			require.Equal(t, tt.wantHealth, w.Code)
			assert.Equal(t, tt.wantHealthState, decode[handlers.HealthResponse](t, w).Status)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodPost, "/api/v1/recommendations", models.RecommendRequest{Items: galleryItems()})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "template_recommender_http_requests_total")
	assert.Contains(t, body, `template_recommender_top_template_total{kind="grid",template="grid-gallery"} 1`)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := services.NewRecommendationService(services.RecommendationOptions{
		Manifests: manifest.NewProvider(manifest.DefaultSource{}, 0),
	})

	t.Run("preflight", func(t *testing.T) {
		r := SetupRouter(&config.Config{}, Dependencies{Service: svc})
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations", nil)
		req.Header.Set("Origin", "https://cms.sabq.org")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("origem restrita", func(t *testing.T) {
		r := SetupRouter(&config.Config{CORSAllowedOrigins: []string{"https://cms.sabq.org"}}, Dependencies{Service: svc})

		req := httptest.NewRequest(http.MethodGet, "/liveness", nil)
		req.Header.Set("Origin", "https://cms.sabq.org")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "https://cms.sabq.org", w.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodGet, "/liveness", nil)
		req.Header.Set("Origin", "https://evil.example")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
