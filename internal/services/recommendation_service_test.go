package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sabq-ai/app-template-recommender/internal/content"
	"github.com/sabq-ai/app-template-recommender/internal/manifest"
	"github.com/sabq-ai/app-template-recommender/internal/models"
	"github.com/sabq-ai/app-template-recommender/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	items map[string]models.ContentItem
	err   error
}

func (f *fakeSource) GetItems(_ context.Context, ids []string) ([]models.ContentItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.ContentItem{}
	for _, id := range ids {
		if it, ok := f.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeExplainer struct {
	calls atomic.Int32
	err   error
}

func (f *fakeExplainer) Explain(context.Context, models.ContentAnalysis, []models.Recommendation) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return "القالب الشبكي يناسب معرض الصور", nil
}

type brokenProvider struct{}

func (brokenProvider) Get(context.Context) (*models.Manifest, error) {
	return nil, errors.New("redis fora do ar")
}

// galleryItems: 3 itens com imagem em 2 categorias
func galleryItems() []models.ContentItem {
	return []models.ContentItem{
		{ID: "a1", ImageURL: "https://cdn.sabq.org/a1.jpg", CategoryID: "local"},
		{ID: "a2", ImageURL: "https://cdn.sabq.org/a2.jpg", CategoryID: "sports"},
		{ID: "a3", ImageURL: "https://cdn.sabq.org/a3.jpg", CategoryID: "local"},
	}
}

func newTestService(t *testing.T, opts RecommendationOptions) *RecommendationService {
	t.Helper()
	if opts.Manifests == nil {
		opts.Manifests = manifest.NewProvider(manifest.DefaultSource{}, 0)
	}
	return NewRecommendationService(opts)
}

func recIDs(recs []models.Recommendation) []string {
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.Template.ID
	}
	return ids
}

func TestRecommendInlineItems(t *testing.T) {
	metrics := observability.NewMetrics()
	svc := newTestService(t, RecommendationOptions{Metrics: metrics})

	resp, err := svc.Recommend(context.Background(), models.RecommendRequest{Items: galleryItems()})
	require.NoError(t, err)

	assert.Equal(t, models.ContentAnalysis{ItemCount: 3, HasImages: true, UniqueCategories: 2}, resp.Analysis)
	assert.Equal(t,
		[]string{"grid-gallery", "carousel-media", "list-latest", "hero-breaking", "spotlight-video"},
		recIDs(resp.Recommendations))
	assert.Equal(t, 50.0, resp.Recommendations[0].Score)
	assert.Equal(t, 50.0, resp.Recommendations[1].Score)
	assert.Equal(t, 10.0, resp.Recommendations[2].Score)
	assert.Empty(t, resp.Explanation)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Recommendations.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.TopTemplate.WithLabelValues("grid-gallery", "grid")))
}

func TestRecommendLimits(t *testing.T) {
	svc := newTestService(t, RecommendationOptions{DefaultLimit: 2})

	resp, err := svc.Recommend(context.Background(), models.RecommendRequest{Items: galleryItems()})
	require.NoError(t, err)
	assert.Len(t, resp.Recommendations, 2, "limite padrão aplicado")

	resp, err = svc.Recommend(context.Background(), models.RecommendRequest{Items: galleryItems(), Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"grid-gallery"}, recIDs(resp.Recommendations))

	_, err = svc.Recommend(context.Background(), models.RecommendRequest{Items: galleryItems(), Limit: -1})
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "limit", ve.Field)
}

func TestRecommendResolvesItemIDs(t *testing.T) {
	src := &fakeSource{items: map[string]models.ContentItem{}}
	for _, it := range galleryItems() {
		src.items[it.ID] = it
	}
	svc := newTestService(t, RecommendationOptions{Content: src})

	resp, err := svc.Recommend(context.Background(), models.RecommendRequest{ItemIDs: []string{"a1", "a2", "a3"}})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Analysis.ItemCount)

	_, err = svc.Recommend(context.Background(), models.RecommendRequest{ItemIDs: []string{"a1", "zz"}})
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "item_ids", ve.Field)
	assert.Contains(t, ve.Reason, "zz")
}

func TestRecommendResolveErrors(t *testing.T) {
	svc := newTestService(t, RecommendationOptions{})
	ctx := context.Background()

	_, err := svc.Recommend(ctx, models.RecommendRequest{})
	assert.ErrorIs(t, err, models.ErrNoItems)

	empty, err := svc.Recommend(ctx, models.RecommendRequest{Items: []models.ContentItem{}})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Analysis.ItemCount)
	assert.Len(t, empty.Recommendations, 5)

	_, err = svc.Recommend(ctx, models.RecommendRequest{ItemIDs: []string{"a1"}})
	assert.ErrorIs(t, err, models.ErrNoContentSource)

	_, err = svc.Recommend(ctx, models.RecommendRequest{Dataset: "x"})
	assert.ErrorIs(t, err, ErrDatasetsDisabled)

	_, err = svc.Recommend(ctx, models.RecommendRequest{Items: []models.ContentItem{{ID: "ok"}, {Title: "sem id"}}})
	assert.True(t, models.IsValidationError(err))

	broken := newTestService(t, RecommendationOptions{Manifests: brokenProvider{}})
	_, err = broken.Recommend(ctx, models.RecommendRequest{Items: galleryItems()})
	assert.Error(t, err)
	assert.False(t, models.IsValidationError(err))
	assert.Empty(t, broken.Fallback(ctx))
}

func TestRecommendFromDataset(t *testing.T) {
	store, err := content.OpenDatasetStore(filepath.Join(t.TempDir(), "ds.db"))
	require.NoError(t, err)
	defer store.Close()

	svc := newTestService(t, RecommendationOptions{Datasets: store})
	ctx := context.Background()

	_, err = svc.SaveDataset(ctx, models.Dataset{
		Name:  "breaking",
		Items: []models.ContentItem{{ID: "b1", Title: "عاجل", NewsType: models.NewsTypeBreaking}},
	})
	require.NoError(t, err)

	resp, err := svc.Recommend(ctx, models.RecommendRequest{Dataset: "breaking"})
	require.NoError(t, err)
	top := resp.Recommendations[0]
	assert.Equal(t, "hero-breaking", top.Template.ID)
	// kind + breaking + featured
	assert.Equal(t, 70.0, top.Score)

	_, err = svc.Recommend(ctx, models.RecommendRequest{Dataset: "missing"})
	assert.ErrorIs(t, err, models.ErrDatasetNotFound)

	list, err := svc.ListDatasets(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRecommendExplanation(t *testing.T) {
	exp := &fakeExplainer{}
	metrics := observability.NewMetrics()
	svc := newTestService(t, RecommendationOptions{Explainer: exp, Metrics: metrics})
	ctx := context.Background()

	req := models.RecommendRequest{Items: galleryItems(), Explain: true}
	first, err := svc.Recommend(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "القالب الشبكي يناسب معرض الصور", first.Explanation)

	second, err := svc.Recommend(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.Explanation, second.Explanation)
	assert.Equal(t, int32(1), exp.calls.Load(), "segunda chamada vem do cache")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("explanations", "hit")))

	// Sem explain, o provedor não é chamado
	_, err = svc.Recommend(ctx, models.RecommendRequest{Items: galleryItems()[:2]})
	require.NoError(t, err)
	assert.Equal(t, int32(1), exp.calls.Load())
}

func TestRecommendExplanationCacheBounds(t *testing.T) {
	ctx := context.Background()

	t.Run("capacidade descarta a menos usada", func(t *testing.T) {
		exp := &fakeExplainer{}
		svc := newTestService(t, RecommendationOptions{Explainer: exp, CacheSize: 1})
		items := galleryItems()

		_, err := svc.Recommend(ctx, models.RecommendRequest{Items: items, Explain: true})
		require.NoError(t, err)
		_, err = svc.Recommend(ctx, models.RecommendRequest{Items: items[:1], Explain: true})
		require.NoError(t, err)
		assert.Equal(t, 1, svc.explanations.Len())

		_, err = svc.Recommend(ctx, models.RecommendRequest{Items: items, Explain: true})
		require.NoError(t, err)
		assert.Equal(t, int32(3), exp.calls.Load(), "primeira entrada foi descartada")
	})

	t.Run("entrada expira após o TTL", func(t *testing.T) {
		exp := &fakeExplainer{}
		svc := newTestService(t, RecommendationOptions{Explainer: exp, ExplanationTTL: 20 * time.Millisecond})
		req := models.RecommendRequest{Items: galleryItems(), Explain: true}

		_, err := svc.Recommend(ctx, req)
		require.NoError(t, err)
		_, err = svc.Recommend(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, int32(1), exp.calls.Load())

		time.Sleep(50 * time.Millisecond)
		_, err = svc.Recommend(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, int32(2), exp.calls.Load())
	})
}

func TestRecommendExplanationFailureIsOmitted(t *testing.T) {
	exp := &fakeExplainer{err: errors.New("quota excedida")}
	svc := newTestService(t, RecommendationOptions{Explainer: exp})

	resp, err := svc.Recommend(context.Background(), models.RecommendRequest{Items: galleryItems(), Explain: true})
	require.NoError(t, err)
	assert.Empty(t, resp.Explanation)
	assert.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, 0, svc.explanations.Len())
}

func TestPreview(t *testing.T) {
	svc := newTestService(t, RecommendationOptions{})
	ctx := context.Background()

	html, err := svc.Preview(ctx, models.PreviewRequest{TemplateID: "grid-gallery", Items: galleryItems()})
	require.NoError(t, err)
	assert.Contains(t, html, `data-template="grid-gallery"`)

	_, err = svc.Preview(ctx, models.PreviewRequest{TemplateID: "hero-breaking", Items: galleryItems()})
	assert.ErrorIs(t, err, models.ErrSingleItemKind)

	_, err = svc.Preview(ctx, models.PreviewRequest{TemplateID: "nope", Items: galleryItems()})
	assert.ErrorIs(t, err, models.ErrTemplateNotFound)
}

func TestAnalyzeAndFallback(t *testing.T) {
	svc := newTestService(t, RecommendationOptions{})
	ctx := context.Background()

	a, err := svc.Analyze(ctx, galleryItems())
	require.NoError(t, err)
	assert.Equal(t, 3, a.ItemCount)

	a, err = svc.Analyze(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, models.ContentAnalysis{}, a)

	assert.Equal(t,
		[]string{"hero-breaking", "spotlight-video", "grid-gallery", "list-latest", "carousel-media"},
		svc.Fallback(ctx))
}
