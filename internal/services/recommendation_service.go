package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sabq-ai/app-template-recommender/internal/ai"
	"github.com/sabq-ai/app-template-recommender/internal/content"
	"github.com/sabq-ai/app-template-recommender/internal/models"
	"github.com/sabq-ai/app-template-recommender/internal/observability"
	"github.com/sabq-ai/app-template-recommender/internal/recommend"
	"github.com/sabq-ai/app-template-recommender/internal/render"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrDatasetsDisabled indica que o playground não tem banco configurado
var ErrDatasetsDisabled = errors.New("datasets do playground não configurados")

var tracer = otel.Tracer("services")

// ManifestProvider fornece o manifesto vigente
type ManifestProvider interface {
	Get(ctx context.Context) (*models.Manifest, error)
}

// DatasetRepository persiste datasets do playground
type DatasetRepository interface {
	SaveDataset(ctx context.Context, ds models.Dataset) (models.Dataset, error)
	ListDatasets(ctx context.Context) ([]models.DatasetSummary, error)
	GetDataset(ctx context.Context, name string) (models.Dataset, error)
}

// RecommendationOptions agrupa as dependências do serviço. Apenas Manifests é obrigatório.
type RecommendationOptions struct {
	Manifests      ManifestProvider
	Content        content.Source
	Datasets       DatasetRepository
	Explainer      ai.Explainer
	Renderers      *render.Registry
	Metrics        *observability.Metrics
	CacheSize      int
	ExplanationTTL time.Duration
	DefaultLimit   int
}

// RecommendationService orquestra resolução de itens, manifesto, ranking e explicação
type RecommendationService struct {
	manifests      ManifestProvider
	content        content.Source
	datasets       DatasetRepository
	explainer      ai.Explainer
	renderers      *render.Registry
	metrics        *observability.Metrics
	explanations   *expirable.LRU[string, string]
	defaultLimit   int
}

// NewRecommendationService cria o serviço
func NewRecommendationService(opts RecommendationOptions) *RecommendationService {
	if opts.Renderers == nil {
		opts.Renderers = render.NewRegistry()
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 500
	}
	if opts.ExplanationTTL <= 0 {
		opts.ExplanationTTL = time.Hour
	}
	return &RecommendationService{
		manifests:      opts.Manifests,
		content:        opts.Content,
		datasets:       opts.Datasets,
		explainer:      opts.Explainer,
		renderers:      opts.Renderers,
		metrics:        opts.Metrics,
		explanations:   expirable.NewLRU[string, string](opts.CacheSize, nil, opts.ExplanationTTL),
		defaultLimit:   opts.DefaultLimit,
	}
}

// Manifest retorna o manifesto vigente
func (s *RecommendationService) Manifest(ctx context.Context) (*models.Manifest, error) {
	return s.manifests.Get(ctx)
}

// Template busca um template pelo ID
func (s *RecommendationService) Template(ctx context.Context, id string) (models.TemplateDescriptor, error) {
	m, err := s.manifests.Get(ctx)
	if err != nil {
		return models.TemplateDescriptor{}, err
	}
	tpl, ok := m.Find(id)
	if !ok {
		return models.TemplateDescriptor{}, fmt.Errorf("%w: %s", models.ErrTemplateNotFound, id)
	}
	return tpl, nil
}

// Fallback retorna os IDs na ordem do manifesto, sem scores
func (s *RecommendationService) Fallback(ctx context.Context) []string {
	m, err := s.manifests.Get(ctx)
	if err != nil {
		return []string{}
	}
	return m.IDs()
}

// Analyze valida e analisa os itens
func (s *RecommendationService) Analyze(ctx context.Context, items []models.ContentItem) (models.ContentAnalysis, error) {
	_, span := tracer.Start(ctx, "RecommendationService.Analyze")
	defer span.End()

	if err := recommend.ValidateItems(items); err != nil {
		span.RecordError(err)
		return models.ContentAnalysis{}, err
	}
	analysis := recommend.Analyze(items)
	span.SetAttributes(attribute.Int("items.count", analysis.ItemCount))
	return analysis, nil
}

// Recommend resolve os itens, ranqueia o manifesto e, se pedido, explica o resultado
func (s *RecommendationService) Recommend(ctx context.Context, req models.RecommendRequest) (*models.RecommendResponse, error) {
	ctx, span := tracer.Start(ctx, "RecommendationService.Recommend")
	defer span.End()

	resp, err := s.recommend(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.recordOutcome(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("items.count", resp.Analysis.ItemCount),
		attribute.Int("recommendations.count", len(resp.Recommendations)),
	)
	s.recordOutcome(nil)
	if s.metrics != nil {
		s.metrics.ItemsPerRequest.Observe(float64(resp.Analysis.ItemCount))
		if len(resp.Recommendations) > 0 {
			top := resp.Recommendations[0].Template
			s.metrics.TopTemplate.WithLabelValues(top.ID, string(top.Kind)).Inc()
		}
	}
	return resp, nil
}

func (s *RecommendationService) recommend(ctx context.Context, req models.RecommendRequest) (*models.RecommendResponse, error) {
	items, err := s.ResolveItems(ctx, req)
	if err != nil {
		return nil, err
	}

	manifest, err := s.manifests.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar manifesto: %w", err)
	}

	limit := req.Limit
	if limit == 0 {
		limit = s.defaultLimit
	}

	if err := recommend.ValidateItems(items); err != nil {
		return nil, err
	}
	analysis := recommend.Analyze(items)

	recs, err := recommend.RecommendWithAnalysis(analysis, manifest.Templates, models.RecommendOptions{Limit: limit})
	if err != nil {
		return nil, err
	}

	resp := &models.RecommendResponse{
		RequestID:       observability.RequestID(ctx),
		Analysis:        analysis,
		Recommendations: recs,
	}
	if req.Explain {
		resp.Explanation = s.explain(ctx, analysis, recs)
	}
	return resp, nil
}

// ResolveItems escolhe a origem dos itens: inline, IDs na fonte de conteúdo ou dataset
func (s *RecommendationService) ResolveItems(ctx context.Context, req models.RecommendRequest) ([]models.ContentItem, error) {
	switch {
	case len(req.Items) > 0:
		return req.Items, nil

	case len(req.ItemIDs) > 0:
		if s.content == nil {
			return nil, models.ErrNoContentSource
		}
		items, err := s.content.GetItems(ctx, req.ItemIDs)
		if err != nil {
			return nil, err
		}
		if missing := content.MissingIDs(req.ItemIDs, items); len(missing) > 0 {
			return nil, &models.ValidationError{
				Field:  "item_ids",
				Reason: "não encontrados: " + strings.Join(missing, ","),
			}
		}
		return items, nil

	case req.Dataset != "":
		ds, err := s.GetDataset(ctx, req.Dataset)
		if err != nil {
			return nil, err
		}
		return ds.Items, nil

	case req.Items != nil:
		// "items": [] explícito é um pedido válido sem conteúdo
		return req.Items, nil
	}

	return nil, models.ErrNoItems
}

// explain nunca falha a requisição: erros são logados e a explicação é omitida
func (s *RecommendationService) explain(ctx context.Context, analysis models.ContentAnalysis, recs []models.Recommendation) string {
	if s.explainer == nil || len(recs) == 0 {
		return ""
	}

	key := explanationKey(analysis, recs)
	if cached, ok := s.explanations.Get(key); ok {
		s.cacheHit(true)
		return cached
	}
	s.cacheHit(false)

	ctx, span := tracer.Start(ctx, "RecommendationService.Explain")
	defer span.End()

	text, err := s.explainer.Explain(ctx, analysis, recs)
	if err != nil {
		span.RecordError(err)
		slog.WarnContext(ctx, "falha ao gerar explicação", "error", err)
		s.explanationOutcome("error")
		return ""
	}

	s.explanationOutcome("ok")
	if text != "" {
		s.explanations.Add(key, text)
	}
	return text
}

// explanationKey identifica a combinação análise + ranking
func explanationKey(analysis models.ContentAnalysis, recs []models.Recommendation) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d|%t|%t|%t|%d", analysis.ItemCount, analysis.HasImages, analysis.HasVideo,
		analysis.HasBreaking, analysis.UniqueCategories)
	for _, r := range recs {
		fmt.Fprintf(h, "|%s:%.2f", r.Template.ID, r.Score)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Preview renderiza o template do manifesto com os itens dados
func (s *RecommendationService) Preview(ctx context.Context, req models.PreviewRequest) (string, error) {
	_, span := tracer.Start(ctx, "RecommendationService.Preview")
	defer span.End()
	span.SetAttributes(attribute.String("template.id", req.TemplateID))

	if err := recommend.ValidateItems(req.Items); err != nil {
		return "", err
	}
	tpl, err := s.Template(ctx, req.TemplateID)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := s.renderers.Render(&buf, tpl, req.Items); err != nil {
		span.RecordError(err)
		return "", err
	}
	return buf.String(), nil
}

// ListDatasets lista os datasets do playground
func (s *RecommendationService) ListDatasets(ctx context.Context) ([]models.DatasetSummary, error) {
	if s.datasets == nil {
		return nil, ErrDatasetsDisabled
	}
	return s.datasets.ListDatasets(ctx)
}

// GetDataset carrega um dataset do playground
func (s *RecommendationService) GetDataset(ctx context.Context, name string) (models.Dataset, error) {
	if s.datasets == nil {
		return models.Dataset{}, ErrDatasetsDisabled
	}
	return s.datasets.GetDataset(ctx, name)
}

// SaveDataset grava um dataset do playground
func (s *RecommendationService) SaveDataset(ctx context.Context, ds models.Dataset) (models.Dataset, error) {
	if s.datasets == nil {
		return models.Dataset{}, ErrDatasetsDisabled
	}
	return s.datasets.SaveDataset(ctx, ds)
}

func (s *RecommendationService) recordOutcome(err error) {
	if s.metrics == nil {
		return
	}
	status := "ok"
	switch {
	case err == nil:
	case models.IsValidationError(err):
		status = "invalid"
	default:
		status = "error"
	}
	s.metrics.Recommendations.WithLabelValues(status).Inc()
}

func (s *RecommendationService) cacheHit(hit bool) {
	if s.metrics != nil {
		s.metrics.CacheHit("explanations", hit)
	}
}

func (s *RecommendationService) explanationOutcome(status string) {
	if s.metrics != nil {
		s.metrics.ExplanationRequests.WithLabelValues(status).Inc()
	}
}
