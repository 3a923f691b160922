package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sabq-ai/app-template-recommender/internal/models"
	"github.com/typesense/typesense-go/v3/typesense"
	"github.com/typesense/typesense-go/v3/typesense/api"
	"github.com/typesense/typesense-go/v3/typesense/api/pointer"
)

// DefaultCollection é a collection de artigos indexada pelo CMS
const DefaultCollection = "articles"

// TypesenseSource busca artigos indexados no Typesense
type TypesenseSource struct {
	client     *typesense.Client
	collection string
}

// NewTypesenseSource cria a fonte de conteúdo
func NewTypesenseSource(client *typesense.Client, collection string) *TypesenseSource {
	if collection == "" {
		collection = DefaultCollection
	}
	return &TypesenseSource{client: client, collection: collection}
}

// NewTypesenseClient monta o client a partir de protocolo/host/porta
func NewTypesenseClient(protocol, host, port, apiKey string) *typesense.Client {
	return typesense.NewClient(
		typesense.WithServer(fmt.Sprintf("%s://%s:%s", protocol, host, port)),
		typesense.WithAPIKey(apiKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)
}

// GetItems implementa Source
func (s *TypesenseSource) GetItems(ctx context.Context, ids []string) ([]models.ContentItem, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return []models.ContentItem{}, nil
	}

	params := &api.SearchCollectionParams{
		Q:        pointer.String("*"),
		FilterBy: pointer.String(buildIDFilter(ids)),
		PerPage:  pointer.Int(len(ids)),
		Page:     pointer.Int(1),
	}

	result, err := s.client.Collection(s.collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens no Typesense: %w", err)
	}

	byID := make(map[string]models.ContentItem, len(ids))
	if result.Hits != nil {
		for _, hit := range *result.Hits {
			if hit.Document == nil {
				continue
			}
			item := documentToItem(*hit.Document)
			byID[item.ID] = item
		}
	}

	items := make([]models.ContentItem, 0, len(byID))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			items = append(items, item)
		}
	}

	if len(items) < len(ids) {
		slog.WarnContext(ctx, "itens não encontrados no Typesense",
			"collection", s.collection, "missing", MissingIDs(ids, items))
	}
	return items, nil
}

// Ping verifica a saúde do Typesense
func (s *TypesenseSource) Ping(ctx context.Context) error {
	ok, err := s.client.Health(ctx, 2*time.Second)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("typesense não está saudável")
	}
	return nil
}

// buildIDFilter monta id:[`a`,`b`] com os valores escapados por crase
func buildIDFilter(ids []string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = "`" + strings.ReplaceAll(id, "`", "") + "`"
	}
	return "id:[" + strings.Join(quoted, ",") + "]"
}

// documentToItem converte um documento da collection de artigos
func documentToItem(doc map[string]interface{}) models.ContentItem {
	item := models.ContentItem{
		ID:         getString(doc, "id"),
		Title:      getString(doc, "title"),
		Excerpt:    getString(doc, "excerpt"),
		ImageURL:   getString(doc, "image_url"),
		VideoURL:   getString(doc, "video_url"),
		CategoryID: getString(doc, "category_id"),
		NewsType:   models.NewsType(getString(doc, "news_type")),
		Views:      int(getInt64(doc, "views")),
		Comments:   int(getInt64(doc, "comments")),
	}
	if ts := getInt64(doc, "published_at"); ts > 0 {
		item.PublishedAt = time.Unix(ts, 0).UTC()
	}
	return item
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getInt64(m map[string]interface{}, key string) int64 {
	if v, ok := m[key]; ok {
		switch val := v.(type) {
		case int:
			return int64(val)
		case int32:
			return int64(val)
		case int64:
			return val
		case float64:
			return int64(val)
		}
	}
	return 0
}
